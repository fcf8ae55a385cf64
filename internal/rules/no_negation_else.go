package rules

import (
	"lintel/internal/analyzer"
	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/syntax"
)

type noNegationElse struct{}

// negatedBranches is an if/else or a conditional whose test is negated.
type negatedBranches struct {
	test      ast.AnyExpression
	cons, alt syntax.SyntaxNode
}

func (noNegationElse) Metadata() analyzer.Metadata {
	return analyzer.Metadata{
		Group:       "style",
		Name:        "noNegationElse",
		Category:    analyzer.CategoryLint,
		Docs:        "Disallow negated conditions in if/else statements and conditional expressions that have an else branch.",
		Recommended: true,
		Severity:    diag.SevWarning,
		Fix:         diag.FixMaybeIncorrect,
		HasFix:      true,
	}
}

func (noNegationElse) Query() analyzer.Query[ast.Node] {
	return analyzer.Ast(syntax.KindSetOf(syntax.IfStatement, syntax.ConditionalExpression), castNegatable)
}

func castNegatable(n syntax.SyntaxNode) (ast.Node, bool) {
	switch v := ast.Cast(n).(type) {
	case ast.IfStatement:
		return v, true
	case ast.ConditionalExpression:
		return v, true
	}
	return nil, false
}

func (noNegationElse) Run(ctx *analyzer.RuleContext[ast.Node]) []negatedBranches {
	var st negatedBranches
	switch n := ctx.Query().(type) {
	case ast.IfStatement:
		elseClause, ok := n.ElseClause()
		if !ok {
			return nil
		}
		alt, err := elseClause.Alternate()
		// else-if chains read fine with a negated first test
		if err != nil || alt.Kind() == syntax.IfStatement {
			return nil
		}
		cons, err := n.Consequent()
		if err != nil {
			return nil
		}
		if st.test, err = n.Test(); err != nil {
			return nil
		}
		st.cons, st.alt = cons.Syntax(), alt.Syntax()
	case ast.ConditionalExpression:
		cons, err := n.Consequent()
		if err != nil {
			return nil
		}
		alt, err := n.Alternate()
		if err != nil {
			return nil
		}
		if st.test, err = n.Test(); err != nil {
			return nil
		}
		st.cons, st.alt = cons.Syntax(), alt.Syntax()
	default:
		return nil
	}
	if !isNegation(st.test) {
		return nil
	}
	return []negatedBranches{st}
}

// isNegation matches `!x` (but not `!!x`), `a != b` and `a !== b`.
func isNegation(e ast.AnyExpression) bool {
	switch v := e.Variant().(type) {
	case ast.UnaryExpression:
		op, err := v.Operator()
		if err != nil || op != syntax.Bang {
			return false
		}
		arg, err := v.Argument()
		if err != nil {
			return false
		}
		if inner, ok := arg.Variant().(ast.UnaryExpression); ok {
			if iop, err := inner.Operator(); err == nil && iop == syntax.Bang {
				return false
			}
		}
		return true
	case ast.BinaryExpression:
		op, err := v.Operator()
		return err == nil && (op == syntax.BangEq || op == syntax.BangEqEq)
	}
	return false
}

func (noNegationElse) Diagnostic(_ *analyzer.RuleContext[ast.Node], st negatedBranches) (analyzer.RuleDiagnostic, bool) {
	return analyzer.NewDiagnostic(st.test.Range(), "Invert blocks when performing a negation test."), true
}

func (noNegationElse) Action(ctx *analyzer.RuleContext[ast.Node], st negatedBranches) (analyzer.RuleAction, bool) {
	m := ctx.Mutation()
	switch v := st.test.Variant().(type) {
	case ast.UnaryExpression:
		arg, err := v.Argument()
		if err != nil {
			return analyzer.RuleAction{}, false
		}
		m.ReplaceNode(v.Syntax(), ast.WithEdgeTrivia(arg.Syntax().Green(), v.Syntax().Green()))
	case ast.BinaryExpression:
		opTok, err := v.OperatorToken()
		if err != nil {
			return analyzer.RuleAction{}, false
		}
		inverse := syntax.EqEq
		if opTok.Kind() == syntax.BangEqEq {
			inverse = syntax.EqEqEq
		}
		m.ReplaceTokenTransferTrivia(opTok, ast.Token(inverse))
	default:
		return analyzer.RuleAction{}, false
	}
	cons, alt := st.cons.Green(), st.alt.Green()
	m.ReplaceNode(st.cons, ast.WithEdgeTrivia(alt, cons))
	m.ReplaceNode(st.alt, ast.WithEdgeTrivia(cons, alt))
	return analyzer.RuleAction{
		Category:      analyzer.QuickFix,
		Applicability: diag.FixMaybeIncorrect,
		Message:       "Invert the condition and the blocks.",
		Mutation:      m,
	}, true
}
