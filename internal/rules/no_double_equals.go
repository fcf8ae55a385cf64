package rules

import (
	"lintel/internal/analyzer"
	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/syntax"
)

type noDoubleEquals struct{}

func (noDoubleEquals) Metadata() analyzer.Metadata {
	return analyzer.Metadata{
		Group:       "suspicious",
		Name:        "noDoubleEquals",
		Category:    analyzer.CategoryLint,
		Docs:        "Require the use of === and !==. Comparisons against null are allowed.",
		Recommended: true,
		Severity:    diag.SevError,
		Fix:         diag.FixMaybeIncorrect,
		HasFix:      true,
	}
}

func (noDoubleEquals) Query() analyzer.Query[ast.BinaryExpression] {
	return analyzer.Ast(syntax.KindSetOf(syntax.BinaryExpression), ast.CastBinaryExpression)
}

func (noDoubleEquals) Run(ctx *analyzer.RuleContext[ast.BinaryExpression]) []syntax.SyntaxToken {
	n := ctx.Query()
	op, err := n.OperatorToken()
	if err != nil || (op.Kind() != syntax.EqEq && op.Kind() != syntax.BangEq) {
		return nil
	}
	left, err := n.Left()
	if err != nil {
		return nil
	}
	right, err := n.Right()
	if err != nil {
		return nil
	}
	// x == null also matches undefined, which is usually intended
	if isNullLiteral(left) || isNullLiteral(right) {
		return nil
	}
	return []syntax.SyntaxToken{op}
}

func isNullLiteral(e ast.AnyExpression) bool {
	return e.OmitParentheses().Kind() == syntax.NullLiteralExpression
}

func strictOf(k syntax.Kind) syntax.Kind {
	if k == syntax.BangEq {
		return syntax.BangEqEq
	}
	return syntax.EqEqEq
}

func (noDoubleEquals) Diagnostic(_ *analyzer.RuleContext[ast.BinaryExpression], op syntax.SyntaxToken) (analyzer.RuleDiagnostic, bool) {
	strict := strictOf(op.Kind()).Text()
	return analyzer.NewDiagnostic(op.TextTrimmedRange(), "Use "+strict+" instead of "+op.TextTrimmed()).
		WithNote(op.TextTrimmedRange(), op.TextTrimmed()+" is only allowed when comparing against null"), true
}

func (noDoubleEquals) Action(ctx *analyzer.RuleContext[ast.BinaryExpression], op syntax.SyntaxToken) (analyzer.RuleAction, bool) {
	strict := strictOf(op.Kind())
	m := ctx.Mutation()
	m.ReplaceTokenTransferTrivia(op, ast.Token(strict))
	return analyzer.RuleAction{
		Category:      analyzer.QuickFix,
		Applicability: diag.FixMaybeIncorrect,
		Message:       "Use " + strict.Text(),
		Mutation:      m,
	}, true
}
