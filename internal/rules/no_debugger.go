package rules

import (
	"lintel/internal/analyzer"
	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/syntax"
)

type noDebugger struct{}

func (noDebugger) Metadata() analyzer.Metadata {
	return analyzer.Metadata{
		Group:       "suspicious",
		Name:        "noDebugger",
		Category:    analyzer.CategoryLint,
		Docs:        "Disallow the use of debugger.",
		Recommended: true,
		Severity:    diag.SevError,
		Fix:         diag.FixAlways,
		HasFix:      true,
	}
}

func (noDebugger) Query() analyzer.Query[ast.DebuggerStatement] {
	return analyzer.Ast(syntax.KindSetOf(syntax.DebuggerStatement), ast.CastDebuggerStatement)
}

func (noDebugger) Run(ctx *analyzer.RuleContext[ast.DebuggerStatement]) []struct{} {
	return []struct{}{{}}
}

func (noDebugger) Diagnostic(ctx *analyzer.RuleContext[ast.DebuggerStatement], _ struct{}) (analyzer.RuleDiagnostic, bool) {
	return analyzer.NewDiagnostic(ctx.Query().Range(), "This is an unexpected use of the debugger statement."), true
}

// Action removes the statement from its list. Outside a list (if (a)
// debugger;) the statement is replaced by an empty one.
func (noDebugger) Action(ctx *analyzer.RuleContext[ast.DebuggerStatement], _ struct{}) (analyzer.RuleAction, bool) {
	stmt := ctx.Node()
	parent, ok := stmt.Parent()
	if !ok {
		return analyzer.RuleAction{}, false
	}
	m := ctx.Mutation()
	if parent.Kind().IsList() {
		m.RemoveNode(stmt)
	} else {
		empty := syntax.NewGreenNode(syntax.EmptyStatement, []syntax.GreenElement{
			syntax.TokenElement(ast.Token(syntax.Semicolon)),
		})
		m.ReplaceNode(stmt, ast.WithEdgeTrivia(empty, stmt.Green()))
	}
	return analyzer.RuleAction{
		Category:      analyzer.QuickFix,
		Applicability: diag.FixAlways,
		Message:       "Remove debugger statement",
		Mutation:      m,
	}, true
}
