package rules

import (
	"lintel/internal/analyzer"
	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/source"
	"lintel/internal/syntax"
)

type noSparseArray struct {
	analyzer.NoAction[ast.ArrayExpression, source.TextRange]
}

func (noSparseArray) Metadata() analyzer.Metadata {
	return analyzer.Metadata{
		Group:       "suspicious",
		Name:        "noSparseArray",
		Category:    analyzer.CategoryLint,
		Docs:        "Disallow sparse arrays such as [1,,2].",
		Recommended: true,
		Severity:    diag.SevWarning,
	}
}

func (noSparseArray) Query() analyzer.Query[ast.ArrayExpression] {
	return analyzer.Ast(syntax.KindSetOf(syntax.ArrayExpression), ast.CastArrayExpression)
}

// Run reports the array once, pointing at its first hole.
func (noSparseArray) Run(ctx *analyzer.RuleContext[ast.ArrayExpression]) []source.TextRange {
	elems, err := ctx.Query().Elements()
	if err != nil {
		return nil
	}
	for e := range elems.Elements() {
		if e.IsHole() {
			return []source.TextRange{e.Syntax().TextRange()}
		}
	}
	return nil
}

func (noSparseArray) Diagnostic(ctx *analyzer.RuleContext[ast.ArrayExpression], hole source.TextRange) (analyzer.RuleDiagnostic, bool) {
	return analyzer.NewDiagnostic(ctx.Query().Range(), "This array contains an empty slot.").
		WithNote(hole, "the hole is here"), true
}
