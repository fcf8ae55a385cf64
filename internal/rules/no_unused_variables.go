package rules

import (
	"strings"

	"lintel/internal/analyzer"
	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/semantic"
	"lintel/internal/syntax"
)

type noUnusedVariables struct {
	analyzer.NoAction[ast.IdentifierBinding, unusedBinding]
}

type unusedBinding struct {
	name string
	what string
}

func (noUnusedVariables) Metadata() analyzer.Metadata {
	return analyzer.Metadata{
		Group:    "correctness",
		Name:     "noUnusedVariables",
		Category: analyzer.CategoryLint,
		Docs:     "Disallow variables, functions and parameters that are never read. Names starting with _ are ignored.",
		Severity: diag.SevWarning,
	}
}

func (noUnusedVariables) Query() analyzer.Query[ast.IdentifierBinding] {
	return analyzer.Semantic(syntax.KindSetOf(syntax.IdentifierBinding), ast.CastIdentifierBinding)
}

func (noUnusedVariables) Run(ctx *analyzer.RuleContext[ast.IdentifierBinding]) []unusedBinding {
	model := ctx.Model()
	b, ok := model.Binding(ctx.Node())
	if !ok {
		return nil
	}
	name := b.Name()
	if strings.HasPrefix(name, "_") || hasReads(b) {
		return nil
	}
	parent, _ := ctx.Node().Parent()
	what := "variable"
	switch parent.Kind() {
	case syntax.FunctionExpression:
		// named function expressions are named for stack traces
		return nil
	case syntax.FunctionDeclaration:
		what = "function"
	case syntax.FormalParameter:
		if laterParameterRead(model, parent) {
			return nil
		}
		what = "parameter"
	case syntax.CatchDeclaration:
		what = "catch parameter"
	}
	return []unusedBinding{{name: name, what: what}}
}

func hasReads(b semantic.Binding) bool {
	for range b.AllReads() {
		return true
	}
	return false
}

// laterParameterRead reports whether a parameter after param is read;
// earlier parameters cannot be dropped then.
func laterParameterRead(model *semantic.Model, param syntax.SyntaxNode) bool {
	for next, ok := param.NextSibling(); ok; next, ok = next.NextSibling() {
		p, ok := ast.CastFormalParameter(next)
		if !ok {
			continue
		}
		id, err := p.Binding()
		if err != nil {
			continue
		}
		if b, ok := model.Binding(id.Syntax()); ok && hasReads(b) {
			return true
		}
	}
	return false
}

func (noUnusedVariables) Diagnostic(ctx *analyzer.RuleContext[ast.IdentifierBinding], st unusedBinding) (analyzer.RuleDiagnostic, bool) {
	return analyzer.NewDiagnostic(ctx.Query().Range(), "This "+st.what+" is unused: "+st.name), true
}
