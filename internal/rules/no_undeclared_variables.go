package rules

import (
	"slices"

	"lintel/internal/analyzer"
	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/syntax"
)

// builtinGlobals are names available without a declaration in browsers
// and node. Kept sorted.
var builtinGlobals = []string{
	"Array", "ArrayBuffer", "BigInt", "Boolean", "DataView", "Date", "Error", "EvalError",
	"Float32Array", "Float64Array", "Function", "Infinity", "Int16Array", "Int32Array", "Int8Array",
	"Intl", "JSON", "Map", "Math", "NaN", "Number", "Object", "Promise", "Proxy", "RangeError",
	"ReferenceError", "Reflect", "RegExp", "Set", "String", "Symbol", "SyntaxError", "TypeError",
	"URIError", "URL", "Uint16Array", "Uint32Array", "Uint8Array", "WeakMap", "WeakSet",
	"arguments", "clearInterval", "clearTimeout", "console", "decodeURI", "decodeURIComponent",
	"document", "encodeURI", "encodeURIComponent", "eval", "exports", "fetch", "globalThis",
	"isFinite", "isNaN", "module", "navigator", "parseFloat", "parseInt", "process", "require",
	"setInterval", "setTimeout", "undefined", "window",
}

type noUndeclaredVariables struct {
	analyzer.NoAction[ast.Node, string]
	globals []string // sorted
}

func newNoUndeclaredVariables(extra []string) noUndeclaredVariables {
	globals := slices.Concat(builtinGlobals, extra)
	slices.Sort(globals)
	return noUndeclaredVariables{globals: slices.Compact(globals)}
}

func (noUndeclaredVariables) Metadata() analyzer.Metadata {
	return analyzer.Metadata{
		Group:       "correctness",
		Name:        "noUndeclaredVariables",
		Category:    analyzer.CategoryLint,
		Docs:        "Disallow references to variables that are declared nowhere and are not known globals.",
		Recommended: true,
		Severity:    diag.SevError,
	}
}

func (noUndeclaredVariables) Query() analyzer.Query[ast.Node] {
	return analyzer.Semantic(syntax.KindSetOf(syntax.ReferenceIdentifier, syntax.IdentifierAssignment), castReference)
}

func castReference(n syntax.SyntaxNode) (ast.Node, bool) {
	switch v := ast.Cast(n).(type) {
	case ast.ReferenceIdentifier:
		return v, true
	case ast.IdentifierAssignment:
		return v, true
	}
	return nil, false
}

func (r noUndeclaredVariables) Run(ctx *analyzer.RuleContext[ast.Node]) []string {
	if _, ok := ctx.Model().Binding(ctx.Node()); ok {
		return nil
	}
	var (
		name string
		err  error
	)
	switch v := ctx.Query().(type) {
	case ast.ReferenceIdentifier:
		name, err = v.Name()
	case ast.IdentifierAssignment:
		name, err = v.Name()
	}
	if err != nil || name == "" {
		return nil
	}
	if _, known := slices.BinarySearch(r.globals, name); known {
		return nil
	}
	return []string{name}
}

func (noUndeclaredVariables) Diagnostic(ctx *analyzer.RuleContext[ast.Node], name string) (analyzer.RuleDiagnostic, bool) {
	return analyzer.NewDiagnostic(ctx.Node().TextTrimmedRange(), "The "+name+" variable is undeclared"), true
}
