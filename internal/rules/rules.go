// Package rules holds the built-in lint rules and their registration table.
package rules

import (
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"lintel/internal/analyzer"
	"lintel/internal/ast"
	"lintel/internal/source"
	"lintel/internal/syntax"
)

// Options tune rules that take configuration.
type Options struct {
	// Globals extends the names noUndeclaredVariables accepts.
	Globals []string
}

// NewRegistry registers every built-in rule. Rules run in the order listed
// here when they match the same node.
func NewRegistry(opts Options) *analyzer.Registry {
	r := analyzer.NewRegistry()
	analyzer.MustRegister[ast.Node, negatedBranches](r, noNegationElse{})
	analyzer.MustRegister[ast.BinaryExpression, syntax.SyntaxToken](r, noDoubleEquals{})
	analyzer.MustRegister[ast.DebuggerStatement, struct{}](r, noDebugger{})
	analyzer.MustRegister[ast.ArrayExpression, source.TextRange](r, noSparseArray{})
	analyzer.MustRegister[ast.IdentifierBinding, unusedBinding](r, noUnusedVariables{})
	analyzer.MustRegister[ast.Node, string](r, newNoUndeclaredVariables(opts.Globals))
	analyzer.MustRegister[ast.VariableDeclaration, varFix](r, noVar{})
	return r
}

// Recommended returns filters enabling the recommended rules only.
func Recommended(reg *analyzer.Registry) []analyzer.RuleFilter {
	var out []analyzer.RuleFilter
	for m := range reg.Rules() {
		if m.Recommended {
			out = append(out, analyzer.RuleFilter{Group: m.Group, Rule: m.Name})
		}
	}
	return out
}

// Groups returns the rule groups in sorted order.
func Groups(reg *analyzer.Registry) []string {
	var groups []string
	for m := range reg.Rules() {
		groups = append(groups, m.Group)
	}
	slices.Sort(groups)
	return slices.Compact(groups)
}

// GroupTitle renders a group name for listings: "suspicious" -> "Suspicious".
func GroupTitle(group string) string {
	return cases.Title(language.English).String(group)
}
