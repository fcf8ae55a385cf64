package analyzer

import (
	"lintel/internal/diag"
	"lintel/internal/mutation"
	"lintel/internal/source"
)

// ControlFlow is returned by the emit callback.
type ControlFlow uint8

const (
	Continue ControlFlow = iota
	// Break stops the walk; nodes not yet visited are never visited.
	Break
)

type Note struct {
	Range   source.TextRange
	Message string
}

// RuleDiagnostic is what a rule reports for one state. Severity is filled in
// by the engine from the rule metadata unless the rule sets it.
type RuleDiagnostic struct {
	Category string
	Severity diag.Severity
	Message  string
	Range    source.TextRange
	Notes    []Note
	explicit bool
}

func NewDiagnostic(rng source.TextRange, msg string) RuleDiagnostic {
	return RuleDiagnostic{Range: rng, Message: msg}
}

func (d RuleDiagnostic) WithNote(rng source.TextRange, msg string) RuleDiagnostic {
	d.Notes = append(d.Notes, Note{Range: rng, Message: msg})
	return d
}

func (d RuleDiagnostic) WithSeverity(sev diag.Severity) RuleDiagnostic {
	d.Severity, d.explicit = sev, true
	return d
}

// ToDiagnostic converts d into a diag.Diagnostic anchored in file.
func (d RuleDiagnostic) ToDiagnostic(file source.FileID) diag.Diagnostic {
	code := diag.LintRule
	switch d.Category {
	case diag.CategorySuppressionParse:
		code = diag.SupMalformed
	case diag.CategorySuppressionUnused:
		code = diag.SupUnused
	}
	out := diag.New(d.Severity, code, source.SpanOf(file, d.Range), d.Message)
	out.Category = d.Category
	for _, n := range d.Notes {
		out = out.WithNote(source.SpanOf(file, n.Range), n.Message)
	}
	return out
}

type ActionCategory uint8

const (
	QuickFix ActionCategory = iota
	Refactor
)

func (c ActionCategory) String() string {
	if c == Refactor {
		return "refactor"
	}
	return "quickfix"
}

// RuleAction is a proposed edit. The mutation is anchored on the root the
// rule ran against.
type RuleAction struct {
	Category      ActionCategory
	Applicability diag.Applicability
	Message       string
	Mutation      *mutation.BatchMutation
	Rule          string
}

// Signal is one rule finding. Diagnostic and Actions call back into the
// rule when invoked; a Signal must not be retained after the emit callback
// returns.
type Signal interface {
	Rule() RuleKey
	Diagnostic() (RuleDiagnostic, bool)
	Actions() []RuleAction
}

// diagnosticSignal carries a ready diagnostic, used for suppression
// comment problems.
type diagnosticSignal struct {
	key RuleKey
	d   RuleDiagnostic
}

func (s diagnosticSignal) Rule() RuleKey                      { return s.key }
func (s diagnosticSignal) Diagnostic() (RuleDiagnostic, bool) { return s.d, true }
func (s diagnosticSignal) Actions() []RuleAction              { return nil }
