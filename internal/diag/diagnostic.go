package diag

import (
	"lintel/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Applicability tells automated tooling how far a fix can be trusted.
type Applicability uint8

const (
	// FixAlways may be applied without review.
	FixAlways Applicability = iota
	// FixMaybeIncorrect changes semantics in corner cases.
	FixMaybeIncorrect
	// FixUnspecified carries no guarantee.
	FixUnspecified
)

func (a Applicability) String() string {
	switch a {
	case FixAlways:
		return "always"
	case FixMaybeIncorrect:
		return "maybe-incorrect"
	default:
		return "unspecified"
	}
}

type FixEdit struct {
	Span    source.Span
	NewText string
	OldText string // optional guard checked before applying
}

type Fix struct {
	Title         string
	Applicability Applicability
	Edits         []FixEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Category string
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Category: code.DefaultCategory(),
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// Label is the category when present, otherwise the code id.
func (d Diagnostic) Label() string {
	if d.Category != "" {
		return d.Category
	}
	return d.Code.ID()
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(title string, app Applicability, edits ...FixEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Applicability: app, Edits: edits})
	return d
}
