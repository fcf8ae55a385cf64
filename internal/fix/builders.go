package fix

import (
	"lintel/internal/diag"
	"lintel/internal/source"
)

// Option mutates fix during construction.
type Option func(*diag.Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app diag.Applicability) Option {
	return func(f *diag.Fix) {
		f.Applicability = app
	}
}

func applyOptions(f diag.Fix, opts []Option) diag.Fix {
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// New bundles edits into a fix. Fixes default to FixUnspecified.
func New(title string, edits []diag.FixEdit, opts ...Option) diag.Fix {
	return applyOptions(diag.Fix{
		Title:         title,
		Applicability: diag.FixUnspecified,
		Edits:         edits,
	}, opts)
}

// InsertText creates an edit inserting text at the start of at.
func InsertText(at source.Span, text string) diag.FixEdit {
	return diag.FixEdit{
		Span:    source.Span{File: at.File, Start: at.Start, End: at.Start},
		NewText: text,
	}
}

// DeleteSpan removes text covered by span. A non-empty expect guards the
// edit against stale content.
func DeleteSpan(span source.Span, expect string) diag.FixEdit {
	return diag.FixEdit{Span: span, OldText: expect}
}

// ReplaceSpan replaces text covered by span with newText.
func ReplaceSpan(span source.Span, newText, expect string) diag.FixEdit {
	return diag.FixEdit{Span: span, NewText: newText, OldText: expect}
}
