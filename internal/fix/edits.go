package fix

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"lintel/internal/analyzer"
	"lintel/internal/diag"
	"lintel/internal/source"
)

var (
	ErrEditConflict   = errors.New("fix edits overlap")
	ErrEditOutOfRange = errors.New("edit span out of range")
	ErrGuardMismatch  = errors.New("existing text does not match expected content")
)

// TextEdits turns the change from before to after into edits against before.
// Adjacent deletes and inserts are merged into one replacement.
func TextEdits(file source.FileID, before, after string) []diag.FixEdit {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	var (
		edits      []diag.FixEdit
		start, off uint32
		open       bool
		removed    strings.Builder
		inserted   strings.Builder
	)
	flush := func() {
		if !open {
			return
		}
		span := source.Span{File: file, Start: start, End: off}
		switch {
		case removed.Len() == 0:
			edits = append(edits, InsertText(span, inserted.String()))
		case inserted.Len() == 0:
			edits = append(edits, DeleteSpan(span, removed.String()))
		default:
			edits = append(edits, ReplaceSpan(span, inserted.String(), removed.String()))
		}
		open = false
		removed.Reset()
		inserted.Reset()
	}
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			flush()
			off += source.SizeOf(len(d.Text))
			continue
		}
		if !open {
			open, start = true, off
		}
		if d.Type == diffmatchpatch.DiffDelete {
			removed.WriteString(d.Text)
			off += source.SizeOf(len(d.Text))
		} else {
			inserted.WriteString(d.Text)
		}
	}
	flush()
	return edits
}

// ApplyEdits applies edits to content. Every edit is checked before any is
// applied: overlapping spans, spans past the end and failed OldText guards
// leave content untouched.
func ApplyEdits(content string, edits []diag.FixEdit) (string, error) {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b diag.FixEdit) int {
		if a.Span.Start != b.Span.Start {
			return int(a.Span.Start) - int(b.Span.Start)
		}
		return int(a.Span.End) - int(b.Span.End)
	})
	for i, e := range sorted {
		if e.Span.End < e.Span.Start || int(e.Span.End) > len(content) {
			return content, fmt.Errorf("%w: %s", ErrEditOutOfRange, e.Span)
		}
		if e.OldText != "" && content[e.Span.Start:e.Span.End] != e.OldText {
			return content, fmt.Errorf("%w at %s", ErrGuardMismatch, e.Span)
		}
		if i > 0 && spansConflict(sorted[i-1], e) {
			return content, fmt.Errorf("%w: %s and %s", ErrEditConflict, sorted[i-1].Span, e.Span)
		}
	}

	var sb strings.Builder
	sb.Grow(len(content))
	last := uint32(0)
	for _, e := range sorted {
		sb.WriteString(content[last:e.Span.Start])
		sb.WriteString(e.NewText)
		last = e.Span.End
	}
	sb.WriteString(content[last:])
	return sb.String(), nil
}

// spansConflict reports whether two text edits' spans overlap.
// Spans are treated as half-open intervals [Start, End). Two zero-length edits
// conflict only when they insert at the same position. A zero-length edit
// conflicts with a non-zero span if its position is strictly inside it.
func spansConflict(a, b diag.FixEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return aStart == bStart
	}
	if aStart == aEnd {
		return bStart < aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart < bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

// ActionFix commits the action's mutation and expresses the result as text
// edits against before, the text the action's tree was parsed from.
func ActionFix(file source.FileID, before string, a analyzer.RuleAction) (diag.Fix, error) {
	if a.Mutation == nil {
		return diag.Fix{}, fmt.Errorf("fix: action %q has no mutation", a.Message)
	}
	root, err := a.Mutation.Commit()
	if err != nil {
		return diag.Fix{}, fmt.Errorf("fix: %s: %w", a.Rule, err)
	}
	return New(a.Message, TextEdits(file, before, root.Text()), WithApplicability(a.Applicability)), nil
}
