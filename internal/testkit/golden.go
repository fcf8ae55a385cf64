package testkit

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"lintel/internal/diag"
	"lintel/internal/source"
)

// goldenLine is one diagnostic or note flattened to a single line.
type goldenLine struct {
	kind  string
	label string
	path  string
	pos   source.LineCol
	msg   string
}

func (l goldenLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.kind, l.label, l.path, l.pos.Line, l.pos.Col, l.msg)
}

func compareGolden(a, b goldenLine) int {
	return cmp.Or(
		strings.Compare(a.path, b.path),
		cmp.Compare(a.pos.Line, b.pos.Line),
		cmp.Compare(a.pos.Col, b.pos.Col),
		strings.Compare(a.label, b.label),
	)
}

// GoldenDiagnostics renders one line per diagnostic, sorted by
// location, so tests can compare a whole run against a literal:
//
//	warning lint/suspicious/noDoubleEquals a.js:1:3 Use === instead of ==
//
// Notes become extra lines of kind "note" carrying their parent's label.
// Spans pointing outside fs are skipped.
func GoldenDiagnostics(diags []diag.Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var lines []goldenLine
	at := func(kind, label string, span source.Span, msg string) {
		if int(span.File) >= fs.Len() {
			return
		}
		start, _ := fs.Resolve(span)
		path := fs.Get(span.File).FormatPath("relative", fs.BaseDir())
		lines = append(lines, goldenLine{kind: kind, label: label, path: cleanGoldenPath(path), pos: start, msg: flattenMessage(msg)})
	}
	for _, d := range diags {
		label := d.Label()
		at(diag.SeverityLabel(d.Severity), label, d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			at("note", label, n.Span, n.Msg)
		}
	}
	slices.SortStableFunc(lines, compareGolden)

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

func cleanGoldenPath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

// flattenMessage joins a multi-line message into one line.
func flattenMessage(msg string) string {
	return strings.TrimSpace(strings.Join(strings.FieldsFunc(msg, func(r rune) bool {
		return r == '\n' || r == '\r'
	}), " "))
}
