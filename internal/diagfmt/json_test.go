package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"lintel/internal/diag"
	"lintel/internal/source"
)

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.js", []byte("a;\nif (!a) {b;} else {c;}\n"))

	bag := diag.NewBag(10)
	d := lintDiag(fileID, 7, 9, "lint/style/noNegationElse", "Invert blocks when performing a negation test.")
	d.Severity = diag.SevWarning
	bag.Add(d)

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", output)
	}
	got := output.Diagnostics[0]
	if got.Severity != "WARNING" || got.Code != "LNT4000" || got.Category != "lint/style/noNegationElse" {
		t.Fatalf("unexpected header fields: %+v", got)
	}
	loc := got.Location
	if loc.File != "test.js" || loc.StartByte != 7 || loc.EndByte != 9 {
		t.Fatalf("unexpected location: %+v", loc)
	}
	if loc.StartLine != 2 || loc.StartCol != 5 || loc.EndLine != 2 || loc.EndCol != 7 {
		t.Fatalf("unexpected positions: %+v", loc)
	}
}

func TestJSONWithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.js", []byte("x;\n"))
	bag := diag.NewBag(10)
	bag.Add(lintDiag(fileID, 0, 1, "lint/test/rule", "m"))

	output := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	loc := output.Diagnostics[0].Location
	if loc.StartLine != 0 || loc.StartCol != 0 {
		t.Fatalf("positions should be omitted: %+v", loc)
	}
}

func TestJSONNotesFixesAndPreview(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("fix.js", []byte("x == 1;\n"))

	op := source.Span{File: fileID, Start: 2, End: 4}
	d := lintDiag(fileID, 2, 4, "lint/suspicious/noDoubleEquals", "Use === instead of ==")
	d = d.WithNote(op, "== coerces its operands")
	d = d.WithFix("Use ===", diag.FixMaybeIncorrect, diag.FixEdit{Span: op, NewText: "==="})
	bag := diag.NewBag(10)
	bag.Add(d)

	output := BuildDiagnosticsOutput(bag, fs, JSONOpts{
		PathMode:        PathModeBasename,
		IncludeNotes:    true,
		IncludeFixes:    true,
		IncludePreviews: true,
	})
	got := output.Diagnostics[0]
	if len(got.Notes) != 1 || got.Notes[0].Message != "== coerces its operands" {
		t.Fatalf("unexpected notes: %+v", got.Notes)
	}
	if len(got.Fixes) != 1 || got.Fixes[0].Applicability != "maybe-incorrect" {
		t.Fatalf("unexpected fixes: %+v", got.Fixes)
	}
	edit := got.Fixes[0].Edits[0]
	if edit.NewText != "===" {
		t.Fatalf("unexpected edit: %+v", edit)
	}
	if len(edit.BeforeLines) != 1 || edit.BeforeLines[0] != "x == 1;" {
		t.Fatalf("unexpected before lines: %q", edit.BeforeLines)
	}
	if len(edit.AfterLines) != 1 || edit.AfterLines[0] != "x === 1;" {
		t.Fatalf("unexpected after lines: %q", edit.AfterLines)
	}

	plain := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	if plain.Diagnostics[0].Notes != nil || plain.Diagnostics[0].Fixes != nil {
		t.Fatalf("notes and fixes should be opt-in: %+v", plain.Diagnostics[0])
	}
}

func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("many.js", []byte("a;b;c;d;\n"))
	bag := diag.NewBag(3)
	for i := range uint32(4) {
		bag.Add(lintDiag(fileID, i*2, i*2+1, "lint/test/rule", "m"))
	}

	output := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if output.Count != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", output.Count)
	}
	// one dropped by the bag, one by Max
	if output.Dropped != 2 {
		t.Fatalf("expected 2 dropped, got %d", output.Dropped)
	}
}

func TestJSONRuleAndSummary(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("sum.js", []byte("a;b;c;\n"))
	bag := diag.NewBag(10)
	bag.Add(lintDiag(fileID, 0, 1, "lint/suspicious/noDebugger", "m"))
	warn := lintDiag(fileID, 2, 3, "lint/style/noVar", "m")
	warn.Severity = diag.SevWarning
	bag.Add(warn)
	other := lintDiag(fileID, 4, 5, "suppressions/unused", "m")
	other.Severity = diag.SevWarning
	bag.Add(other)

	output := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	if output.Diagnostics[0].Rule != "suspicious/noDebugger" {
		t.Fatalf("unexpected rule: %q", output.Diagnostics[0].Rule)
	}
	if output.Diagnostics[2].Rule != "" {
		t.Fatalf("non-lint category should have no rule: %q", output.Diagnostics[2].Rule)
	}
	if output.Summary.Errors != 1 || output.Summary.Warnings != 2 {
		t.Fatalf("unexpected summary: %+v", output.Summary)
	}
}
