package testkit

import (
	"testing"

	"lintel/internal/diag"
	"lintel/internal/source"
)

func TestGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")
	file := fs.Add("/workspace/src/sample.js", []byte("a\nb\n"), 0)

	diags := []diag.Diagnostic{
		{
			Severity: diag.SevWarning,
			Code:     diag.LintRule,
			Category: "lint/suspicious/noDoubleEquals",
			Message:  "another",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
		{
			Severity: diag.SevError,
			Code:     diag.SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes:    []diag.Note{{Span: source.Span{File: file, Start: 2, End: 3}, Msg: "note line"}},
		},
	}

	expected := "error SYN2001 src/sample.js:1:1 first line second\n" +
		"note SYN2001 src/sample.js:2:1 note line\n" +
		"warning lint/suspicious/noDoubleEquals src/sample.js:2:1 another"

	if got := GoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}
