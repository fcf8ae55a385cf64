package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"lintel/internal/diag"
	"lintel/internal/source"
)

func lintDiag(file source.FileID, start, end uint32, category, msg string) diag.Diagnostic {
	d := diag.New(diag.SevError, diag.LintRule, source.Span{File: file, Start: start, End: end}, msg)
	d.Category = category
	return d
}

func render(bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) string {
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, opts)
	return buf.String()
}

func TestPrettyHeaderAndCarets(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.js", []byte("let x = a == 1;\n"))
	bag := diag.NewBag(10)
	bag.Add(lintDiag(fileID, 10, 12, "lint/suspicious/noDoubleEquals", "Use === instead of =="))

	out := render(bag, fs, PrettyOpts{PathMode: PathModeBasename})
	for _, want := range []string{
		"test.js:1:11: ERROR lint/suspicious/noDoubleEquals: Use === instead of ==\n",
		"1 | let x = a == 1;\n",
		"  | " + strings.Repeat(" ", 10) + "^^\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("unexpected escape codes:\n%s", out)
	}
}

func TestPrettyParseErrorShowsCode(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.js", []byte("let x = 1\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynExpectSemicolon, source.Span{File: fileID, Start: 9, End: 9}, "expected ';'"))

	out := render(bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if !strings.Contains(out, "ERROR SYN2004 parse: expected ';'") {
		t.Fatalf("missing code in header:\n%s", out)
	}
	// an empty span still gets one caret
	if !strings.Contains(out, "  | "+strings.Repeat(" ", 9)+"^\n") {
		t.Fatalf("missing caret:\n%s", out)
	}
}

func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	fileID := fs.AddVirtual("/home/user/project/src/test.js", []byte("debugger;\n"))
	bag := diag.NewBag(10)
	bag.Add(lintDiag(fileID, 0, 9, "lint/suspicious/noDebugger", "This is an unexpected use of the debugger statement."))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.js:1:1"},
		{"Relative path", PathModeRelative, "src/test.js:1:1"},
		{"Basename only", PathModeBasename, "test.js:1:1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			if !strings.Contains(out, tt.contains) {
				t.Fatalf("expected output to contain %q, got:\n%s", tt.contains, out)
			}
		})
	}
}

func TestPrettyContextAndTabs(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("ctx.js", []byte("a;\n\tb;\nc;\nd;\n"))
	bag := diag.NewBag(10)
	bag.Add(lintDiag(fileID, 4, 5, "lint/test/rule", "here"))

	out := render(bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})
	for _, want := range []string{"1 | a;\n", "2 |     b;\n", "  |     ^\n", "3 | c;\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "4 | d;") {
		t.Fatalf("context leaked past one line:\n%s", out)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.js", []byte("if (a == b) {}\n"))
	bag := diag.NewBag(4)

	op := source.Span{File: fileID, Start: 6, End: 8}
	d := lintDiag(fileID, 6, 8, "lint/suspicious/noDoubleEquals", "Use === instead of ==")
	d = d.WithNote(source.Span{File: fileID, Start: 4, End: 5}, "left operand")
	d = d.WithFix("Use ===", diag.FixMaybeIncorrect, diag.FixEdit{Span: op, NewText: "===", OldText: "=="})
	bag.Add(d)

	out := render(bag, fs, PrettyOpts{
		PathMode:    PathModeBasename,
		ShowNotes:   true,
		ShowFixes:   true,
		ShowPreview: true,
	})
	for _, want := range []string{
		"note: test.js:1:5: left operand",
		"fix #1: Use === (maybe-incorrect)",
		"apply=\"===\"",
		"preview:",
		"- if (a == b) {}",
		"+ if (a === b) {}",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.js", []byte("x;\n"))
	bag := diag.NewBag(1)
	bag.Add(lintDiag(fileID, 0, 1, "lint/test/rule", "colored"))

	out := render(bag, fs, PrettyOpts{Color: true})
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected escape codes:\n%q", out)
	}
}

func TestShort(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.js", []byte("let x = a == 1;\n"))
	bag := diag.NewBag(10)
	bag.Add(lintDiag(fileID, 10, 12, "lint/suspicious/noDoubleEquals", "Use === instead of =="))

	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, ShortOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("Short: %v", err)
	}
	want := "test.js:1:11: error lint/suspicious/noDoubleEquals: Use === instead of ==\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
