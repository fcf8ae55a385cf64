package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"lintel/internal/lexer"
	"lintel/internal/parser"
	"lintel/internal/source"
)

func TestFormatTreePretty(t *testing.T) {
	root := parser.ParseText("a; // c").Root

	var buf bytes.Buffer
	if err := FormatTreePretty(&buf, root, TreeOpts{}); err != nil {
		t.Fatalf("FormatTreePretty: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Module@0..7\n",
		"    ExpressionStatement@0..7\n",
		`Semicolon@1..2 ";" trail=[Whitespace Comments]`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := FormatTreePretty(&buf, root, TreeOpts{Trivia: true}); err != nil {
		t.Fatalf("FormatTreePretty: %v", err)
	}
	if !strings.Contains(buf.String(), `trail=[" " "// c"]`) {
		t.Fatalf("expected trivia text in:\n%s", buf.String())
	}
}

func TestBuildTreeJSON(t *testing.T) {
	tree := BuildTreeJSON(parser.ParseText("x;").Root)
	if tree.Kind != "Module" || len(tree.Children) == 0 {
		t.Fatalf("unexpected root: %+v", tree)
	}
	var texts []string
	var walk func(n *TreeNodeJSON)
	walk = func(n *TreeNodeJSON) {
		if n == nil {
			return
		}
		if n.Text != "" {
			texts = append(texts, n.Text)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(tree)
	if strings.Join(texts, "") != "x;" {
		t.Fatalf("token texts = %q", texts)
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.js", []byte("let x = 1; // one\n"))
	tokens := lexer.Tokenize(fs.Get(id), lexer.Options{})

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, tokens, fs, id); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`  1: LetKw              "let" at 1:1-1:4 (trailing: Whitespace)`,
		`(trailing: Whitespace, Comments)`,
		`EOF`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, tokens); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"kind": "LetKw"`) {
		t.Fatalf("unexpected JSON:\n%s", buf.String())
	}
}
