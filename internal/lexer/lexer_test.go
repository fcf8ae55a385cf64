package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"lintel/internal/diag"
	"lintel/internal/lexer"
	"lintel/internal/source"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.js", []byte(input)))
	bag := diag.NewBag(0)
	return lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == syntax.EOF {
			return tokens
		}
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func expectTokens(t *testing.T, input string, expected ...syntax.Kind) {
	t.Helper()
	lx, bag := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	tokens = tokens[:len(tokens)-1]

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %v\nerrors: %d",
			len(expected), len(tokens), input, tokensToString(tokens), bag.Len())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
}

func TestIdentifiersAndKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  syntax.Kind
	}{
		{"foo", syntax.Ident},
		{"$el", syntax.Ident},
		{"_private", syntax.Ident},
		{"x1$", syntax.Ident},
		{"café", syntax.Ident},
		{"if", syntax.IfKw},
		{"typeof", syntax.TypeofKw},
		{"instanceof", syntax.InstanceofKw},
		{"iff", syntax.Ident},
		{"Null", syntax.Ident},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, _ := makeTestLexer(tt.input)
			tok := lx.Next()
			if tok.Kind != tt.kind || tok.Text != tt.input {
				t.Fatalf("got %v %q", tok.Kind, tok.Text)
			}
		})
	}
}

func TestOperatorsAreGreedy(t *testing.T) {
	expectTokens(t, "a === b !== c == d != e",
		syntax.Ident, syntax.EqEqEq, syntax.Ident, syntax.BangEqEq, syntax.Ident,
		syntax.EqEq, syntax.Ident, syntax.BangEq, syntax.Ident)
	expectTokens(t, "x >>>= 1 ?? y ** 2",
		syntax.Ident, syntax.UShrEq, syntax.NumberLit, syntax.QuestionQuestion,
		syntax.Ident, syntax.StarStar, syntax.NumberLit)
	expectTokens(t, "i++ - --j",
		syntax.Ident, syntax.PlusPlus, syntax.Minus, syntax.MinusMinus, syntax.Ident)
	expectTokens(t, "a&&=b||=c??=d",
		syntax.Ident, syntax.AmpAmpEq, syntax.Ident, syntax.PipePipeEq, syntax.Ident,
		syntax.QuestionQuestionEq, syntax.Ident)
}

func TestNumbers(t *testing.T) {
	for _, in := range []string{"0", "42", "3.14", ".5", "1e10", "2E-3", "0xFF", "0b1010", "0o17", "1_000", "10n"} {
		lx, bag := makeTestLexer(in)
		tok := lx.Next()
		if tok.Kind != syntax.NumberLit || tok.Text != in {
			t.Errorf("%q: got %v %q", in, tok.Kind, tok.Text)
		}
		if bag.Len() != 0 {
			t.Errorf("%q: unexpected errors %v", in, bag.Items())
		}
	}

	for _, in := range []string{"0x", "1e", "3in"} {
		lx, bag := makeTestLexer(in)
		collectAllTokens(lx)
		if bag.Len() == 0 {
			t.Errorf("%q: expected a lexical error", in)
		}
	}
}

func TestStrings(t *testing.T) {
	expectTokens(t, `'a' "b\"c" 'd\'e'`, syntax.StringLit, syntax.StringLit, syntax.StringLit)

	lx, bag := makeTestLexer("'open\n")
	tokens := collectAllTokens(lx)
	if tokens[0].Kind != syntax.ErrorToken || tokens[0].Text != "'open" {
		t.Fatalf("got %v", tokensToString(tokens))
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected unterminated string error, got %v", bag.Items())
	}
}

func TestTriviaAttachment(t *testing.T) {
	lx, _ := makeTestLexer("a; // note\n  /* b */ b")
	tokens := collectAllTokens(lx)

	semi := tokens[1]
	if semi.Kind != syntax.Semicolon {
		t.Fatalf("expected ';', got %v", semi.Kind)
	}
	if len(semi.Trailing) != 2 || semi.Trailing[1].Kind != syntax.SingleLineComment || semi.Trailing[1].Text != "// note" {
		t.Fatalf("trailing = %+v", semi.Trailing)
	}

	b := tokens[2]
	kinds := make([]syntax.TriviaPieceKind, len(b.Leading))
	for i, tr := range b.Leading {
		kinds[i] = tr.Kind
	}
	want := []syntax.TriviaPieceKind{syntax.Newline, syntax.Whitespace, syntax.MultiLineComment, syntax.Whitespace}
	if fmt.Sprint(kinds) != fmt.Sprint(want) {
		t.Fatalf("leading = %v", kinds)
	}
	if !b.HasPrecedingLineBreak() || semi.HasPrecedingLineBreak() {
		t.Fatalf("line break detection wrong")
	}
}

func TestEOFCarriesFinalTrivia(t *testing.T) {
	lx, _ := makeTestLexer("x\n// end\n")
	tokens := collectAllTokens(lx)
	eof := tokens[len(tokens)-1]
	if len(eof.Leading) != 3 {
		t.Fatalf("EOF leading = %+v", eof.Leading)
	}
	if again := lx.Next(); again.Kind != syntax.EOF || len(again.Leading) != 0 {
		t.Fatalf("EOF must repeat without trivia")
	}
}

func TestTokensCoverInput(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"if (!true) {a;} else {b;}",
		"var x = 1, y = 'two'; /* c */ x == y\n",
		"function f(a, b) { return a ** b } // tail",
		"@ # ¤",
	}
	for _, in := range inputs {
		lx, _ := makeTestLexer(in)
		var b strings.Builder
		for _, tok := range collectAllTokens(lx) {
			for _, tr := range tok.Leading {
				b.WriteString(tr.Text)
			}
			b.WriteString(tok.Text)
			for _, tr := range tok.Trailing {
				b.WriteString(tr.Text)
			}
		}
		if b.String() != in {
			t.Errorf("lossy lexing: %q -> %q", in, b.String())
		}
	}
}

func TestUnknownCharacter(t *testing.T) {
	lx, bag := makeTestLexer("a # b")
	tokens := collectAllTokens(lx)
	if tokens[1].Kind != syntax.ErrorToken || tokens[1].Text != "#" {
		t.Fatalf("got %v", tokensToString(tokens))
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("errors = %v", bag.Items())
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if lx.Peek().Text != "a" || lx.Peek().Text != "a" {
		t.Fatalf("peek advanced")
	}
	if lx.Next().Text != "a" || lx.Next().Text != "b" {
		t.Fatalf("next after peek is wrong")
	}
}

func TestTokenize(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.js", []byte("a.b")))
	toks := lexer.Tokenize(file, lexer.Options{})
	if len(toks) != 4 || toks[1].Kind != syntax.Dot || toks[3].Kind != syntax.EOF {
		t.Fatalf("got %v", tokensToString(toks))
	}
}
