package token

import (
	"testing"

	"lintel/internal/source"
	"lintel/internal/syntax"
)

func TestFullRangeAndLineBreak(t *testing.T) {
	tok := Token{
		Kind:  syntax.Ident,
		Range: source.TextRange{Start: 6, End: 7},
		Text:  "x",
		Leading: []Trivia{
			{Kind: syntax.MultiLineComment, Range: source.TextRange{Start: 0, End: 5}, Text: "/*\n*/"},
			{Kind: syntax.Whitespace, Range: source.TextRange{Start: 5, End: 6}, Text: " "},
		},
		Trailing: []Trivia{{Kind: syntax.Whitespace, Range: source.TextRange{Start: 7, End: 9}, Text: "  "}},
	}
	if got := tok.FullRange(); got != (source.TextRange{Start: 0, End: 9}) {
		t.Fatalf("FullRange = %v", got)
	}
	if !tok.HasPrecedingLineBreak() {
		t.Fatalf("newline inside block comment must count")
	}
	pieces := Pieces(tok.Leading)
	if len(pieces) != 2 || pieces[0].Len != 5 || pieces[1].Kind != syntax.Whitespace {
		t.Fatalf("pieces = %+v", pieces)
	}
	if Pieces(nil) != nil {
		t.Fatalf("empty trivia must stay nil")
	}
}
