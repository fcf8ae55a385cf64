package token

import (
	"lintel/internal/source"
	"lintel/internal/syntax"
)

// Trivia is one positioned piece of whitespace or comment.
type Trivia struct {
	Kind  syntax.TriviaPieceKind
	Range source.TextRange
	Text  string
}

// Pieces converts positioned trivia into the length-only green form.
func Pieces(list []Trivia) []syntax.TriviaPiece {
	if len(list) == 0 {
		return nil
	}
	out := make([]syntax.TriviaPiece, len(list))
	for i, tr := range list {
		out[i] = syntax.TriviaPiece{Kind: tr.Kind, Len: tr.Range.Len()}
	}
	return out
}
