package syntax

import (
	"iter"

	"lintel/internal/source"
)

// TriviaPieceKind classifies non-significant text attached to tokens.
type TriviaPieceKind uint8

const (
	Whitespace TriviaPieceKind = iota
	Newline
	SingleLineComment
	MultiLineComment
	// Skipped is source the parser dropped during error recovery.
	Skipped
)

func (k TriviaPieceKind) String() string {
	switch k {
	case Whitespace:
		return "Whitespace"
	case Newline:
		return "Newline"
	case SingleLineComment:
		return "Comments"
	case MultiLineComment:
		return "MultiLineComment"
	case Skipped:
		return "Skipped"
	default:
		return "Trivia(?)"
	}
}

func (k TriviaPieceKind) IsComment() bool {
	return k == SingleLineComment || k == MultiLineComment
}

// TriviaPiece stores only a kind and a length; the text lives in the owning token.
type TriviaPiece struct {
	Kind TriviaPieceKind
	Len  source.TextSize
}

func triviaLen(pieces []TriviaPiece) source.TextSize {
	var n source.TextSize
	for _, p := range pieces {
		n += p.Len
	}
	return n
}

// TriviaList is the positioned view of a token's leading or trailing trivia.
type TriviaList struct {
	pieces []TriviaPiece
	text   string
	offset source.TextSize
}

func (l TriviaList) Len() int { return len(l.pieces) }

func (l TriviaList) Text() string { return l.text }

func (l TriviaList) TextRange() source.TextRange {
	return source.RangeAt(l.offset, source.SizeOf(len(l.text)))
}

// Pieces yields every trivia piece with its absolute range and text.
func (l TriviaList) Pieces() iter.Seq[SyntaxTriviaPiece] {
	return func(yield func(SyntaxTriviaPiece) bool) {
		var rel source.TextSize
		for _, p := range l.pieces {
			piece := SyntaxTriviaPiece{
				Kind:  p.Kind,
				Text:  l.text[rel : rel+p.Len],
				Range: source.RangeAt(l.offset+rel, p.Len),
			}
			if !yield(piece) {
				return
			}
			rel += p.Len
		}
	}
}

// HasComments reports whether the list contains a comment piece.
func (l TriviaList) HasComments() bool {
	for _, p := range l.pieces {
		if p.Kind.IsComment() {
			return true
		}
	}
	return false
}

// HasNewline reports whether the list contains a newline piece.
func (l TriviaList) HasNewline() bool {
	for _, p := range l.pieces {
		if p.Kind == Newline {
			return true
		}
	}
	return false
}

// SyntaxTriviaPiece is a positioned trivia piece.
type SyntaxTriviaPiece struct {
	Kind  TriviaPieceKind
	Text  string
	Range source.TextRange
}
