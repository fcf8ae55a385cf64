package token

import (
	"lintel/internal/source"
	"lintel/internal/syntax"
)

// Token is a significant token with its surrounding trivia.
type Token struct {
	Kind     syntax.Kind
	Range    source.TextRange
	Text     string
	Leading  []Trivia
	Trailing []Trivia
}

// FullRange covers the token and its trivia.
func (t Token) FullRange() source.TextRange {
	r := t.Range
	if len(t.Leading) > 0 {
		r.Start = t.Leading[0].Range.Start
	}
	if len(t.Trailing) > 0 {
		r.End = t.Trailing[len(t.Trailing)-1].Range.End
	}
	return r
}

// HasPrecedingLineBreak reports whether a newline appears in the leading trivia.
// Automatic semicolon insertion depends on it.
func (t Token) HasPrecedingLineBreak() bool {
	for _, tr := range t.Leading {
		if tr.Kind == syntax.Newline {
			return true
		}
		if tr.Kind == syntax.MultiLineComment && containsNewline(tr.Text) {
			return true
		}
	}
	return false
}

func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }
func (t Token) IsIdent() bool   { return t.Kind == syntax.Ident }
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

func containsNewline(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return true
		}
	}
	return false
}
