package lexer

import (
	"lintel/internal/source"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), opts: opts}
}

// Next returns the next significant token with its leading and trailing
// trivia attached. After EOF it keeps returning EOF; the first EOF carries
// whatever trivia ends the file.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	leading := lx.collectTrivia(false)
	if lx.cursor.EOF() {
		return token.Token{
			Kind:    syntax.EOF,
			Range:   source.TextRange{Start: lx.cursor.Off, End: lx.cursor.Off},
			Leading: leading,
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString(ch)
	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = leading
	tok.Trailing = lx.collectTrivia(true)
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		t := lx.Next()
		lx.look = &t
	}
	return *lx.look
}

// Tokenize lexes the whole file; the last token is always EOF.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	out := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == syntax.EOF {
			return out
		}
	}
}

func (lx *Lexer) emit(kind syntax.Kind, start Mark) token.Token {
	r := lx.cursor.RangeFrom(start)
	return token.Token{Kind: kind, Range: r, Text: string(lx.file.Content[r.Start:r.End])}
}
