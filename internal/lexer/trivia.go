package lexer

import (
	"lintel/internal/diag"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

// collectTrivia gathers consecutive trivia.
//   - runs of ' ', '\t', '\v', '\f' coalesce into one Whitespace piece
//   - runs of '\n' / '\r' coalesce into one Newline piece
//   - //... up to the newline is a SingleLineComment
//   - /* ... */ is a MultiLineComment (no nesting); unterminated ones are reported and cut at EOF
//
// In trailing mode collection stops before the first newline, which then
// belongs to the next token's leading trivia.
func (lx *Lexer) collectTrivia(trailing bool) []token.Trivia {
	var out []token.Trivia
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case isBlank(b):
			for isBlank(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			out = append(out, lx.trivia(syntax.Whitespace, start))
			continue

		case b == '\n' || b == '\r':
			if trailing {
				return out
			}
			for c := lx.cursor.Peek(); c == '\n' || c == '\r'; c = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
			out = append(out, lx.trivia(syntax.Newline, start))
			continue

		case b == '/':
			if kind, ok := lx.scanComment(); ok {
				out = append(out, lx.trivia(kind, start))
				continue
			}
		}
		break
	}
	return out
}

func (lx *Lexer) trivia(kind syntax.TriviaPieceKind, start Mark) token.Trivia {
	r := lx.cursor.RangeFrom(start)
	return token.Trivia{Kind: kind, Range: r, Text: string(lx.file.Content[r.Start:r.End])}
}

// scanComment consumes a comment starting at '/' or leaves the cursor untouched.
func (lx *Lexer) scanComment() (syntax.TriviaPieceKind, bool) {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' {
		return 0, false
	}
	start := lx.cursor.Mark()
	switch b1 {
	case '/':
		for !lx.cursor.EOF() {
			if c := lx.cursor.Peek(); c == '\n' || c == '\r' {
				break
			}
			lx.cursor.Bump()
		}
		return syntax.SingleLineComment, true

	case '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		for !lx.cursor.EOF() {
			if lx.try2('*', '/') {
				return syntax.MultiLineComment, true
			}
			lx.cursor.Bump()
		}
		lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.RangeFrom(start), "unterminated block comment")
		return syntax.MultiLineComment, true
	}
	return 0, false
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\v' || b == '\f'
}
