package lexer

import (
	"lintel/internal/diag"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

// scanString scans a '...' or "..." literal. Escapes are skipped, not
// validated; a line continuation (backslash-newline) is allowed.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); b {
		case quote:
			lx.cursor.Bump()
			return lx.emit(syntax.StringLit, start)
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			if lx.cursor.Peek() == '\r' && lx.cursor.PeekAt(1) == '\n' {
				lx.cursor.Bump()
			}
			lx.bumpRune()
		case '\n', '\r':
			tok := lx.emit(syntax.ErrorToken, start)
			lx.errLex(diag.LexUnterminatedString, tok.Range, "newline in string literal")
			return tok
		default:
			lx.cursor.Bump()
		}
	}
	tok := lx.emit(syntax.ErrorToken, start)
	lx.errLex(diag.LexUnterminatedString, tok.Range, "unterminated string literal")
	return tok
}
