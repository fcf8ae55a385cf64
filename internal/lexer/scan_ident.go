package lexer

import (
	"lintel/internal/diag"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

// scanIdentOrKeyword scans an identifier and resolves keywords (case sensitive).
// Unicode escapes in identifiers are not supported and lex as an error token.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		return lx.scanOperatorOrPunct()
	}
	lx.bumpRune()
	for {
		if b := lx.cursor.Peek(); b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	tok := lx.emit(syntax.Ident, start)
	if k, ok := syntax.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

func (lx *Lexer) scanUnknown(start Mark) token.Token {
	lx.cursor.Reset(start)
	lx.bumpRune()
	tok := lx.emit(syntax.ErrorToken, start)
	lx.errLex(diag.LexUnknownChar, tok.Range, "unknown character "+quoteRune(tok.Text))
	return tok
}

func quoteRune(s string) string {
	return "'" + s + "'"
}
