package lexer

import (
	"lintel/internal/diag"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

// scanNumber accepts 0x/0o/0b integers, decimals with optional fraction and
// exponent, leading-dot fractions, '_' separators and a trailing 'n' (BigInt).
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		var digit func(byte) bool
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			digit = isHex
		case 'o', 'O':
			digit = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'b', 'B':
			digit = func(b byte) bool { return b == '0' || b == '1' }
		}
		if digit != nil {
			lx.cursor.Off += 2
			n := lx.eatDigits(digit)
			lx.cursor.Eat('n')
			if n == 0 {
				tok := lx.emit(syntax.NumberLit, start)
				lx.errLex(diag.LexBadNumber, tok.Range, "missing digits after base prefix")
				return tok
			}
			return lx.finishNumber(start)
		}
	}

	lx.eatDigits(isDec)
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.eatDigits(isDec)
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if lx.eatDigits(isDec) == 0 {
			lx.cursor.Reset(mark)
			lx.cursor.Bump()
			tok := lx.emit(syntax.NumberLit, start)
			lx.errLex(diag.LexBadNumber, tok.Range, "missing exponent digits")
			return tok
		}
	} else {
		lx.cursor.Eat('n')
	}
	return lx.finishNumber(start)
}

func (lx *Lexer) eatDigits(digit func(byte) bool) int {
	n := 0
	for b := lx.cursor.Peek(); digit(b) || (b == '_' && n > 0); b = lx.cursor.Peek() {
		lx.cursor.Bump()
		n++
	}
	return n
}

// finishNumber rejects an identifier glued to the literal, like 3in.
func (lx *Lexer) finishNumber(start Mark) token.Token {
	if b := lx.cursor.Peek(); isIdentStartByte(b) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		tok := lx.emit(syntax.NumberLit, start)
		lx.errLex(diag.LexBadNumber, tok.Range, "identifier starts immediately after numeric literal")
		return tok
	}
	return lx.emit(syntax.NumberLit, start)
}
