package lexer

import (
	"lintel/internal/syntax"
	"lintel/internal/token"
)

// scanOperatorOrPunct is greedy: four-byte operators first, then three, two, one.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k syntax.Kind) token.Token { return lx.emit(k, start) }

	switch {
	case lx.try4('>', '>', '>', '='):
		return emit(syntax.UShrEq)
	case lx.try3('=', '=', '='):
		return emit(syntax.EqEqEq)
	case lx.try3('!', '=', '='):
		return emit(syntax.BangEqEq)
	case lx.try3('*', '*', '='):
		return emit(syntax.StarStarEq)
	case lx.try3('<', '<', '='):
		return emit(syntax.ShlEq)
	case lx.try3('>', '>', '='):
		return emit(syntax.ShrEq)
	case lx.try3('>', '>', '>'):
		return emit(syntax.UShr)
	case lx.try3('&', '&', '='):
		return emit(syntax.AmpAmpEq)
	case lx.try3('|', '|', '='):
		return emit(syntax.PipePipeEq)
	case lx.try3('?', '?', '='):
		return emit(syntax.QuestionQuestionEq)
	case lx.try2('=', '='):
		return emit(syntax.EqEq)
	case lx.try2('!', '='):
		return emit(syntax.BangEq)
	case lx.try2('<', '='):
		return emit(syntax.LtEq)
	case lx.try2('>', '='):
		return emit(syntax.GtEq)
	case lx.try2('<', '<'):
		return emit(syntax.Shl)
	case lx.try2('>', '>'):
		return emit(syntax.Shr)
	case lx.try2('&', '&'):
		return emit(syntax.AmpAmp)
	case lx.try2('|', '|'):
		return emit(syntax.PipePipe)
	case lx.try2('?', '?'):
		return emit(syntax.QuestionQuestion)
	case lx.try2('*', '*'):
		return emit(syntax.StarStar)
	case lx.try2('+', '+'):
		return emit(syntax.PlusPlus)
	case lx.try2('-', '-'):
		return emit(syntax.MinusMinus)
	case lx.try2('+', '='):
		return emit(syntax.PlusEq)
	case lx.try2('-', '='):
		return emit(syntax.MinusEq)
	case lx.try2('*', '='):
		return emit(syntax.StarEq)
	case lx.try2('/', '='):
		return emit(syntax.SlashEq)
	case lx.try2('%', '='):
		return emit(syntax.PercentEq)
	case lx.try2('&', '='):
		return emit(syntax.AmpEq)
	case lx.try2('|', '='):
		return emit(syntax.PipeEq)
	case lx.try2('^', '='):
		return emit(syntax.CaretEq)
	}

	switch lx.cursor.Bump() {
	case ';':
		return emit(syntax.Semicolon)
	case ',':
		return emit(syntax.Comma)
	case '(':
		return emit(syntax.LParen)
	case ')':
		return emit(syntax.RParen)
	case '{':
		return emit(syntax.LBrace)
	case '}':
		return emit(syntax.RBrace)
	case '[':
		return emit(syntax.LBracket)
	case ']':
		return emit(syntax.RBracket)
	case '.':
		return emit(syntax.Dot)
	case '?':
		return emit(syntax.Question)
	case ':':
		return emit(syntax.Colon)
	case '=':
		return emit(syntax.Eq)
	case '!':
		return emit(syntax.Bang)
	case '<':
		return emit(syntax.Lt)
	case '>':
		return emit(syntax.Gt)
	case '+':
		return emit(syntax.Plus)
	case '-':
		return emit(syntax.Minus)
	case '*':
		return emit(syntax.Star)
	case '/':
		return emit(syntax.Slash)
	case '%':
		return emit(syntax.Percent)
	case '&':
		return emit(syntax.Amp)
	case '|':
		return emit(syntax.Pipe)
	case '^':
		return emit(syntax.Caret)
	case '~':
		return emit(syntax.Tilde)
	default:
		return lx.scanUnknown(start)
	}
}
