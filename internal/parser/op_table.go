package parser

import "lintel/internal/syntax"

// binding powers, higher binds tighter
const (
	precNone = iota
	precCoalesce
	precLogicalOr
	precLogicalAnd
	precBitwiseOr
	precBitwiseXor
	precBitwiseAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precExponent
)

// binaryPrec returns the precedence of a binary operator, whether it is
// right-associative and the node kind it builds. prec is precNone for
// tokens that are not binary operators.
func binaryPrec(k syntax.Kind) (prec int, right bool, node syntax.Kind) {
	switch k {
	case syntax.QuestionQuestion:
		return precCoalesce, false, syntax.LogicalExpression
	case syntax.PipePipe:
		return precLogicalOr, false, syntax.LogicalExpression
	case syntax.AmpAmp:
		return precLogicalAnd, false, syntax.LogicalExpression
	case syntax.Pipe:
		return precBitwiseOr, false, syntax.BinaryExpression
	case syntax.Caret:
		return precBitwiseXor, false, syntax.BinaryExpression
	case syntax.Amp:
		return precBitwiseAnd, false, syntax.BinaryExpression
	case syntax.EqEq, syntax.BangEq, syntax.EqEqEq, syntax.BangEqEq:
		return precEquality, false, syntax.BinaryExpression
	case syntax.Lt, syntax.LtEq, syntax.Gt, syntax.GtEq, syntax.InstanceofKw, syntax.InKw:
		return precRelational, false, syntax.BinaryExpression
	case syntax.Shl, syntax.Shr, syntax.UShr:
		return precShift, false, syntax.BinaryExpression
	case syntax.Plus, syntax.Minus:
		return precAdditive, false, syntax.BinaryExpression
	case syntax.Star, syntax.Slash, syntax.Percent:
		return precMultiplicative, false, syntax.BinaryExpression
	case syntax.StarStar:
		return precExponent, true, syntax.BinaryExpression
	default:
		return precNone, false, syntax.Tombstone
	}
}

func isUnaryOp(k syntax.Kind) bool {
	switch k {
	case syntax.Bang, syntax.Tilde, syntax.Plus, syntax.Minus,
		syntax.TypeofKw, syntax.VoidKw, syntax.DeleteKw:
		return true
	}
	return false
}

func isUpdateOp(k syntax.Kind) bool {
	return k == syntax.PlusPlus || k == syntax.MinusMinus
}
