package ast

import "lintel/internal/syntax"

// Token builds a trivia-free token with the kind's fixed text.
func Token(kind syntax.Kind) *syntax.GreenToken {
	return syntax.NewGreenToken(kind, kind.Text(), nil, nil)
}

// TokenWithSpace builds a token followed by one space of trailing trivia.
func TokenWithSpace(kind syntax.Kind) *syntax.GreenToken {
	return syntax.NewGreenToken(kind, kind.Text()+" ", nil,
		[]syntax.TriviaPiece{{Kind: syntax.Whitespace, Len: 1}})
}

// Ident builds an identifier token.
func Ident(name string) *syntax.GreenToken {
	return syntax.NewGreenToken(syntax.Ident, name, nil, nil)
}

// WithTrivia rebuilds tok with the trivia of like; the trimmed text of tok is kept.
func WithTrivia(tok *syntax.GreenToken, like *syntax.GreenToken) *syntax.GreenToken {
	return syntax.NewGreenToken(tok.Kind(), like.LeadingText()+tok.TextTrimmed()+like.TrailingText(),
		like.Leading(), like.Trailing())
}

// WithoutTrailingTrivia drops the trailing trivia of tok.
func WithoutTrailingTrivia(tok *syntax.GreenToken) *syntax.GreenToken {
	end := tok.TextLen() - tok.TrailingLen()
	return syntax.NewGreenToken(tok.Kind(), tok.Text()[:end], tok.Leading(), nil)
}

func nodeOf(kind syntax.Kind, elems ...syntax.GreenElement) *syntax.GreenNode {
	return syntax.NewGreenNode(kind, elems)
}

func tok(t *syntax.GreenToken) syntax.GreenElement { return syntax.TokenElement(t) }
func nod(n *syntax.GreenNode) syntax.GreenElement  { return syntax.NodeElement(n) }

// MakeIdentifierExpression builds `name` in read position.
func MakeIdentifierExpression(name string) *syntax.GreenNode {
	return nodeOf(syntax.IdentifierExpression, nod(nodeOf(syntax.ReferenceIdentifier, tok(Ident(name)))))
}

func MakeUnaryExpression(op syntax.Kind, arg *syntax.GreenNode) *syntax.GreenNode {
	return nodeOf(syntax.UnaryExpression, tok(Token(op)), nod(arg))
}

// MakeBinaryExpression spaces the operator: `left op right`.
func MakeBinaryExpression(left *syntax.GreenNode, op syntax.Kind, right *syntax.GreenNode) *syntax.GreenNode {
	kind := syntax.BinaryExpression
	if op == syntax.AmpAmp || op == syntax.PipePipe || op == syntax.QuestionQuestion {
		kind = syntax.LogicalExpression
	}
	opTok := syntax.NewGreenToken(op, " "+op.Text()+" ",
		[]syntax.TriviaPiece{{Kind: syntax.Whitespace, Len: 1}},
		[]syntax.TriviaPiece{{Kind: syntax.Whitespace, Len: 1}})
	return nodeOf(kind, nod(left), tok(opTok), nod(right))
}

func MakeParenthesizedExpression(expr *syntax.GreenNode) *syntax.GreenNode {
	return nodeOf(syntax.ParenthesizedExpression, tok(Token(syntax.LParen)), nod(expr), tok(Token(syntax.RParen)))
}

// MakeExpressionStatement builds `expr;`.
func MakeExpressionStatement(expr *syntax.GreenNode) *syntax.GreenNode {
	return nodeOf(syntax.ExpressionStatement, nod(expr), tok(Token(syntax.Semicolon)))
}

// MakeBlockStatement builds `{ stmts }` with no extra formatting.
func MakeBlockStatement(stmts ...*syntax.GreenNode) *syntax.GreenNode {
	elems := make([]syntax.GreenElement, len(stmts))
	for i, s := range stmts {
		elems[i] = nod(s)
	}
	return nodeOf(syntax.BlockStatement,
		tok(Token(syntax.LBrace)), nod(syntax.NewGreenNode(syntax.StatementList, elems)), tok(Token(syntax.RBrace)))
}

// WithEdgeTrivia rebuilds n so that its first token carries the leading
// trivia of like's first token and its last token the trailing trivia of
// like's last token. Moving a subtree into another's place with it keeps
// the surrounding layout.
func WithEdgeTrivia(n, like *syntax.GreenNode) *syntax.GreenNode {
	first, ok := edgeToken(like, true)
	if !ok {
		return n
	}
	last, _ := edgeToken(like, false)
	n = mapEdgeToken(n, true, func(t *syntax.GreenToken) *syntax.GreenToken {
		return syntax.NewGreenToken(t.Kind(), first.LeadingText()+t.TextTrimmed()+t.TrailingText(), first.Leading(), t.Trailing())
	})
	return mapEdgeToken(n, false, func(t *syntax.GreenToken) *syntax.GreenToken {
		return syntax.NewGreenToken(t.Kind(), t.LeadingText()+t.TextTrimmed()+last.TrailingText(), t.Leading(), last.Trailing())
	})
}

func edgeSlot(n *syntax.GreenNode, first bool) (int, bool) {
	count := n.SlotCount()
	for i := range count {
		idx := i
		if !first {
			idx = count - 1 - i
		}
		if e := n.Slot(idx); !e.IsEmpty() && e.TextLen() > 0 {
			return idx, true
		}
	}
	return 0, false
}

func edgeToken(n *syntax.GreenNode, first bool) (*syntax.GreenToken, bool) {
	for {
		idx, ok := edgeSlot(n, first)
		if !ok {
			return nil, false
		}
		e := n.Slot(idx)
		if t := e.Token(); t != nil {
			return t, true
		}
		n = e.Node()
	}
}

func mapEdgeToken(n *syntax.GreenNode, first bool, f func(*syntax.GreenToken) *syntax.GreenToken) *syntax.GreenNode {
	idx, ok := edgeSlot(n, first)
	if !ok {
		return n
	}
	e := n.Slot(idx)
	if t := e.Token(); t != nil {
		return n.WithSlot(idx, syntax.TokenElement(f(t)))
	}
	return n.WithSlot(idx, syntax.NodeElement(mapEdgeToken(e.Node(), first, f)))
}
