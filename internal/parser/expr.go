package parser

import (
	"lintel/internal/diag"
	"lintel/internal/syntax"
)

// noExpr is returned by expression parsers that consumed nothing.
const noExpr = syntax.Tombstone

// expression parses a required expression; a missing one leaves an empty slot.
func (p *Parser) expression() {
	if p.parseExpression() == noExpr {
		p.err(diag.SynExpectExpression, "expected an expression but found "+p.describe())
		p.sink.Missing()
	}
}

// assignmentOperand is expression() one level down, for operands that
// cannot be a comma-free sequence anyway.
func (p *Parser) assignmentOperand() {
	if p.parseAssignment() == noExpr {
		p.err(diag.SynExpectExpression, "expected an expression but found "+p.describe())
		p.sink.Missing()
	}
}

func (p *Parser) parseExpression() syntax.Kind {
	return p.parseAssignment()
}

func (p *Parser) atExpressionStart() bool {
	switch k := p.kind(); k {
	case syntax.Ident, syntax.NumberLit, syntax.StringLit, syntax.ErrorToken,
		syntax.TrueKw, syntax.FalseKw, syntax.NullKw, syntax.ThisKw,
		syntax.LParen, syntax.LBracket, syntax.LBrace, syntax.FunctionKw, syntax.NewKw:
		return true
	default:
		return isUnaryOp(k) || isUpdateOp(k)
	}
}

func isAssignTarget(k syntax.Kind) bool {
	return k == syntax.IdentifierAssignment || k == syntax.StaticMemberExpression ||
		k == syntax.ComputedMemberExpression || k.IsBogus()
}

func (p *Parser) parseAssignment() syntax.Kind {
	cp := p.sink.Checkpoint()
	start := p.cur().Range.Start
	lhs := p.parseConditional()
	if lhs == noExpr || !p.kind().IsAssignOp() {
		return lhs
	}
	if !isAssignTarget(lhs) {
		p.report(diag.SynInvalidAssignment, p.spanFrom(start), "invalid assignment target")
	}
	p.sink.StartNodeAt(cp, syntax.AssignmentExpression)
	p.bump()
	p.assignmentOperand()
	p.sink.FinishNode()
	return syntax.AssignmentExpression
}

func (p *Parser) parseConditional() syntax.Kind {
	cp := p.sink.Checkpoint()
	test := p.parseBinary(precCoalesce)
	if test == noExpr || !p.at(syntax.Question) {
		return test
	}
	p.sink.StartNodeAt(cp, syntax.ConditionalExpression)
	p.bump()
	p.assignmentOperand()
	p.expect(syntax.Colon)
	p.assignmentOperand()
	p.sink.FinishNode()
	return syntax.ConditionalExpression
}

// parseBinary is precedence climbing; every operator whose precedence is at
// least minPrec is folded into the left operand through a checkpoint.
func (p *Parser) parseBinary(minPrec int) syntax.Kind {
	cp := p.sink.Checkpoint()
	left := p.parseUnary()
	if left == noExpr {
		return noExpr
	}
	for {
		prec, right, node := binaryPrec(p.kind())
		if prec == precNone || prec < minPrec {
			return left
		}
		p.sink.StartNodeAt(cp, node)
		p.bump()
		next := prec + 1
		if right {
			next = prec
		}
		if p.parseBinary(next) == noExpr {
			p.err(diag.SynExpectExpression, "expected an expression but found "+p.describe())
			p.sink.Missing()
		}
		p.sink.FinishNode()
		left = node
	}
}

func (p *Parser) parseUnary() syntax.Kind {
	k := p.kind()
	switch {
	case isUnaryOp(k):
		p.sink.StartNode(syntax.UnaryExpression)
		p.bump()
		if p.parseUnary() == noExpr {
			p.err(diag.SynExpectExpression, "expected an expression but found "+p.describe())
			p.sink.Missing()
		}
		p.sink.FinishNode()
		return syntax.UnaryExpression
	case isUpdateOp(k):
		p.sink.StartNode(syntax.PreUpdateExpression)
		p.bump()
		start := p.cur().Range.Start
		var target syntax.Kind
		if p.at(syntax.Ident) {
			p.identifierAssignment()
			target = syntax.IdentifierAssignment
		} else {
			target = p.parseUnary()
		}
		switch {
		case target == noExpr:
			p.err(diag.SynExpectExpression, "expected an expression but found "+p.describe())
			p.sink.Missing()
		case !isAssignTarget(target):
			p.report(diag.SynInvalidAssignment, p.spanFrom(start), "invalid update target")
		}
		p.sink.FinishNode()
		return syntax.PreUpdateExpression
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() syntax.Kind {
	cp := p.sink.Checkpoint()
	start := p.cur().Range.Start
	k := p.parseLeftHandSide()
	if k == noExpr || !isUpdateOp(p.kind()) || p.cur().HasPrecedingLineBreak() {
		return k
	}
	if !isAssignTarget(k) {
		p.report(diag.SynInvalidAssignment, p.spanFrom(start), "invalid update target")
	}
	p.sink.StartNodeAt(cp, syntax.PostUpdateExpression)
	p.bump()
	p.sink.FinishNode()
	return syntax.PostUpdateExpression
}

func (p *Parser) parseLeftHandSide() syntax.Kind {
	cp := p.sink.Checkpoint()
	var k syntax.Kind
	if p.at(syntax.NewKw) {
		k = p.parseNew()
	} else {
		k = p.parsePrimary()
	}
	if k == noExpr {
		return noExpr
	}
	for {
		switch p.kind() {
		case syntax.Dot, syntax.LBracket:
			k = p.parseMember(cp)
		case syntax.LParen:
			p.sink.StartNodeAt(cp, syntax.CallExpression)
			p.parseArguments()
			p.sink.FinishNode()
			k = syntax.CallExpression
		default:
			return k
		}
	}
}

// parseMember wraps everything since cp into a member access.
func (p *Parser) parseMember(cp syntax.Checkpoint) syntax.Kind {
	if p.at(syntax.Dot) {
		p.sink.StartNodeAt(cp, syntax.StaticMemberExpression)
		p.bump()
		p.parseName()
		p.sink.FinishNode()
		return syntax.StaticMemberExpression
	}
	p.sink.StartNodeAt(cp, syntax.ComputedMemberExpression)
	p.bump()
	p.expression()
	p.expect(syntax.RBracket)
	p.sink.FinishNode()
	return syntax.ComputedMemberExpression
}

func (p *Parser) parseName() {
	if !isNameToken(p.kind()) {
		p.err(diag.SynExpectIdentifier, "expected a property name but found "+p.describe())
		p.sink.Missing()
		return
	}
	p.sink.StartNode(syntax.Name)
	p.bumpAs(syntax.Ident)
	p.sink.FinishNode()
}

// parseNew parses `new callee(args)`; the argument list is optional.
func (p *Parser) parseNew() syntax.Kind {
	p.sink.StartNode(syntax.NewExpression)
	p.bump()
	cp := p.sink.Checkpoint()
	var callee syntax.Kind
	if p.at(syntax.NewKw) {
		callee = p.parseNew()
	} else {
		callee = p.parsePrimary()
	}
	if callee == noExpr {
		p.err(diag.SynExpectExpression, "expected a constructor but found "+p.describe())
		p.sink.Missing()
	} else {
		for p.at(syntax.Dot) || p.at(syntax.LBracket) {
			p.parseMember(cp)
		}
	}
	if p.at(syntax.LParen) {
		p.parseArguments()
	} else {
		p.sink.Missing()
	}
	p.sink.FinishNode()
	return syntax.NewExpression
}

func (p *Parser) parseArguments() {
	p.sink.StartNode(syntax.CallArguments)
	p.bump()
	p.sink.StartNode(syntax.ArgumentList)
	for !p.at(syntax.RParen) && !p.atEOF() {
		if p.parseAssignment() == noExpr {
			break
		}
		if !p.eat(syntax.Comma) {
			break
		}
	}
	p.sink.FinishNode()
	p.expect(syntax.RParen)
	p.sink.FinishNode()
}

// identifierAssignment emits an identifier in write position.
func (p *Parser) identifierAssignment() {
	p.sink.StartNode(syntax.IdentifierAssignment)
	p.bump()
	p.sink.FinishNode()
}

func (p *Parser) parsePrimary() syntax.Kind {
	switch p.kind() {
	case syntax.Ident:
		next := p.nth(1)
		if next.Kind.IsAssignOp() || (isUpdateOp(next.Kind) && !next.HasPrecedingLineBreak()) {
			p.identifierAssignment()
			return syntax.IdentifierAssignment
		}
		p.sink.StartNode(syntax.IdentifierExpression)
		p.sink.StartNode(syntax.ReferenceIdentifier)
		p.bump()
		p.sink.FinishNode()
		p.sink.FinishNode()
		return syntax.IdentifierExpression
	case syntax.NumberLit:
		return p.literal(syntax.NumberLiteralExpression)
	case syntax.StringLit:
		return p.literal(syntax.StringLiteralExpression)
	case syntax.TrueKw, syntax.FalseKw:
		return p.literal(syntax.BooleanLiteralExpression)
	case syntax.NullKw:
		return p.literal(syntax.NullLiteralExpression)
	case syntax.ThisKw:
		return p.literal(syntax.ThisExpression)
	case syntax.LParen:
		p.sink.StartNode(syntax.ParenthesizedExpression)
		p.bump()
		p.expression()
		p.expect(syntax.RParen)
		p.sink.FinishNode()
		return syntax.ParenthesizedExpression
	case syntax.LBracket:
		p.parseArray()
		return syntax.ArrayExpression
	case syntax.LBrace:
		p.parseObject()
		return syntax.ObjectExpression
	case syntax.FunctionKw:
		p.parseFunction(syntax.FunctionExpression)
		return syntax.FunctionExpression
	case syntax.ErrorToken:
		// already reported by the lexer
		p.sink.StartNode(syntax.BogusExpression)
		p.bump()
		p.sink.FinishNode()
		return syntax.BogusExpression
	default:
		return noExpr
	}
}

func (p *Parser) literal(kind syntax.Kind) syntax.Kind {
	p.sink.StartNode(kind)
	p.bump()
	p.sink.FinishNode()
	return kind
}

// parseArray keeps elisions as ArrayHole nodes: [1,,2] has three elements.
func (p *Parser) parseArray() {
	p.sink.StartNode(syntax.ArrayExpression)
	p.bump()
	p.sink.StartNode(syntax.ArrayElementList)
	for !p.at(syntax.RBracket) && !p.atEOF() {
		if p.at(syntax.Comma) {
			p.sink.StartNode(syntax.ArrayHole)
			p.sink.FinishNode()
			p.bump()
			continue
		}
		if p.parseAssignment() == noExpr {
			break
		}
		if !p.eat(syntax.Comma) {
			break
		}
	}
	p.sink.FinishNode()
	p.expect(syntax.RBracket)
	p.sink.FinishNode()
}

func (p *Parser) parseObject() {
	p.sink.StartNode(syntax.ObjectExpression)
	p.bump()
	p.sink.StartNode(syntax.ObjectMemberList)
	for !p.at(syntax.RBrace) && !p.atEOF() {
		if !p.parseObjectMember() {
			break
		}
		if !p.eat(syntax.Comma) {
			break
		}
	}
	p.sink.FinishNode()
	p.expect(syntax.RBrace)
	p.sink.FinishNode()
}

func (p *Parser) parseObjectMember() bool {
	k := p.kind()
	switch {
	case k == syntax.Ident && p.nth(1).Kind != syntax.Colon:
		p.sink.StartNode(syntax.ShorthandPropertyObjectMember)
		p.sink.StartNode(syntax.ReferenceIdentifier)
		p.bump()
		p.sink.FinishNode()
		p.sink.FinishNode()
		return true
	case isNameToken(k) || k == syntax.StringLit || k == syntax.NumberLit:
		p.sink.StartNode(syntax.PropertyObjectMember)
		p.sink.StartNode(syntax.LiteralMemberName)
		if k.IsKeyword() {
			p.bumpAs(syntax.Ident)
		} else {
			p.bump()
		}
		p.sink.FinishNode()
		p.expect(syntax.Colon)
		p.assignmentOperand()
		p.sink.FinishNode()
		return true
	default:
		p.err(diag.SynUnexpectedToken, "expected a property but found "+p.describe())
		return false
	}
}
