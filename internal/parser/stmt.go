package parser

import (
	"lintel/internal/diag"
	"lintel/internal/syntax"
)

// parseStatementList parses statements until EOF or, inside a block, '}'.
func (p *Parser) parseStatementList(inBlock bool) {
	p.sink.StartNode(syntax.StatementList)
	for !p.atEOF() && !(inBlock && p.at(syntax.RBrace)) {
		p.parseStatement()
	}
	p.sink.FinishNode()
}

// parseStatement always consumes at least one token.
func (p *Parser) parseStatement() {
	switch p.kind() {
	case syntax.LBrace:
		p.parseBlock()
	case syntax.Semicolon:
		p.sink.StartNode(syntax.EmptyStatement)
		p.bump()
		p.sink.FinishNode()
	case syntax.VarKw, syntax.LetKw, syntax.ConstKw:
		p.sink.StartNode(syntax.VariableStatement)
		p.parseVariableDeclaration()
		p.semicolon()
		p.sink.FinishNode()
	case syntax.FunctionKw:
		p.parseFunction(syntax.FunctionDeclaration)
	case syntax.IfKw:
		p.parseIf()
	case syntax.WhileKw:
		p.parseWhile()
	case syntax.ForKw:
		p.parseFor()
	case syntax.ReturnKw:
		p.sink.StartNode(syntax.ReturnStatement)
		p.bump()
		if p.canInsertSemicolon() {
			p.sink.Missing()
		} else {
			p.expression()
		}
		p.semicolon()
		p.sink.FinishNode()
	case syntax.ThrowKw:
		p.sink.StartNode(syntax.ThrowStatement)
		p.bump()
		if p.cur().HasPrecedingLineBreak() {
			p.err(diag.SynExpectExpression, "line break is not allowed after 'throw'")
			p.sink.Missing()
		} else {
			p.expression()
		}
		p.semicolon()
		p.sink.FinishNode()
	case syntax.BreakKw:
		p.parseKeywordStatement(syntax.BreakStatement)
	case syntax.ContinueKw:
		p.parseKeywordStatement(syntax.ContinueStatement)
	case syntax.DebuggerKw:
		p.parseKeywordStatement(syntax.DebuggerStatement)
	case syntax.TryKw:
		p.parseTry()
	default:
		if p.atExpressionStart() {
			p.sink.StartNode(syntax.ExpressionStatement)
			p.parseExpression()
			p.semicolon()
			p.sink.FinishNode()
			return
		}
		p.err(diag.SynExpectStatement, "expected a statement but found "+p.describe())
		p.sink.StartNode(syntax.BogusStatement)
		p.bump()
		p.sink.FinishNode()
	}
}

// parseStatementOrMissing parses a statement in a required position.
func (p *Parser) parseStatementOrMissing() {
	if p.atEOF() || p.at(syntax.RBrace) {
		p.err(diag.SynExpectStatement, "expected a statement but found "+p.describe())
		p.sink.Missing()
		return
	}
	p.parseStatement()
}

func (p *Parser) parseKeywordStatement(kind syntax.Kind) {
	p.sink.StartNode(kind)
	p.bump()
	p.semicolon()
	p.sink.FinishNode()
}

func (p *Parser) parseBlock() {
	p.sink.StartNode(syntax.BlockStatement)
	p.expect(syntax.LBrace)
	p.parseStatementList(true)
	p.expect(syntax.RBrace)
	p.sink.FinishNode()
}

// parseBlockOrMissing is used where only a block may follow (try, catch, finally).
func (p *Parser) parseBlockOrMissing() {
	if p.at(syntax.LBrace) {
		p.parseBlock()
		return
	}
	p.err(diag.SynUnexpectedToken, "expected '{' but found "+p.describe())
	p.sink.Missing()
}

// parseVariableDeclaration parses `var|let|const a = 1, b`.
func (p *Parser) parseVariableDeclaration() {
	p.sink.StartNode(syntax.VariableDeclaration)
	p.bump()
	p.sink.StartNode(syntax.VariableDeclaratorList)
	for {
		p.sink.StartNode(syntax.VariableDeclarator)
		bound := p.identifierBinding()
		hasInit := p.at(syntax.Eq)
		p.parseInitializerOrMissing()
		p.sink.FinishNode()
		if !bound && !hasInit {
			break
		}
		if !p.eat(syntax.Comma) {
			break
		}
	}
	p.sink.FinishNode()
	p.sink.FinishNode()
}

func (p *Parser) parseInitializerOrMissing() {
	if !p.at(syntax.Eq) {
		p.sink.Missing()
		return
	}
	p.sink.StartNode(syntax.InitializerClause)
	p.bump()
	p.expression()
	p.sink.FinishNode()
}

func (p *Parser) parseIf() {
	p.sink.StartNode(syntax.IfStatement)
	p.bump()
	p.expect(syntax.LParen)
	p.expression()
	p.expect(syntax.RParen)
	p.parseStatementOrMissing()
	if p.at(syntax.ElseKw) {
		p.sink.StartNode(syntax.ElseClause)
		p.bump()
		p.parseStatementOrMissing()
		p.sink.FinishNode()
	} else {
		p.sink.Missing()
	}
	p.sink.FinishNode()
}

func (p *Parser) parseWhile() {
	p.sink.StartNode(syntax.WhileStatement)
	p.bump()
	p.expect(syntax.LParen)
	p.expression()
	p.expect(syntax.RParen)
	p.parseStatementOrMissing()
	p.sink.FinishNode()
}

// parseFor parses the three-clause form only.
func (p *Parser) parseFor() {
	p.sink.StartNode(syntax.ForStatement)
	p.bump()
	p.expect(syntax.LParen)

	switch {
	case p.at(syntax.VarKw) || p.at(syntax.LetKw) || p.at(syntax.ConstKw):
		p.parseVariableDeclaration()
	case p.at(syntax.Semicolon):
		p.sink.Missing()
	default:
		p.expression()
	}
	p.expect(syntax.Semicolon)

	if p.at(syntax.Semicolon) {
		p.sink.Missing()
	} else {
		p.expression()
	}
	p.expect(syntax.Semicolon)

	if p.at(syntax.RParen) {
		p.sink.Missing()
	} else {
		p.expression()
	}
	p.expect(syntax.RParen)

	p.parseStatementOrMissing()
	p.sink.FinishNode()
}

func (p *Parser) parseTry() {
	p.sink.StartNode(syntax.TryStatement)
	p.bump()
	p.parseBlockOrMissing()

	if p.at(syntax.CatchKw) {
		p.sink.StartNode(syntax.CatchClause)
		p.bump()
		if p.at(syntax.LParen) {
			p.sink.StartNode(syntax.CatchDeclaration)
			p.bump()
			p.identifierBinding()
			p.expect(syntax.RParen)
			p.sink.FinishNode()
		} else {
			p.sink.Missing()
		}
		p.parseBlockOrMissing()
		p.sink.FinishNode()
	} else {
		p.sink.Missing()
	}

	if p.at(syntax.FinallyKw) {
		p.sink.StartNode(syntax.FinallyClause)
		p.bump()
		p.parseBlockOrMissing()
		p.sink.FinishNode()
	} else {
		p.sink.Missing()
	}
	p.sink.FinishNode()
}

// parseFunction parses a declaration or an expression; only the expression
// form may omit the name.
func (p *Parser) parseFunction(kind syntax.Kind) {
	p.sink.StartNode(kind)
	p.bump()
	if kind == syntax.FunctionExpression && !p.at(syntax.Ident) {
		p.sink.Missing()
	} else {
		p.identifierBinding()
	}
	p.parseParameters()
	if p.at(syntax.LBrace) {
		p.sink.StartNode(syntax.FunctionBody)
		p.bump()
		p.parseStatementList(true)
		p.expect(syntax.RBrace)
		p.sink.FinishNode()
	} else {
		p.err(diag.SynUnexpectedToken, "expected function body but found "+p.describe())
		p.sink.Missing()
	}
	p.sink.FinishNode()
}

func (p *Parser) parseParameters() {
	if !p.at(syntax.LParen) {
		p.err(diag.SynUnexpectedToken, "expected '(' but found "+p.describe())
		p.sink.Missing()
		return
	}
	p.sink.StartNode(syntax.Parameters)
	p.bump()
	p.sink.StartNode(syntax.ParameterList)
	for p.at(syntax.Ident) {
		p.sink.StartNode(syntax.FormalParameter)
		p.identifierBinding()
		p.parseInitializerOrMissing()
		p.sink.FinishNode()
		if !p.eat(syntax.Comma) {
			break
		}
	}
	p.sink.FinishNode()
	p.expect(syntax.RParen)
	p.sink.FinishNode()
}
