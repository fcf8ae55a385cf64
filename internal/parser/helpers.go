package parser

import (
	"lintel/internal/diag"
	"lintel/internal/source"
	"lintel/internal/syntax"
)

// diagnosticSpan points at the current token, or just past the previous one
// when the parser is at EOF.
func (p *Parser) diagnosticSpan() source.Span {
	tok := p.cur()
	if tok.Kind == syntax.EOF {
		return source.SpanOf(p.file, source.TextRange{Start: p.lastEnd, End: p.lastEnd})
	}
	return source.SpanOf(p.file, tok.Range)
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, p.diagnosticSpan(), msg)
}

// report goes through a DedupReporter: recovery can hit the same token from
// several productions.
func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	p.rep.Report(code, diag.SevError, sp, msg, nil, nil)
}

// expect bumps a token of kind k or records a missing slot.
func (p *Parser) expect(k syntax.Kind) bool {
	if p.eat(k) {
		return true
	}
	p.err(expectCode(k), "expected '"+k.Text()+"' but found "+p.describe())
	p.sink.Missing()
	return false
}

func expectCode(k syntax.Kind) diag.Code {
	switch k {
	case syntax.RParen:
		return diag.SynUnclosedParen
	case syntax.RBrace:
		return diag.SynUnclosedBrace
	case syntax.RBracket:
		return diag.SynUnclosedBracket
	case syntax.Semicolon:
		return diag.SynExpectSemicolon
	default:
		return diag.SynUnexpectedToken
	}
}

func (p *Parser) describe() string {
	tok := p.cur()
	switch tok.Kind {
	case syntax.EOF:
		return "the end of the file"
	case syntax.Ident:
		return "identifier '" + tok.Text + "'"
	default:
		return "'" + tok.Text + "'"
	}
}

// semicolon handles automatic semicolon insertion: the ';' may be left out
// before '}', at EOF, or when a line break precedes the next token.
func (p *Parser) semicolon() {
	if p.eat(syntax.Semicolon) {
		return
	}
	if p.at(syntax.RBrace) || p.atEOF() || p.cur().HasPrecedingLineBreak() {
		p.sink.Missing()
		return
	}
	p.err(diag.SynExpectSemicolon, "expected ';' but found "+p.describe())
	p.sink.Missing()
}

// canInsertSemicolon reports whether an optional operand may be skipped.
func (p *Parser) canInsertSemicolon() bool {
	return p.at(syntax.Semicolon) || p.at(syntax.RBrace) || p.atEOF() || p.cur().HasPrecedingLineBreak()
}

// identifierBinding emits IdentifierBinding or a missing slot.
func (p *Parser) identifierBinding() bool {
	if !p.at(syntax.Ident) {
		p.err(diag.SynExpectIdentifier, "expected identifier but found "+p.describe())
		p.sink.Missing()
		return false
	}
	p.sink.StartNode(syntax.IdentifierBinding)
	p.bump()
	p.sink.FinishNode()
	return true
}

// isNameToken reports whether k can spell a property name.
func isNameToken(k syntax.Kind) bool {
	return k == syntax.Ident || k.IsKeyword()
}

// spanFrom covers source from start to the end of the last bumped token.
func (p *Parser) spanFrom(start source.TextSize) source.Span {
	return source.SpanOf(p.file, source.TextRange{Start: start, End: max(start, p.lastEnd)})
}
