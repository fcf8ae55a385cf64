package parser

import (
	"lintel/internal/diag"
	"lintel/internal/lexer"
	"lintel/internal/source"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

type Options struct {
	// Reporter additionally receives every lexical and syntax diagnostic.
	Reporter  diag.Reporter
	MaxErrors uint
	// Cache interns green nodes; nil gives the parse a private cache.
	Cache *syntax.NodeCache
}

type Result struct {
	Root        syntax.SyntaxNode
	Diagnostics []diag.Diagnostic
}

func (r Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

// Parser is the per-file parse state. Tokens are lexed up front; the parser
// only moves an index and drives the sink.
type Parser struct {
	file    source.FileID
	tokens  []token.Token
	pos     int
	sink    TreeSink
	bag     *diag.Bag
	rep     diag.Reporter
	lastEnd source.TextSize
}

// ParseFile parses one file into a lossless tree rooted at a Module node.
func ParseFile(file *source.File, opts Options) Result {
	lexBag := diag.NewBag(int(opts.MaxErrors))
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: lexBag}})

	sink := NewLosslessTreeSink(file.Content, tokens, opts.Cache)
	p := &Parser{
		file:   file.ID,
		tokens: tokens,
		sink:   sink,
		bag:    diag.NewBag(int(opts.MaxErrors)),
	}
	p.rep = diag.NewDedupReporter(diag.BagReporter{Bag: p.bag})
	p.parseModule()

	lexBag.Merge(p.bag)
	lexBag.Sort()
	sink.Errors(lexBag.Items())
	green, errs := sink.Finish()

	if opts.Reporter != nil {
		for _, d := range errs {
			opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
		}
	}
	return Result{Root: syntax.NewRoot(green), Diagnostics: errs}
}

// ParseText parses text as an anonymous file. Used for re-parsing printed
// trees and in tests.
func ParseText(text string) Result {
	return ParseFile(&source.File{Path: "<text>", Content: []byte(text), Flags: source.FileVirtual}, Options{})
}

func (p *Parser) parseModule() {
	p.sink.StartNode(syntax.Module)
	p.parseStatementList(false)
	p.bumpAs(syntax.EOF)
	p.sink.FinishNode()
}

func (p *Parser) cur() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) kind() syntax.Kind {
	return p.tokens[p.pos].Kind
}

// nth peeks n tokens ahead, clamping at EOF.
func (p *Parser) nth(n int) token.Token {
	if i := p.pos + n; i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) at(k syntax.Kind) bool {
	return p.kind() == k
}

func (p *Parser) atEOF() bool {
	return p.at(syntax.EOF)
}

func (p *Parser) bump() {
	p.bumpAs(p.kind())
}

// bumpAs emits the current token under another kind, e.g. a keyword used as
// a property name becomes Ident.
func (p *Parser) bumpAs(kind syntax.Kind) {
	tok := p.cur()
	p.sink.Token(kind, tok.Range.End)
	if tok.Kind != syntax.EOF {
		p.lastEnd = tok.Range.End
		p.pos++
	}
}

// eat bumps the current token if it has kind k.
func (p *Parser) eat(k syntax.Kind) bool {
	if p.at(k) {
		p.bump()
		return true
	}
	return false
}
