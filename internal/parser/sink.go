package parser

import (
	"fmt"

	"lintel/internal/diag"
	"lintel/internal/source"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

// TreeSink receives the parser's structural events.
type TreeSink interface {
	// Token consumes the next lexed token as kind; end is its trimmed end offset.
	Token(kind syntax.Kind, end source.TextSize)
	StartNode(kind syntax.Kind)
	FinishNode()
	// Missing records an empty slot in the current node.
	Missing()
	Checkpoint() syntax.Checkpoint
	// StartNodeAt opens a node adopting everything emitted since cp.
	StartNodeAt(cp syntax.Checkpoint, kind syntax.Kind)
	Errors(diags []diag.Diagnostic)
}

// LosslessTreeSink builds a green tree whose text is exactly the source text:
// every token carries its leading and trailing trivia.
type LosslessTreeSink struct {
	text    []byte
	tokens  []token.Token
	pos     int
	builder *syntax.TreeBuilder
	errors  []diag.Diagnostic
}

func NewLosslessTreeSink(text []byte, tokens []token.Token, cache *syntax.NodeCache) *LosslessTreeSink {
	return &LosslessTreeSink{
		text:    text,
		tokens:  tokens,
		builder: syntax.NewTreeBuilder(cache),
	}
}

func (s *LosslessTreeSink) Token(kind syntax.Kind, end source.TextSize) {
	if s.pos >= len(s.tokens) {
		panic("parser: token past EOF")
	}
	tok := s.tokens[s.pos]
	if tok.Range.End != end {
		panic(fmt.Sprintf("parser: token %v ends at %d, sink asked for %d", tok.Kind, tok.Range.End, end))
	}
	s.pos++
	full := tok.FullRange()
	s.builder.Token(kind, string(s.text[full.Start:full.End]), token.Pieces(tok.Leading), token.Pieces(tok.Trailing))
}

func (s *LosslessTreeSink) StartNode(kind syntax.Kind) { s.builder.StartNode(kind) }
func (s *LosslessTreeSink) FinishNode()                { s.builder.FinishNode() }
func (s *LosslessTreeSink) Missing()                   { s.builder.Missing() }

func (s *LosslessTreeSink) Checkpoint() syntax.Checkpoint { return s.builder.Checkpoint() }

func (s *LosslessTreeSink) StartNodeAt(cp syntax.Checkpoint, kind syntax.Kind) {
	s.builder.StartNodeAt(cp, kind)
}

func (s *LosslessTreeSink) Errors(diags []diag.Diagnostic) {
	s.errors = append(s.errors, diags...)
}

// Finish returns the green root and the collected errors.
func (s *LosslessTreeSink) Finish() (*syntax.GreenNode, []diag.Diagnostic) {
	return s.builder.Finish(), s.errors
}
