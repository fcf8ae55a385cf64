// Package testkit holds structural checks and golden renderings shared by tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"lintel/internal/source"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

// CheckTreeInvariants verifies that a parsed tree is lossless over text:
//  1. the root covers [0, len(text)) and prints back to text exactly
//  2. the children of every node are contiguous and tile their parent
func CheckTreeInvariants(root syntax.SyntaxNode, text string) error {
	if root.IsZero() {
		return fmt.Errorf("nil root")
	}
	size, err := safecast.Conv[uint32](len(text))
	if err != nil {
		return fmt.Errorf("input too large: %w", err)
	}
	if r := root.TextRange(); r.Start != 0 || uint32(r.End) != size {
		return fmt.Errorf("root range %s, want 0..%d", r, size)
	}
	if got := root.Text(); got != text {
		return fmt.Errorf("tree text differs from input: %q != %q", clip(got), clip(text))
	}
	if err := checkNode(root); err != nil {
		return err
	}
	for n := range root.Descendants() {
		if err := checkNode(n); err != nil {
			return err
		}
	}
	return nil
}

func checkNode(n syntax.SyntaxNode) error {
	r := n.TextRange()
	at := r.Start
	for el := range n.ChildrenWithTokens() {
		cr := el.TextRange()
		if cr.Start != at {
			return fmt.Errorf("%s at %s: child %s starts at %d, want %d", n.Kind(), r, el.Kind(), cr.Start, at)
		}
		at = cr.End
	}
	if at != r.End {
		return fmt.Errorf("%s at %s: children end at %d", n.Kind(), r, at)
	}
	return nil
}

// CheckTokenInvariants verifies that tokens with their trivia tile text and
// that the stream ends with a single EOF.
func CheckTokenInvariants(tokens []token.Token, text string) error {
	if len(tokens) == 0 {
		return fmt.Errorf("no tokens")
	}
	var at source.TextSize
	for i, tok := range tokens {
		full := tok.FullRange()
		if full.Start != at {
			return fmt.Errorf("token %d (%s) starts at %d, want %d", i, tok.Kind, full.Start, at)
		}
		if int(tok.Range.End) > len(text) || text[tok.Range.Start:tok.Range.End] != tok.Text {
			return fmt.Errorf("token %d (%s) text %q does not match its range %s", i, tok.Kind, tok.Text, tok.Range)
		}
		at = full.End
		if tok.Kind == syntax.EOF && i != len(tokens)-1 {
			return fmt.Errorf("EOF at index %d of %d", i, len(tokens))
		}
	}
	if last := tokens[len(tokens)-1]; last.Kind != syntax.EOF {
		return fmt.Errorf("stream ends with %s, want EOF", last.Kind)
	}
	if int(at) != len(text) {
		return fmt.Errorf("tokens cover %d bytes of %d", at, len(text))
	}
	return nil
}

func clip(s string) string {
	if len(s) > 64 {
		return s[:64] + "..."
	}
	return s
}
