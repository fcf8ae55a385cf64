package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented tree with ranges, token texts and trivia shapes:
//
//	ExpressionStatement@0..6
//	  Ident@0..2 "x" [] [Whitespace(1)]
func (n SyntaxNode) Dump(w io.Writer) error {
	return dumpNode(w, n, 0)
}

// DebugString returns Dump output as a string.
func (n SyntaxNode) DebugString() string {
	var b strings.Builder
	_ = n.Dump(&b)
	return b.String()
}

func dumpNode(w io.Writer, n SyntaxNode, depth int) error {
	indent := strings.Repeat("  ", depth)
	if _, err := fmt.Fprintf(w, "%s%s@%s\n", indent, n.Kind(), n.TextRange()); err != nil {
		return err
	}
	for i := range n.SlotCount() {
		el, ok := n.Slot(i)
		if !ok {
			if _, err := fmt.Fprintf(w, "%s  (missing)\n", indent); err != nil {
				return err
			}
			continue
		}
		if c, ok := el.AsNode(); ok {
			if err := dumpNode(w, c, depth+1); err != nil {
				return err
			}
			continue
		}
		t, _ := el.AsToken()
		if _, err := fmt.Fprintf(w, "%s  %s@%s %q %s %s\n", indent, t.Kind(), t.TextRange(),
			t.TextTrimmed(), formatPieces(t.green.leading), formatPieces(t.green.trailing)); err != nil {
			return err
		}
	}
	return nil
}

func formatPieces(pieces []TriviaPiece) string {
	parts := make([]string, len(pieces))
	for i, p := range pieces {
		parts[i] = fmt.Sprintf("%s(%d)", p.Kind, p.Len)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
