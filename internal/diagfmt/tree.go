package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"lintel/internal/source"
	"lintel/internal/syntax"
)

// TreeOpts configures syntax tree dumps.
type TreeOpts struct {
	Color bool
	// Trivia prints the text of every trivia piece instead of its kind.
	Trivia bool
}

// FormatTreePretty writes the tree one node or token per line. Bogus nodes
// are highlighted and empty slots print as (missing).
func FormatTreePretty(w io.Writer, root syntax.SyntaxNode, opts TreeOpts) error {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	tp := treePrinter{
		w:      w,
		opts:   opts,
		kind:   mk(color.FgCyan),
		bogus:  mk(color.FgRed, color.Bold),
		text:   mk(color.FgGreen),
		trivia: mk(color.Faint),
	}
	return tp.dump(root, 0)
}

type treePrinter struct {
	w      io.Writer
	opts   TreeOpts
	kind   *color.Color
	bogus  *color.Color
	text   *color.Color
	trivia *color.Color
}

func (tp *treePrinter) dump(n syntax.SyntaxNode, depth int) error {
	indent := strings.Repeat("  ", depth)
	kc := tp.kind
	if n.Kind().IsBogus() {
		kc = tp.bogus
	}
	if _, err := fmt.Fprintf(tp.w, "%s%s@%s\n", indent, kc.Sprint(n.Kind().String()), n.TextRange()); err != nil {
		return err
	}
	for i := range n.SlotCount() {
		el, ok := n.Slot(i)
		if !ok {
			if _, err := fmt.Fprintf(tp.w, "%s  %s\n", indent, tp.trivia.Sprint("(missing)")); err != nil {
				return err
			}
			continue
		}
		if c, ok := el.AsNode(); ok {
			if err := tp.dump(c, depth+1); err != nil {
				return err
			}
			continue
		}
		t, _ := el.AsToken()
		line := fmt.Sprintf("%s  %s@%s %s", indent, t.Kind(), t.TextTrimmedRange(), tp.text.Sprintf("%q", t.TextTrimmed()))
		if lead := tp.pieces(t.LeadingTrivia()); lead != "" {
			line += " " + tp.trivia.Sprint("lead="+lead)
		}
		if trail := tp.pieces(t.TrailingTrivia()); trail != "" {
			line += " " + tp.trivia.Sprint("trail="+trail)
		}
		if _, err := fmt.Fprintln(tp.w, line); err != nil {
			return err
		}
	}
	return nil
}

func (tp *treePrinter) pieces(l syntax.TriviaList) string {
	var parts []string
	for p := range l.Pieces() {
		if tp.opts.Trivia {
			parts = append(parts, fmt.Sprintf("%q", p.Text))
		} else {
			parts = append(parts, p.Kind.String())
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// TreeNodeJSON is one node of a JSON tree dump. Tokens have Text set and no
// Children; empty slots are null entries.
type TreeNodeJSON struct {
	Kind     string           `json:"kind"`
	Range    source.TextRange `json:"range"`
	Text     string           `json:"text,omitempty"`
	Children []*TreeNodeJSON  `json:"children,omitempty"`
}

// BuildTreeJSON converts the red tree into its JSON form.
func BuildTreeJSON(n syntax.SyntaxNode) *TreeNodeJSON {
	out := &TreeNodeJSON{Kind: n.Kind().String(), Range: n.TextRange()}
	for i := range n.SlotCount() {
		el, ok := n.Slot(i)
		if !ok {
			out.Children = append(out.Children, nil)
			continue
		}
		if c, isNode := el.AsNode(); isNode {
			out.Children = append(out.Children, BuildTreeJSON(c))
			continue
		}
		t, _ := el.AsToken()
		out.Children = append(out.Children, &TreeNodeJSON{
			Kind:  t.Kind().String(),
			Range: t.TextTrimmedRange(),
			Text:  t.TextTrimmed(),
		})
	}
	return out
}

// FormatTreeJSON writes the tree as nested JSON objects.
func FormatTreeJSON(w io.Writer, root syntax.SyntaxNode) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTreeJSON(root))
}
