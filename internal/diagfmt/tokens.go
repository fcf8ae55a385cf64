package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"lintel/internal/source"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

type TokenOutput struct {
	Kind     string           `json:"kind"`
	Text     string           `json:"text,omitempty"`
	Range    source.TextRange `json:"range"`
	Leading  []string         `json:"leading,omitempty"`
	Trailing []string         `json:"trailing,omitempty"`
}

func triviaKinds(ts []token.Trivia) []string {
	if len(ts) == 0 {
		return nil
	}
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Kind.String()
	}
	return out
}

// FormatTokensPretty writes one token per line with its position and the
// shape of its trivia.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet, file source.FileID) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(source.SpanOf(file, tok.Range))

		var sb strings.Builder
		fmt.Fprintf(&sb, "%3d: %-18s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(&sb, " %q", tok.Text)
		}
		fmt.Fprintf(&sb, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if leading := triviaKinds(tok.Leading); len(leading) > 0 {
			fmt.Fprintf(&sb, " (leading: %s)", strings.Join(leading, ", "))
		}
		if trailing := triviaKinds(tok.Trailing); len(trailing) > 0 {
			fmt.Fprintf(&sb, " (trailing: %s)", strings.Join(trailing, ", "))
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
		if tok.Kind == syntax.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the token stream as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:     tok.Kind.String(),
			Text:     tok.Text,
			Range:    tok.Range,
			Leading:  triviaKinds(tok.Leading),
			Trailing: triviaKinds(tok.Trailing),
		})
		if tok.Kind == syntax.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
