package fix

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is how many unchanged lines surround each hunk.
const diffContext = 2

// Diff renders a line diff of before and after in a unified-like form.
// Long unchanged runs collapse to an "@@ -line @@" marker. Identical inputs
// produce "".
func Diff(path, before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", path, path)
	line := 1
	for i, d := range diffs {
		chunk := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			head, tail := diffContext, diffContext
			if i == 0 {
				head = 0
			}
			if i == len(diffs)-1 {
				tail = 0
			}
			if len(chunk) <= head+tail {
				writeLines(&sb, " ", chunk)
			} else {
				writeLines(&sb, " ", chunk[:head])
				fmt.Fprintf(&sb, "@@ -%d @@\n", line+len(chunk)-tail)
				writeLines(&sb, " ", chunk[len(chunk)-tail:])
			}
			line += len(chunk)
		case diffmatchpatch.DiffDelete:
			writeLines(&sb, "-", chunk)
			line += len(chunk)
		case diffmatchpatch.DiffInsert:
			writeLines(&sb, "+", chunk)
		}
	}
	return sb.String()
}

func splitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func writeLines(sb *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		sb.WriteString(prefix)
		sb.WriteString(l)
		if !strings.HasSuffix(l, "\n") {
			sb.WriteString("\n\\ No newline at end of file\n")
		}
	}
}
