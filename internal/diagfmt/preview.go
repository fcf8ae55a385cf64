package diagfmt

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"lintel/internal/diag"
	"lintel/internal/source"
)

// fixEditPreview holds the whole lines touched by an edit, before and after.
type fixEditPreview struct {
	before []string
	after  []string
}

func buildFixEditPreview(fs *source.FileSet, edit diag.FixEdit) (fixEditPreview, error) {
	if fs == nil {
		return fixEditPreview{}, errors.New("preview needs a file set")
	}
	if int(edit.Span.File) >= fs.Len() {
		return fixEditPreview{}, fmt.Errorf("unknown file %d", edit.Span.File)
	}
	content := fs.Get(edit.Span.File).Content
	start, end := int(edit.Span.Start), int(edit.Span.End)
	if start > end || end > len(content) {
		return fixEditPreview{}, fmt.Errorf("edit %d..%d outside file of %d bytes", start, end, len(content))
	}

	// widen to whole lines, keeping the newline that ends the last one
	lo := bytes.LastIndexByte(content[:start], '\n') + 1
	hi := len(content)
	if nl := bytes.IndexByte(content[end:], '\n'); nl >= 0 {
		hi = end + nl + 1
	}

	var after strings.Builder
	after.Write(content[lo:start])
	after.WriteString(edit.NewText)
	after.Write(content[end:hi])

	return fixEditPreview{
		before: previewLines(string(content[lo:hi])),
		after:  previewLines(after.String()),
	}, nil
}

func previewLines(block string) []string {
	if block == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(block, "\n"), "\n")
}
