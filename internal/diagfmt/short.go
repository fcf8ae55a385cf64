package diagfmt

import (
	"fmt"
	"io"

	"lintel/internal/diag"
	"lintel/internal/source"
)

// Short writes one line per diagnostic:
//
//	<path>:<line>:<col>: <severity> <label>: <message>
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts ShortOpts) error {
	for _, d := range bag.Items() {
		pos, _ := fs.Resolve(d.Primary)
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			formatPath(fs, d.Primary.File, opts.PathMode), pos.Line, pos.Col,
			diag.SeverityLabel(d.Severity), d.Label(), d.Message); err != nil {
			return err
		}
	}
	return nil
}
