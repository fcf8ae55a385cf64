package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lintel/internal/diag"
	"lintel/internal/source"
)

const tabWidth = 4

type palette struct {
	sev    map[diag.Severity]*color.Color
	label  *color.Color
	gutter *color.Color
	note   *color.Color
	fix    *color.Color
	del    *color.Color
	add    *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevHint:    mk(color.FgCyan),
			diag.SevInfo:    mk(color.FgBlue, color.Bold),
			diag.SevWarning: mk(color.FgYellow, color.Bold),
			diag.SevError:   mk(color.FgRed, color.Bold),
		},
		label:  mk(color.Bold),
		gutter: mk(color.FgBlue),
		note:   mk(color.FgCyan),
		fix:    mk(color.FgGreen),
		del:    mk(color.FgRed),
		add:    mk(color.FgGreen),
	}
}

// Pretty writes diagnostics in a human-readable form. bag is expected to
// be sorted. Each diagnostic prints as
//
//	<path>:<line>:<col>: <SEV> <label>: <message>
//
// followed by the source lines of the primary span underlined with ^, and
// optionally notes, fixes and fix previews.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col,
		p.sev[d.Severity].Sprint(d.Severity.String()), p.label.Sprint(headerLabel(d)), d.Message)

	writeExcerpt(w, fs, d.Primary, opts, p, p.sev[d.Severity])

	if opts.ShowNotes {
		for _, n := range d.Notes {
			pos, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"),
				formatPath(fs, n.Span.File, opts.PathMode), pos.Line, pos.Col, n.Msg)
		}
	}
	if !opts.ShowFixes {
		return
	}
	for i, f := range d.Fixes {
		fmt.Fprintf(w, "  %s %s (%s)\n", p.fix.Sprintf("fix #%d:", i+1), f.Title, f.Applicability)
		for _, e := range f.Edits {
			s, end := fs.Resolve(e.Span)
			fmt.Fprintf(w, "    edit %s:%d:%d-%d:%d apply=%q\n",
				formatPath(fs, e.Span.File, opts.PathMode), s.Line, s.Col, end.Line, end.Col, e.NewText)
			if !opts.ShowPreview {
				continue
			}
			preview, err := buildFixEditPreview(fs, e)
			if err != nil {
				continue
			}
			fmt.Fprintln(w, "    preview:")
			for _, l := range preview.before {
				fmt.Fprintf(w, "      %s\n", p.del.Sprint("- "+l))
			}
			for _, l := range preview.after {
				fmt.Fprintf(w, "      %s\n", p.add.Sprint("+ "+l))
			}
		}
	}
}

// headerLabel names lint findings by category alone; everything else also
// shows the code.
func headerLabel(d diag.Diagnostic) string {
	if d.Code == diag.LintRule && d.Category != "" {
		return d.Category
	}
	if d.Category == "" {
		return d.Code.ID()
	}
	return d.Code.ID() + " " + d.Category
}

// writeExcerpt prints the lines of sp with opts.Context lines around them
// and a caret line under each spanned line.
func writeExcerpt(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts, p palette, mark *color.Color) {
	file := fs.Get(sp.File)
	if file == nil || len(file.Content) == 0 {
		return
	}
	start, end := fs.Resolve(sp)
	ctx := uint32(max(opts.Context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := min(end.Line+ctx, file.LineCount())
	width := len(strconv.FormatUint(uint64(last), 10))

	for ln := first; ln <= last; ln++ {
		raw := file.GetLine(ln)
		line := expandTabs(raw)
		if opts.Width > 0 {
			line = runewidth.Truncate(line, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width, ln), line)
		if ln < start.Line || ln > end.Line {
			continue
		}

		from, to := 0, len(raw)
		if ln == start.Line {
			from = min(int(start.Col)-1, len(raw))
		}
		if ln == end.Line {
			to = min(int(end.Col)-1, len(raw))
		}
		pad := runewidth.StringWidth(expandTabs(raw[:from]))
		n := max(runewidth.StringWidth(expandTabs(raw[from:max(from, to)])), 1)
		if opts.Width > 0 && pad >= int(opts.Width) {
			continue
		}
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprint(strings.Repeat(" ", width)+" |"),
			strings.Repeat(" ", pad), mark.Sprint(strings.Repeat("^", n)))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
