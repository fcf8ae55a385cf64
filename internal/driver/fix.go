package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"lintel/internal/fix"
	"lintel/internal/source"
	"lintel/internal/trace"
)

// FixOptions configures FixFiles.
type FixOptions struct {
	Options
	Mode          fix.ApplyMode
	MaxIterations int
	// Write stores changed files back to disk.
	Write bool
}

// FixFileResult is the fix outcome for one file. Err is nil when fixes
// were applied or none were needed; fix.ErrNoFixes is folded into a nil Err
// with an unchanged Result.
type FixFileResult struct {
	Path    string
	Before  string
	Result  *fix.ApplyResult
	Err     error
	Written bool
}

// Changed reports whether the file text differs after fixing.
func (r FixFileResult) Changed() bool {
	return r.Result != nil && r.Result.Changed() && r.Result.Text != r.Before
}

// FixFiles runs the fix loop over every file under paths. Files that do not
// parse are reported with fix.ErrSyntax and left untouched.
func FixFiles(ctx context.Context, paths []string, opts FixOptions) ([]FixFileResult, error) {
	if opts.Registry == nil {
		return nil, errors.New("driver: no rule registry")
	}
	files, _, err := CollectFiles(paths, opts.Config)
	if err != nil {
		return nil, err
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	tracer := opts.Analysis.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}
	span := trace.Begin(tracer, trace.ScopeDriver, "fix", trace.CurrentSpan(ctx).SpanID)
	defer span.End(strconv.Itoa(len(files)) + " files")

	results := make([]FixFileResult, len(files))
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}
	if len(files) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = fixFile(path, opts, tracer, span.ID())
			return nil
		})
	}
	return results, g.Wait()
}

func fixFile(path string, opts FixOptions, tracer trace.Tracer, parent uint64) FixFileResult {
	span := trace.Begin(tracer, trace.ScopeFile, "fix_file", parent).WithExtra("path", path)
	out := FixFileResult{Path: path}
	defer func() {
		detail := "unchanged"
		if out.Changed() {
			detail = strconv.Itoa(len(out.Result.Applied)) + " fixes"
		}
		span.End(detail)
	}()

	fail := func(err error) FixFileResult {
		out.Err = err
		emit(opts.Progress, Event{File: path, Stage: StageFix, Status: StatusError, Err: err})
		return out
	}

	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return fail(err)
	}
	file := fs.Get(id)
	out.Before = string(file.Content)

	emit(opts.Progress, Event{File: path, Stage: StageFix, Status: StatusWorking})
	aopts := opts.Analysis
	aopts.Tracer, aopts.ParentSpan = tracer, span.ID()
	res, err := fix.Apply(out.Before, opts.Registry, fix.ApplyOptions{
		Mode:          opts.Mode,
		MaxIterations: opts.MaxIterations,
		Analysis:      aopts,
	})
	out.Result = res
	if err != nil && !errors.Is(err, fix.ErrNoFixes) {
		return fail(err)
	}

	if opts.Write && out.Changed() {
		if err := writeFixed(path, file, res.Text); err != nil {
			return fail(err)
		}
		out.Written = true
	}
	emit(opts.Progress, Event{File: path, Stage: StageFix, Status: StatusDone})
	return out
}

// writeFixed replaces path with text, restoring the CRLF line endings and
// BOM that loading normalized away.
func writeFixed(path string, file *source.File, text string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	data := []byte(text)
	if file.Flags&source.FileNormalizedCRLF != 0 {
		data = toCRLF(data)
	}
	if file.Flags&source.FileHadBOM != 0 {
		data = append([]byte{0xEF, 0xBB, 0xBF}, data...)
	}
	if err := os.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func toCRLF(b []byte) []byte {
	out := make([]byte, 0, len(b)+len(b)/32)
	for _, c := range b {
		if c == '\n' {
			out = append(out, '\r')
		}
		out = append(out, c)
	}
	return out
}
