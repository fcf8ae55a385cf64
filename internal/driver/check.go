package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"lintel/internal/analyzer"
	"lintel/internal/config"
	"lintel/internal/diag"
	"lintel/internal/fix"
	"lintel/internal/observ"
	"lintel/internal/parser"
	"lintel/internal/source"
	"lintel/internal/trace"
)

// Options configures a check run.
type Options struct {
	Registry *analyzer.Registry
	// Analysis carries the filter and severity overrides. File, Tracer and
	// ParentSpan are filled in per file.
	Analysis analyzer.Options
	// Config filters files during directory walks; nil walks everything.
	Config *config.Config
	// MaxDiagnostics bounds each file's bag; <= 0 is unlimited.
	MaxDiagnostics int
	// Jobs bounds parallelism; <= 0 uses GOMAXPROCS.
	Jobs     int
	Cache    *DiskCache
	Memory   *ResultCache
	Progress ProgressSink
	Timings  bool
	// Salt is mixed into cache keys, for rule options the registry does
	// not expose.
	Salt []string
}

// FileResult is the outcome of checking one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Cached bool
	Timing observ.Report

	// Truncated is set when analysis stopped at the diagnostics limit.
	Truncated bool
}

// CacheStats counts cache lookups of a run.
type CacheStats struct {
	MemoryHits int64
	DiskHits   int64
	Misses     int64
	DiskErrors int64
}

// CheckResult holds every file of a run, in path order.
type CheckResult struct {
	FileSet *source.FileSet
	Files   []FileResult
	Skipped []SkippedFile
	Cache   CacheStats
}

// Count returns the number of diagnostics with severity sev over all files.
func (r *CheckResult) Count(sev diag.Severity) int {
	n := 0
	for _, f := range r.Files {
		n += f.Bag.Count(sev)
	}
	return n
}

// HasErrors reports whether any file has an error diagnostic.
func (r *CheckResult) HasErrors() bool {
	for _, f := range r.Files {
		if f.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Diagnostics merges all files into one sorted bag. limit bounds the result;
// diagnostics past it are counted as dropped.
func (r *CheckResult) Diagnostics(limit int) *diag.Bag {
	out := diag.NewBag(limit)
	for _, f := range r.Files {
		for _, d := range f.Bag.Items() {
			out.Add(d)
		}
	}
	out.Sort()
	for _, f := range r.Files {
		out.NoteDropped(f.Bag.Dropped())
	}
	return out
}

// Timings merges the per-file timing reports.
func (r *CheckResult) Timings() observ.Report {
	reports := make([]observ.Report, 0, len(r.Files))
	for _, f := range r.Files {
		reports = append(reports, f.Timing)
	}
	return observ.Merge(reports...)
}

// Check analyzes the files under paths in parallel.
func Check(ctx context.Context, paths []string, opts Options) (*CheckResult, error) {
	if opts.Registry == nil {
		return nil, errors.New("driver: no rule registry")
	}
	files, skipped, err := CollectFiles(paths, opts.Config)
	if err != nil {
		return nil, err
	}

	fileSet := source.NewFileSetWithBase(baseDirOf(paths))
	res := &CheckResult{FileSet: fileSet, Files: make([]FileResult, len(files)), Skipped: skipped}
	loadErrors := make(map[int]error, len(files))
	ids := make([]source.FileID, len(files))
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[i] = err
			continue
		}
		ids[i] = id
	}

	c := newChecker(ctx, opts)
	defer c.span.End(strconv.Itoa(len(files)) + " files")
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}
	if len(files) == 0 {
		return res, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(c.jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			// cancellation check
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErr, hadError := loadErrors[i]; hadError {
				res.Files[i] = c.loadFailure(path, loadErr)
				return nil
			}
			// results are indexed per goroutine, no mutex needed
			res.Files[i] = c.checkFile(gctx, fileSet.Get(ids[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	res.Cache = c.stats()
	return res, nil
}

// CheckSource analyzes in-memory content as a virtual file named name.
func CheckSource(ctx context.Context, name string, content []byte, opts Options) (*CheckResult, error) {
	if opts.Registry == nil {
		return nil, errors.New("driver: no rule registry")
	}
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual(name, content)
	c := newChecker(ctx, opts)
	defer c.span.End("1 files")
	fr := c.checkFile(ctx, fileSet.Get(id))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &CheckResult{FileSet: fileSet, Files: []FileResult{fr}, Cache: c.stats()}, nil
}

type checker struct {
	opts   Options
	jobs   int
	tracer trace.Tracer
	span   *trace.Span
	rules  Digest

	memHits, diskHits, misses, diskErrs atomic.Int64
}

func newChecker(ctx context.Context, opts Options) *checker {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	tracer := opts.Analysis.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}
	c := &checker{opts: opts, jobs: jobs, tracer: tracer}
	c.span = trace.Begin(tracer, trace.ScopeDriver, "check", trace.CurrentSpan(ctx).SpanID)
	if opts.Cache != nil || opts.Memory != nil {
		c.rules = RuleSetDigest(opts.Registry, opts.Analysis, opts.Salt...)
	}
	return c
}

func (c *checker) stats() CacheStats {
	return CacheStats{
		MemoryHits: c.memHits.Load(),
		DiskHits:   c.diskHits.Load(),
		Misses:     c.misses.Load(),
		DiskErrors: c.diskErrs.Load(),
	}
}

func (c *checker) loadFailure(path string, err error) FileResult {
	bag := diag.NewBag(c.opts.MaxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+err.Error()))
	emit(c.opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
	return FileResult{Path: path, Bag: bag}
}

func (c *checker) checkFile(ctx context.Context, file *source.File) (res FileResult) {
	span := trace.Begin(c.tracer, trace.ScopeFile, "check_file", c.span.ID()).WithExtra("path", file.Path)
	ph := newPhases(c.opts.Timings, c.tracer, span.ID())
	res = FileResult{Path: file.Path, FileID: file.ID, Bag: diag.NewBag(c.opts.MaxDiagnostics)}
	defer func() {
		res.Timing = ph.report()
		span.End(strconv.Itoa(res.Bag.Len()) + " diagnostics")
	}()

	emit(c.opts.Progress, Event{File: file.Path, Stage: StageLoad, Status: StatusWorking})
	key, cached, ok := c.lookup(ph, file)
	if ok {
		for _, d := range cached {
			res.Bag.Add(d)
		}
		res.Cached = true
		emit(c.opts.Progress, Event{File: file.Path, Stage: StageLoad, Status: StatusCached})
		return res
	}

	emit(c.opts.Progress, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	h := ph.begin("parse")
	maxErrors, err := safecast.Conv[uint](max(c.opts.MaxDiagnostics, 0))
	if err != nil {
		panic(fmt.Errorf("maxDiagnostics overflow: %w", err))
	}
	parsed := parser.ParseFile(file, parser.Options{MaxErrors: maxErrors})
	h.end(strconv.Itoa(len(parsed.Diagnostics)) + " errors")
	for _, d := range parsed.Diagnostics {
		res.Bag.Add(d)
	}

	emit(c.opts.Progress, Event{File: file.Path, Stage: StageAnalyze, Status: StatusWorking})
	h = ph.begin("analyze")
	aopts := c.opts.Analysis
	aopts.File, aopts.Tracer, aopts.ParentSpan = file.ID, c.tracer, h.span.ID()
	text := parsed.Root.Text()
	broken := analyzer.Analyze(parsed.Root, c.opts.Registry, aopts, func(s analyzer.Signal) analyzer.ControlFlow {
		if ctx.Err() != nil {
			return analyzer.Break
		}
		rd, ok := s.Diagnostic()
		if !ok {
			return analyzer.Continue
		}
		d := rd.ToDiagnostic(file.ID)
		for _, a := range s.Actions() {
			fx, err := fix.ActionFix(file.ID, text, a)
			if err != nil {
				trace.Point(c.tracer, trace.ScopeNode, "action_dropped", err.Error(), span.ID())
				continue
			}
			d.Fixes = append(d.Fixes, fx)
		}
		res.Bag.Add(d)
		if res.Bag.Full() {
			res.Truncated = true
			return analyzer.Break
		}
		return analyzer.Continue
	})
	h.end(strconv.Itoa(res.Bag.Len()) + " diagnostics")
	res.Bag.Sort()

	if res.Truncated {
		// a partial result must not be replayed from the cache
		emit(c.opts.Progress, Event{File: file.Path, Stage: StageAnalyze, Status: StatusDone})
		return res
	}
	if broken || ctx.Err() != nil {
		emit(c.opts.Progress, Event{File: file.Path, Stage: StageAnalyze, Status: StatusError, Err: ctx.Err()})
		return res
	}
	c.store(file, key, res.Bag)
	emit(c.opts.Progress, Event{File: file.Path, Stage: StageAnalyze, Status: StatusDone})
	return res
}

// lookup consults the memory cache, then the disk cache.
func (c *checker) lookup(ph *phases, file *source.File) (Digest, []diag.Diagnostic, bool) {
	if c.opts.Cache == nil && c.opts.Memory == nil {
		return Digest{}, nil, false
	}
	h := ph.begin("cache")
	content := Digest(file.Hash)
	key := combineDigest(content, c.rules)
	if diags, ok := c.opts.Memory.Get(file.Path, key); ok {
		c.memHits.Add(1)
		h.end("memory hit")
		return key, rebase(diags, file.ID), true
	}
	var payload DiskPayload
	ok, err := c.opts.Cache.Get(key, &payload)
	switch {
	case err != nil:
		c.diskErrs.Add(1)
		trace.Point(c.tracer, trace.ScopeFile, "cache_error", err.Error(), h.span.ID())
	case ok && payload.ContentHash == content:
		c.diskHits.Add(1)
		diags := payloadToDiagnostics(&payload, file.ID)
		c.opts.Memory.Put(file.Path, key, diags)
		h.end("disk hit")
		return key, diags, true
	}
	c.misses.Add(1)
	h.end("miss")
	return key, nil, false
}

func (c *checker) store(file *source.File, key Digest, bag *diag.Bag) {
	if c.opts.Cache == nil && c.opts.Memory == nil {
		return
	}
	// a truncated bag would be replayed as if complete
	if bag.Dropped() > 0 {
		return
	}
	diags := append([]diag.Diagnostic(nil), bag.Items()...)
	c.opts.Memory.Put(file.Path, key, diags)
	payload := diagnosticsToPayload(file.Path, Digest(file.Hash), c.rules, diags)
	if err := c.opts.Cache.Put(key, payload); err != nil {
		c.diskErrs.Add(1)
		trace.Point(c.tracer, trace.ScopeFile, "cache_error", err.Error(), 0)
	}
}

// rebase moves cached diagnostics onto file, since FileIDs are per FileSet.
func rebase(diags []diag.Diagnostic, file source.FileID) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(diags))
	for i, d := range diags {
		d.Primary.File = file
		d.Notes = append([]diag.Note(nil), d.Notes...)
		for j := range d.Notes {
			d.Notes[j].Span.File = file
		}
		d.Fixes = append([]diag.Fix(nil), d.Fixes...)
		for j := range d.Fixes {
			edits := append([]diag.FixEdit(nil), d.Fixes[j].Edits...)
			for k := range edits {
				edits[k].Span.File = file
			}
			d.Fixes[j].Edits = edits
		}
		out[i] = d
	}
	return out
}
