package driver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"lintel/internal/analyzer"
	"lintel/internal/config"
	"lintel/internal/diag"
	"lintel/internal/driver"
	"lintel/internal/fix"
	"lintel/internal/rules"
	"lintel/internal/testkit"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

// checkOptions enables only the two rules the tests below reason about.
func checkOptions() driver.Options {
	return driver.Options{
		Registry: rules.NewRegistry(rules.Options{}),
		Analysis: analyzer.Options{Filter: analyzer.AnalysisFilter{EnabledRules: []analyzer.RuleFilter{
			{Group: "suspicious", Rule: "noDebugger"},
			{Group: "suspicious", Rule: "noDoubleEquals"},
		}}},
		Jobs: 2,
	}
}

func categories(fr driver.FileResult) []string {
	var out []string
	for _, d := range fr.Bag.Items() {
		out = append(out, d.Label())
	}
	return out
}

func TestCheckDirectory(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.js":          "debugger;\n",
		"b.js":          "x == 1;\n",
		"sub/c.mjs":     "let a = 1;\na;\n",
		"notes.txt":     "debugger;\n",
		".hidden/d.js":  "debugger;\n",
		"vendor/e.js":   "debugger;\n",
		"big.js":        "// " + strings.Repeat("x", 100) + "\n",
		"sub/vendor.js": "debugger;\n",
	})
	cfg := config.Default()
	cfg.Root = dir
	cfg.Files.Ignore = []string{"vendor"}
	cfg.Files.MaxSize = 64

	opts := checkOptions()
	opts.Config = cfg
	res, err := driver.Check(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("check: %v", err)
	}

	var paths []string
	for _, f := range res.Files {
		rel, _ := filepath.Rel(dir, f.Path)
		paths = append(paths, filepath.ToSlash(rel))
	}
	want := []string{"a.js", "b.js", "sub/c.mjs", "sub/vendor.js"}
	if strings.Join(paths, ",") != strings.Join(want, ",") {
		t.Fatalf("files = %v, want %v", paths, want)
	}
	if len(res.Skipped) != 1 || filepath.Base(res.Skipped[0].Path) != "big.js" || res.Skipped[0].Reason != "larger than 64 B" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}

	if got := categories(res.Files[0]); len(got) != 1 || got[0] != "lint/suspicious/noDebugger" {
		t.Fatalf("a.js diagnostics = %v", got)
	}
	if got := categories(res.Files[1]); len(got) != 1 || got[0] != "lint/suspicious/noDoubleEquals" {
		t.Fatalf("b.js diagnostics = %v", got)
	}
	if res.Files[2].Bag.Len() != 0 {
		t.Fatalf("c.mjs should be clean: %v", categories(res.Files[2]))
	}
	if res.Count(diag.SevError) != 3 || !res.HasErrors() {
		t.Fatalf("error count = %d", res.Count(diag.SevError))
	}

	// rule actions arrive as text edits against the file
	d := res.Files[0].Bag.Items()[0]
	if len(d.Fixes) != 1 || d.Fixes[0].Applicability != diag.FixAlways {
		t.Fatalf("debugger fix = %+v", d.Fixes)
	}
	file := res.FileSet.Get(d.Primary.File)
	out, err := fix.ApplyEdits(string(file.Content), d.Fixes[0].Edits)
	if err != nil {
		t.Fatalf("apply edits: %v", err)
	}
	if strings.Contains(out, "debugger") {
		t.Fatalf("fix left the statement: %q", out)
	}
}

func TestCheckExplicitFile(t *testing.T) {
	dir := writeTree(t, map[string]string{"script.txt": "debugger;"})
	res, err := driver.Check(context.Background(), []string{filepath.Join(dir, "script.txt")}, checkOptions())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(res.Files) != 1 || res.Files[0].Bag.Len() != 1 {
		t.Fatalf("explicit files are checked whatever their extension: %+v", res.Files)
	}
}

func TestCheckMissingPath(t *testing.T) {
	_, err := driver.Check(context.Background(), []string{filepath.Join(t.TempDir(), "nope")}, checkOptions())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestCheckProgressEvents(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.js": "a;", "b.js": "b;", "c.js": "c;"})
	var (
		mu     sync.Mutex
		events = map[string][]driver.Status{}
	)
	opts := checkOptions()
	opts.Progress = driver.ProgressFunc(func(ev driver.Event) {
		mu.Lock()
		defer mu.Unlock()
		events[filepath.Base(ev.File)] = append(events[filepath.Base(ev.File)], ev.Status)
	})
	if _, err := driver.Check(context.Background(), []string{dir}, opts); err != nil {
		t.Fatalf("check: %v", err)
	}
	for _, name := range []string{"a.js", "b.js", "c.js"} {
		st := events[name]
		if len(st) < 2 || st[0] != driver.StatusQueued || st[len(st)-1] != driver.StatusDone {
			t.Fatalf("%s events = %v", name, st)
		}
	}
}

func TestCheckDiskCache(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.js": "debugger;\n", "b.js": "x != 2;\n"})
	cache, err := driver.OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	opts := checkOptions()
	opts.Cache = cache

	first, err := driver.Check(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Cache.Misses != 2 || first.Cache.DiskHits != 0 {
		t.Fatalf("first run stats = %+v", first.Cache)
	}

	second, err := driver.Check(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Cache.DiskHits != 2 || second.Cache.Misses != 0 {
		t.Fatalf("second run stats = %+v", second.Cache)
	}
	for i := range first.Files {
		if !second.Files[i].Cached {
			t.Fatalf("%s not served from cache", second.Files[i].Path)
		}
		a, b := first.Files[i].Bag.Items(), second.Files[i].Bag.Items()
		if len(a) != len(b) || a[0].Message != b[0].Message || a[0].Primary.Range() != b[0].Primary.Range() || len(b[0].Fixes) != 1 {
			t.Fatalf("cached result differs:\n%+v\n%+v", a, b)
		}
	}

	// a changed rule set must not reuse entries
	opts.Analysis.Severity = map[analyzer.RuleKey]diag.Severity{{Group: "suspicious", Name: "noDebugger"}: diag.SevWarning}
	third, err := driver.Check(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("third run: %v", err)
	}
	if third.Cache.Misses != 2 {
		t.Fatalf("severity change should invalidate: %+v", third.Cache)
	}
	if third.Files[0].Bag.Items()[0].Severity != diag.SevWarning {
		t.Fatal("severity override not applied")
	}
}

func TestCheckMemoryCache(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.js": "debugger;\n"})
	opts := checkOptions()
	opts.Memory = driver.NewResultCache(4)

	if _, err := driver.Check(context.Background(), []string{dir}, opts); err != nil {
		t.Fatalf("first run: %v", err)
	}
	res, err := driver.Check(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if res.Cache.MemoryHits != 1 {
		t.Fatalf("stats = %+v", res.Cache)
	}
	d := res.Files[0].Bag.Items()[0]
	if d.Primary.File != res.Files[0].FileID {
		t.Fatal("cached spans must point into the new file set")
	}

	if err := os.WriteFile(filepath.Join(dir, "a.js"), []byte("a;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err = driver.Check(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("third run: %v", err)
	}
	if res.Cache.MemoryHits != 0 || res.Files[0].Bag.Len() != 0 {
		t.Fatalf("edited file must be re-analyzed: %+v", res.Cache)
	}
}

func TestCheckSourceParseErrors(t *testing.T) {
	res, err := driver.CheckSource(context.Background(), "<stdin>", []byte("if ("), checkOptions())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !res.HasErrors() {
		t.Fatal("expected parse errors")
	}
	for _, d := range res.Files[0].Bag.Items() {
		if d.Category != diag.CategoryParse {
			t.Fatalf("unexpected diagnostic %s: %s", d.Label(), d.Message)
		}
	}
}

func TestCheckSuppressionCodes(t *testing.T) {
	src := "// lintel-ignore lint/suspicious/noDebugger\ndebugger;\n"
	res, err := driver.CheckSource(context.Background(), "a.js", []byte(src), checkOptions())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	items := res.Files[0].Bag.Items()
	if len(items) != 2 {
		t.Fatalf("diagnostics = %+v", items)
	}
	if items[0].Code != diag.SupMalformed || items[0].Category != diag.CategorySuppressionParse {
		t.Fatalf("first = %s %s", items[0].Code.ID(), items[0].Category)
	}
	if items[1].Code != diag.LintRule {
		t.Fatalf("second = %s", items[1].Code.ID())
	}
}

func TestCheckTimings(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.js": "a;", "b.js": "b;"})
	opts := checkOptions()
	opts.Timings = true
	res, err := driver.Check(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	report := res.Timings()
	var names []string
	for _, p := range report.Phases {
		names = append(names, p.Name)
		if p.Count != 2 {
			t.Fatalf("phase %s counted %d times", p.Name, p.Count)
		}
	}
	if strings.Join(names, ",") != "parse,analyze" {
		t.Fatalf("phases = %v", names)
	}
}

func TestCheckStopsAtDiagnosticsLimit(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.js": "debugger;\ndebugger;\ndebugger;\ndebugger;\n"})
	opts := checkOptions()
	opts.MaxDiagnostics = 2
	opts.Memory = driver.NewResultCache(4)
	res, err := driver.Check(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	fr := res.Files[0]
	if !fr.Truncated || fr.Bag.Len() != 2 {
		t.Fatalf("truncated=%v len=%d", fr.Truncated, fr.Bag.Len())
	}
	// the walk stopped, so nothing was offered past the limit
	if fr.Bag.Dropped() != 0 {
		t.Fatalf("dropped=%d, walk should have stopped", fr.Bag.Dropped())
	}

	again, err := driver.Check(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if again.Files[0].Cached {
		t.Fatal("truncated result must not be cached")
	}
}

func TestCheckCancelled(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.js": "a;"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := driver.Check(ctx, []string{dir}, checkOptions()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestDiagnosticsLimit(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.js": "debugger;", "b.js": "debugger;"})
	res, err := driver.Check(context.Background(), []string{dir}, checkOptions())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	bag := res.Diagnostics(1)
	if bag.Len() != 1 || bag.Dropped() != 1 {
		t.Fatalf("len=%d dropped=%d", bag.Len(), bag.Dropped())
	}
	if all := res.Diagnostics(0); all.Len() != 2 {
		t.Fatalf("unlimited merge kept %d", all.Len())
	}
}

func TestCheckGoldenOutput(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.js":     "debugger;\n",
		"lib/b.js": "let x = 2;\nif (x != 1) {}\n",
	})
	res, err := driver.Check(context.Background(), []string{dir}, checkOptions())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	want := "error lint/suspicious/noDebugger a.js:1:1 This is an unexpected use of the debugger statement.\n" +
		"error lint/suspicious/noDoubleEquals lib/b.js:2:7 Use !== instead of !="
	if got := testkit.GoldenDiagnostics(res.Diagnostics(0).Items(), res.FileSet, false); got != want {
		t.Fatalf("golden output:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}
