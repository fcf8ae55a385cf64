package driver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lintel/internal/driver"
	"lintel/internal/fix"
)

func TestFixFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"eq.js":     "x == 1;\n",
		"crlf.js":   "a;\r\ny != 2;\r\n",
		"clean.js":  "a;\n",
		"broken.js": "if (",
	})
	opts := driver.FixOptions{Options: checkOptions(), Mode: fix.ApplyModeUnsafe, Write: true}
	results, err := driver.FixFiles(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	byName := map[string]driver.FixFileResult{}
	for _, r := range results {
		byName[filepath.Base(r.Path)] = r
	}

	read := func(name string) string {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		return string(b)
	}

	if r := byName["eq.js"]; r.Err != nil || !r.Written || !r.Changed() {
		t.Fatalf("eq.js = %+v", r)
	}
	if got := read("eq.js"); got != "x === 1;\n" {
		t.Fatalf("eq.js on disk = %q", got)
	}
	if got := read("crlf.js"); got != "a;\r\ny !== 2;\r\n" {
		t.Fatalf("line endings not restored: %q", got)
	}

	if r := byName["clean.js"]; r.Err != nil || r.Changed() || r.Written {
		t.Fatalf("clean.js = %+v", r)
	}
	if r := byName["broken.js"]; !errors.Is(r.Err, fix.ErrSyntax) || r.Written {
		t.Fatalf("broken.js = %+v", r)
	}
	if got := read("broken.js"); got != "if (" {
		t.Fatalf("broken file was modified: %q", got)
	}
}

func TestFixFilesDryRun(t *testing.T) {
	dir := writeTree(t, map[string]string{"eq.js": "x == 1;\n"})
	opts := driver.FixOptions{Options: checkOptions(), Mode: fix.ApplyModeUnsafe}
	results, err := driver.FixFiles(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if len(results) != 1 || results[0].Written || results[0].Result.Text != "x === 1;\n" {
		t.Fatalf("results = %+v", results)
	}
	b, _ := os.ReadFile(filepath.Join(dir, "eq.js"))
	if string(b) != "x == 1;\n" {
		t.Fatalf("dry run wrote the file: %q", b)
	}
}

func TestFixFilesSafeModeSkipsMaybeIncorrect(t *testing.T) {
	dir := writeTree(t, map[string]string{"eq.js": "x == 1;\n"})
	opts := driver.FixOptions{Options: checkOptions(), Mode: fix.ApplyModeAll, Write: true}
	results, err := driver.FixFiles(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if results[0].Changed() || results[0].Err != nil {
		t.Fatalf("== fixes are not safe: %+v", results[0])
	}
}
