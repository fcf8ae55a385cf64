package driver_test

import (
	"testing"

	"lintel/internal/analyzer"
	"lintel/internal/diag"
	"lintel/internal/driver"
	"lintel/internal/rules"
	"lintel/internal/source"
)

func TestContentDigest(t *testing.T) {
	a := driver.ContentDigest([]byte("debugger;"))
	b := driver.ContentDigest([]byte("debugger;"))
	c := driver.ContentDigest([]byte("debugger; "))
	if a != b {
		t.Fatal("digest must be deterministic")
	}
	if a == c {
		t.Fatal("different content must hash differently")
	}
	if a.IsZero() {
		t.Fatal("digest of non-empty content is zero")
	}
	if len(a.String()) != 32 {
		t.Fatalf("hex form = %q, want 32 chars", a.String())
	}
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("a.js", []byte("debugger;")))
	if driver.Digest(f.Hash) != a {
		t.Fatal("file hash and content digest disagree")
	}
}

func TestRuleSetDigest(t *testing.T) {
	reg := rules.NewRegistry(rules.Options{})
	base := driver.RuleSetDigest(reg, analyzer.Options{})
	if base != driver.RuleSetDigest(reg, analyzer.Options{}) {
		t.Fatal("rule digest must be deterministic")
	}

	tests := []struct {
		name string
		opts analyzer.Options
		salt []string
	}{
		{name: "disabled rule", opts: analyzer.Options{Filter: analyzer.AnalysisFilter{
			DisabledRules: []analyzer.RuleFilter{{Group: "suspicious", Rule: "noDebugger"}},
		}}},
		{name: "severity", opts: analyzer.Options{Severity: map[analyzer.RuleKey]diag.Severity{
			{Group: "suspicious", Name: "noDebugger"}: diag.SevWarning,
		}}},
		{name: "categories", opts: analyzer.Options{Filter: analyzer.AnalysisFilter{Categories: analyzer.CategoryLint}}},
		{name: "unused suppressions", opts: analyzer.Options{Filter: analyzer.AnalysisFilter{ReportUnusedSuppressions: true}}},
		{name: "range", opts: analyzer.Options{Filter: analyzer.AnalysisFilter{Range: &source.TextRange{Start: 1, End: 4}}}},
		{name: "salt", salt: []string{"globals=foo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := driver.RuleSetDigest(reg, tt.opts, tt.salt...); got == base {
				t.Fatalf("%s must change the digest", tt.name)
			}
		})
	}

	if driver.RuleSetDigest(reg, analyzer.Options{}, "b", "a") != driver.RuleSetDigest(reg, analyzer.Options{}, "a", "b") {
		t.Fatal("salt order must not matter")
	}
}
