package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"lintel/internal/analyzer"
	"lintel/internal/fix"
	"lintel/internal/rules"
)

func TestReadUIMode(t *testing.T) {
	cases := map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff}
	for in, want := range cases {
		got, err := readUIMode(in)
		if err != nil {
			t.Fatalf("readUIMode(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("readUIMode(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatalf("expected an error for an unknown mode")
	}
}

// newTestCommand mirrors the flag layout of a pipeline subcommand.
func newTestCommand(t *testing.T, configPath string) *cobra.Command {
	t.Helper()
	root := &cobra.Command{Use: "lintel"}
	root.PersistentFlags().String("config", configPath, "")
	sub := &cobra.Command{Use: "check"}
	addRuleFlags(sub)
	sub.Flags().Bool("all", false, "")
	sub.Flags().Bool("once", false, "")
	sub.Flags().Bool("unsafe", false, "")
	root.AddCommand(sub)
	return sub
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lintel.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestReadApplyMode(t *testing.T) {
	cases := []struct {
		flags   []string
		want    fix.ApplyMode
		wantErr bool
	}{
		{nil, fix.ApplyModeAll, false},
		{[]string{"all"}, fix.ApplyModeAll, false},
		{[]string{"once"}, fix.ApplyModeOnce, false},
		{[]string{"unsafe"}, fix.ApplyModeUnsafe, false},
		{[]string{"once", "unsafe"}, 0, true},
	}
	for _, tc := range cases {
		cmd := newTestCommand(t, "")
		for _, f := range tc.flags {
			if err := cmd.Flags().Set(f, "true"); err != nil {
				t.Fatalf("set %s: %v", f, err)
			}
		}
		got, err := readApplyMode(cmd)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("flags %v: expected an error", tc.flags)
			}
			continue
		}
		if err != nil {
			t.Fatalf("flags %v: %v", tc.flags, err)
		}
		if got != tc.want {
			t.Fatalf("flags %v: mode %v, want %v", tc.flags, got, tc.want)
		}
	}
}

func TestLoadSettingsAppliesRuleFlags(t *testing.T) {
	path := writeConfig(t, "[linter]\nglobals = [\"window\", \"$\"]\n\n[linter.rules]\n\"style/noVar\" = \"off\"\n")
	cmd := newTestCommand(t, path)
	if err := cmd.Flags().Set("only", "suspicious,correctness/noUnusedVariables"); err != nil {
		t.Fatalf("set only: %v", err)
	}
	if err := cmd.Flags().Set("skip", "suspicious/noSparseArray"); err != nil {
		t.Fatalf("set skip: %v", err)
	}
	if err := cmd.Flags().Set("range", "4..10"); err != nil {
		t.Fatalf("set range: %v", err)
	}

	st, err := loadSettings(cmd, []string{"main.js"})
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	filter := st.analysis.Filter
	wantOnly := []analyzer.RuleFilter{{Group: "suspicious"}, {Group: "correctness", Rule: "noUnusedVariables"}}
	if len(filter.EnabledRules) != len(wantOnly) || filter.EnabledRules[0] != wantOnly[0] || filter.EnabledRules[1] != wantOnly[1] {
		t.Fatalf("enabled rules = %v, want %v", filter.EnabledRules, wantOnly)
	}
	if len(filter.DisabledRules) != 2 {
		t.Fatalf("disabled rules = %v, want config and flag entries", filter.DisabledRules)
	}
	if filter.Range == nil || filter.Range.Start != 4 || filter.Range.End != 10 {
		t.Fatalf("range = %v", filter.Range)
	}
	if got := strings.Join(st.salt, ","); got != "global=$,global=window" {
		t.Fatalf("salt = %q", got)
	}
	if st.registry.Len() == 0 {
		t.Fatalf("empty registry")
	}
}

func TestLoadSettingsRejectsUnknownRule(t *testing.T) {
	cmd := newTestCommand(t, writeConfig(t, ""))
	if err := cmd.Flags().Set("skip", "style/noSuchRule"); err != nil {
		t.Fatalf("set skip: %v", err)
	}
	if _, err := loadSettings(cmd, []string{"main.js"}); err == nil || !strings.Contains(err.Error(), "noSuchRule") {
		t.Fatalf("expected unknown rule error, got %v", err)
	}
}

func TestLoadSettingsRangeNeedsOneFile(t *testing.T) {
	cmd := newTestCommand(t, writeConfig(t, ""))
	if err := cmd.Flags().Set("range", "0..1"); err != nil {
		t.Fatalf("set range: %v", err)
	}
	if _, err := loadSettings(cmd, []string{"a.js", "b.js"}); err == nil {
		t.Fatalf("expected an error for --range with two files")
	}
}

func TestRenderRulesPretty(t *testing.T) {
	reg := rules.NewRegistry(rules.Options{})
	var list []analyzer.Metadata
	for m := range reg.Rules() {
		if m.Group == "style" {
			list = append(list, m)
		}
	}
	var buf bytes.Buffer
	if err := renderRulesPretty(&buf, list, false); err != nil {
		t.Fatalf("renderRulesPretty: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Style (style)", "noVar", "noNegationElse", "recommended"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1, "file"); got != "1 file" {
		t.Fatalf("plural(1) = %q", got)
	}
	if got := plural(1200, "error"); got != "1,200 errors" {
		t.Fatalf("plural(1200) = %q", got)
	}
}
