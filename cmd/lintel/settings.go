package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"lintel/internal/analyzer"
	"lintel/internal/config"
	"lintel/internal/rules"
	"lintel/internal/source"
)

// settings is everything a pipeline command derives from lintel.toml and
// its own flags.
type settings struct {
	config   *config.Config
	registry *analyzer.Registry
	analysis analyzer.Options
	// salt feeds the cache key with options the registry does not encode
	salt []string
}

// loadConfig honors --config, otherwise discovers lintel.toml upward from
// the first path.
func loadConfig(cmd *cobra.Command, paths []string) (*config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	start := "."
	if len(paths) > 0 && paths[0] != "-" {
		start = paths[0]
		if info, err := os.Stat(start); err == nil && !info.IsDir() {
			start = filepath.Dir(start)
		}
	}
	return config.Discover(start)
}

// loadSettings builds the registry and analyzer options. Commands that
// register --only, --skip and --range get them applied on top of the
// configuration.
func loadSettings(cmd *cobra.Command, paths []string) (*settings, error) {
	cfg, err := loadConfig(cmd, paths)
	if err != nil {
		return nil, err
	}
	reg := rules.NewRegistry(rules.Options{Globals: cfg.Linter.Globals})
	analysis, err := cfg.Analysis(reg)
	if err != nil {
		return nil, err
	}
	s := &settings{
		config:   cfg,
		registry: reg,
		analysis: analyzer.Options{Filter: analysis.Filter, Severity: analysis.Severity},
	}
	globals := slices.Clone(cfg.Linter.Globals)
	slices.Sort(globals)
	for _, g := range globals {
		s.salt = append(s.salt, "global="+g)
	}

	if only, err := ruleFilters(cmd, "only", reg); err != nil {
		return nil, err
	} else if len(only) > 0 {
		s.analysis.Filter.EnabledRules = only
	}
	skip, err := ruleFilters(cmd, "skip", reg)
	if err != nil {
		return nil, err
	}
	s.analysis.Filter.DisabledRules = append(s.analysis.Filter.DisabledRules, skip...)

	if f := cmd.Flags().Lookup("range"); f != nil && f.Value.String() != "" {
		if len(paths) != 1 {
			return nil, fmt.Errorf("--range needs exactly one file")
		}
		r, err := source.ParseRange(f.Value.String())
		if err != nil {
			return nil, err
		}
		s.analysis.Filter.Range = &r
	}
	return s, nil
}

// ruleFilters parses a repeated rule flag and checks every entry against reg.
func ruleFilters(cmd *cobra.Command, name string, reg *analyzer.Registry) ([]analyzer.RuleFilter, error) {
	if cmd.Flags().Lookup(name) == nil {
		return nil, nil
	}
	values, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	out := make([]analyzer.RuleFilter, 0, len(values))
	for _, v := range values {
		f, err := analyzer.ParseRuleFilter(v)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", name, err)
		}
		if !knownFilter(reg, f) {
			return nil, fmt.Errorf("--%s: unknown rule or group %q", name, v)
		}
		out = append(out, f)
	}
	return out, nil
}

func knownFilter(reg *analyzer.Registry, f analyzer.RuleFilter) bool {
	if f.Rule == "" {
		return reg.HasGroup(f.Group)
	}
	_, ok := reg.Lookup(analyzer.RuleKey{Group: f.Group, Name: f.Rule})
	return ok
}

// addRuleFlags registers the flags loadSettings reads.
func addRuleFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("only", nil, "run only these rules or groups (group or group/rule)")
	cmd.Flags().StringSlice("skip", nil, "skip these rules or groups")
	cmd.Flags().String("range", "", "only report diagnostics intersecting start..end (byte offsets, single file)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
}
