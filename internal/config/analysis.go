package config

import (
	"fmt"
	"slices"
	"strings"

	"lintel/internal/analyzer"
	"lintel/internal/diag"
	"lintel/internal/rules"
)

var levelSeverity = map[Level]diag.Severity{
	LevelHint:  diag.SevHint,
	LevelInfo:  diag.SevInfo,
	LevelWarn:  diag.SevWarning,
	LevelError: diag.SevError,
}

// Analysis is the part of a Config the analyzer consumes.
type Analysis struct {
	Filter   analyzer.AnalysisFilter
	Severity map[analyzer.RuleKey]diag.Severity
	Rules    rules.Options
}

// Analysis maps [linter] onto a filter and severity overrides for reg.
// Rule names that reg does not know are errors.
func (c *Config) Analysis(reg *analyzer.Registry) (Analysis, error) {
	out := Analysis{
		Severity: make(map[analyzer.RuleKey]diag.Severity),
		Rules:    rules.Options{Globals: slices.Clone(c.Linter.Globals)},
	}
	out.Filter.ReportUnusedSuppressions = c.Linter.ReportUnusedSuppressions

	var enabled []analyzer.RuleFilter
	if c.Linter.Recommended {
		enabled = rules.Recommended(reg)
	}

	names := make([]string, 0, len(c.Linter.Rules))
	for name := range c.Linter.Rules {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		f, err := analyzer.ParseRuleFilter(name)
		if err != nil {
			return Analysis{}, fmt.Errorf("%s: [linter.rules]: %w", c.describe(), err)
		}
		if !known(reg, f) {
			return Analysis{}, fmt.Errorf("%s: [linter.rules]: unknown rule or group %q", c.describe(), name)
		}
		level := c.Linter.Rules[name]
		if level == LevelOff {
			out.Filter.DisabledRules = append(out.Filter.DisabledRules, f)
			continue
		}
		enabled = append(enabled, f)
		for m := range reg.Rules() {
			if f.Matches(m.Key()) {
				out.Severity[m.Key()] = levelSeverity[level]
			}
		}
	}
	if c.Linter.Recommended {
		// a non-nil empty list still means "nothing beyond the named rules"
		out.Filter.EnabledRules = append(make([]analyzer.RuleFilter, 0, len(enabled)), enabled...)
	}
	return out, nil
}

func known(reg *analyzer.Registry, f analyzer.RuleFilter) bool {
	if f.Rule == "" {
		return reg.HasGroup(f.Group)
	}
	_, ok := reg.Lookup(analyzer.RuleKey{Group: f.Group, Name: f.Rule})
	return ok
}

func (c *Config) describe() string {
	if c.Path == "" {
		return "default configuration"
	}
	return strings.TrimSpace(c.Path)
}
