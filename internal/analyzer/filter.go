package analyzer

import (
	"fmt"
	"strings"

	"lintel/internal/source"
)

// RuleCategories is a set of rule categories.
type RuleCategories uint8

const (
	CategorySyntax RuleCategories = 1 << iota
	CategoryLint
	CategoryAction

	AllCategories = CategorySyntax | CategoryLint | CategoryAction
)

func (c RuleCategories) Contains(o RuleCategories) bool { return c&o == o }

func (c RuleCategories) String() string {
	var parts []string
	for _, e := range []struct {
		bit  RuleCategories
		name string
	}{{CategorySyntax, "syntax"}, {CategoryLint, "lint"}, {CategoryAction, "action"}} {
		if c&e.bit != 0 {
			parts = append(parts, e.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// RuleFilter matches a whole group (Rule empty) or a single rule.
type RuleFilter struct {
	Group string
	Rule  string
}

// ParseRuleFilter accepts "group", "group/rule", each optionally prefixed
// with "lint/".
func ParseRuleFilter(s string) (RuleFilter, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "lint/")
	group, rule, _ := strings.Cut(s, "/")
	if group == "" || strings.Contains(rule, "/") {
		return RuleFilter{}, fmt.Errorf("invalid rule filter %q", s)
	}
	return RuleFilter{Group: group, Rule: rule}, nil
}

func (f RuleFilter) Matches(k RuleKey) bool {
	return f.Group == k.Group && (f.Rule == "" || f.Rule == k.Name)
}

func (f RuleFilter) String() string {
	if f.Rule == "" {
		return f.Group
	}
	return f.Group + "/" + f.Rule
}

// AnalysisFilter selects which rules run and where.
type AnalysisFilter struct {
	// Categories defaults to AllCategories when zero.
	Categories RuleCategories
	// EnabledRules, when non-nil, restricts the run to matching rules.
	EnabledRules  []RuleFilter
	DisabledRules []RuleFilter
	// Range limits dispatch to nodes intersecting it.
	Range                    *source.TextRange
	ReportUnusedSuppressions bool
}

// Allows reports whether a rule passes the category and rule filters.
func (f AnalysisFilter) Allows(m Metadata) bool {
	cats := f.Categories
	if cats == 0 {
		cats = AllCategories
	}
	if !cats.Contains(m.Category) {
		return false
	}
	key := m.Key()
	if f.EnabledRules != nil && !matchesAny(f.EnabledRules, key) {
		return false
	}
	return !matchesAny(f.DisabledRules, key)
}

func matchesAny(filters []RuleFilter, k RuleKey) bool {
	for _, f := range filters {
		if f.Matches(k) {
			return true
		}
	}
	return false
}

// inRange reports whether a node range should be visited under the filter.
func (f AnalysisFilter) inRange(r source.TextRange) bool {
	return f.Range == nil || f.Range.Intersects(r)
}
