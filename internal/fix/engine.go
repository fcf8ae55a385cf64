package fix

import (
	"errors"
	"fmt"
	"slices"

	"lintel/internal/analyzer"
	"lintel/internal/diag"
	"lintel/internal/parser"
	"lintel/internal/source"
	"lintel/internal/trace"
)

var (
	// ErrNoFixes is returned when no fixes were applied.
	ErrNoFixes = errors.New("no applicable fixes found")
	// ErrSyntax is returned when the input does not parse cleanly.
	ErrSyntax = errors.New("source has syntax errors")
	// ErrIterationLimit is returned when fixes were still pending after
	// MaxIterations rounds.
	ErrIterationLimit = errors.New("fix iteration limit reached")
)

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	// ApplyModeOnce applies a single fix, preferring safe ones.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies every FixAlways action.
	ApplyModeAll
	// ApplyModeUnsafe also applies FixMaybeIncorrect actions.
	ApplyModeUnsafe
)

func (m ApplyMode) String() string {
	switch m {
	case ApplyModeOnce:
		return "once"
	case ApplyModeAll:
		return "all"
	case ApplyModeUnsafe:
		return "unsafe"
	}
	return "unknown"
}

func (m ApplyMode) allows(a diag.Applicability) bool {
	switch a {
	case diag.FixAlways:
		return true
	case diag.FixMaybeIncorrect:
		return m != ApplyModeAll
	}
	return false
}

// DefaultMaxIterations bounds the analyze/commit/re-parse loop.
const DefaultMaxIterations = 100

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode          ApplyMode
	MaxIterations int
	Analysis      analyzer.Options
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	Rule          string
	Title         string
	Message       string
	Applicability diag.Applicability
	// Range is the diagnostic range in the text the fix was applied to.
	Range source.TextRange
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	Rule   string
	Title  string
	Reason string
}

// ApplyResult aggregates applied fixes, skipped ones and the final text.
type ApplyResult struct {
	Text       string
	Applied    []AppliedFix
	Skipped    []SkippedFix
	Iterations int
}

// Changed reports whether any fix was applied.
func (r *ApplyResult) Changed() bool { return len(r.Applied) > 0 }

type candidate struct {
	diag   analyzer.RuleDiagnostic
	action analyzer.RuleAction
}

// key identifies a candidate across rounds so a failed action is not retried.
func (c candidate) key() string {
	return c.action.Rule + "@" + c.diag.Range.String() + ":" + c.action.Message
}

// Apply runs the fix loop: analyze, pick the first allowed action, commit
// it, re-parse the printed tree and repeat until nothing applies or the
// iteration limit is hit. An action whose output does not parse is skipped.
func Apply(text string, reg *analyzer.Registry, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Text:    text,
		Applied: make([]AppliedFix, 0),
		Skipped: make([]SkippedFix, 0),
	}
	limit := opts.MaxIterations
	if limit <= 0 {
		limit = DefaultMaxIterations
	}
	tracer := opts.Analysis.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}

	parsed := parser.ParseText(text)
	if parsed.HasErrors() {
		return result, ErrSyntax
	}

	failed := make(map[string]bool)
	for {
		candidates := gatherCandidates(parsed, reg, opts, failed)
		if len(candidates) == 0 {
			break
		}
		if result.Iterations == limit {
			return result, fmt.Errorf("%w (%d)", ErrIterationLimit, limit)
		}
		result.Iterations++

		applied := false
		for _, cand := range candidates {
			next, reason := commitCandidate(cand)
			if reason != "" {
				failed[cand.key()] = true
				result.Skipped = append(result.Skipped, SkippedFix{
					Rule:   cand.action.Rule,
					Title:  cand.action.Message,
					Reason: reason,
				})
				continue
			}
			result.Text, parsed = next.text, next.parsed
			result.Applied = append(result.Applied, AppliedFix{
				Rule:          cand.action.Rule,
				Title:         cand.action.Message,
				Message:       cand.diag.Message,
				Applicability: cand.action.Applicability,
				Range:         cand.diag.Range,
			})
			trace.Point(tracer, trace.ScopePhase, "fix", cand.action.Rule+" "+cand.diag.Range.String(), opts.Analysis.ParentSpan)
			applied = true
			break
		}
		if !applied || opts.Mode == ApplyModeOnce {
			break
		}
	}

	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// gatherCandidates analyzes the tree and returns the actions the mode
// allows in emission order. ApplyModeOnce moves safe fixes to the front.
func gatherCandidates(parsed parser.Result, reg *analyzer.Registry, opts ApplyOptions, failed map[string]bool) []candidate {
	cands := make([]candidate, 0)
	analyzer.Analyze(parsed.Root, reg, opts.Analysis, func(s analyzer.Signal) analyzer.ControlFlow {
		d, ok := s.Diagnostic()
		if !ok {
			return analyzer.Continue
		}
		for _, a := range s.Actions() {
			c := candidate{diag: d, action: a}
			if !opts.Mode.allows(a.Applicability) || failed[c.key()] {
				continue
			}
			cands = append(cands, c)
		}
		return analyzer.Continue
	})
	if opts.Mode == ApplyModeOnce {
		slices.SortStableFunc(cands, func(a, b candidate) int {
			return int(a.action.Applicability) - int(b.action.Applicability)
		})
	}
	return cands
}

type committed struct {
	text   string
	parsed parser.Result
}

// commitCandidate applies the action and verifies the output. A non-empty
// reason means the action was rejected.
func commitCandidate(c candidate) (committed, string) {
	root, err := c.action.Mutation.Commit()
	if err != nil {
		return committed{}, fmt.Sprintf("commit failed: %v", err)
	}
	text := root.Text()
	if text == c.action.Mutation.Root().Text() {
		return committed{}, "fix changes nothing"
	}
	parsed := parser.ParseText(text)
	if parsed.HasErrors() {
		return committed{}, "fix produces syntax errors"
	}
	return committed{text: text, parsed: parsed}, ""
}
