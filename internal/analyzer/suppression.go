package analyzer

import (
	"strings"

	"lintel/internal/diag"
	"lintel/internal/source"
	"lintel/internal/syntax"
)

const suppressionKeyword = "lintel-ignore"

var (
	suppressionParseKey  = RuleKey{Group: "suppressions", Name: "parse"}
	suppressionUnusedKey = RuleKey{Group: "suppressions", Name: "unused"}
)

// suppressionTarget is one entry of a suppression comment: "lint" (all),
// "lint/group" or "lint/group/rule".
type suppressionTarget struct {
	all    bool
	filter RuleFilter
	text   string
	used   bool
}

func (t *suppressionTarget) matches(k RuleKey) bool {
	return t.all || t.filter.Matches(k)
}

type suppression struct {
	comment source.TextRange
	rng     source.TextRange
	targets []*suppressionTarget
}

type suppressions struct {
	list []*suppression
}

// collectSuppressions scans the leading trivia of every token. Malformed
// comments are returned as diagnostics.
func collectSuppressions(root syntax.SyntaxNode, reg *Registry) (*suppressions, []RuleDiagnostic) {
	s := &suppressions{}
	var bad []RuleDiagnostic
	for tok := range root.DescendantTokens() {
		lead := tok.LeadingTrivia()
		if !lead.HasComments() {
			continue
		}
		for piece := range lead.Pieces() {
			if !piece.Kind.IsComment() {
				continue
			}
			body, ok := suppressionBody(piece.Text, piece.Kind)
			if !ok {
				continue
			}
			targets, msg := parseSuppression(body, reg)
			if msg != "" {
				bad = append(bad, RuleDiagnostic{
					Category: diag.CategorySuppressionParse,
					Severity: diag.SevWarning,
					Message:  msg,
					Range:    piece.Range,
					explicit: true,
				})
				continue
			}
			s.list = append(s.list, &suppression{
				comment: piece.Range,
				rng:     suppressedRange(tok),
				targets: targets,
			})
		}
	}
	return s, bad
}

// suppressionBody strips comment markers and returns the text after the
// keyword. ok is false for ordinary comments.
func suppressionBody(text string, kind syntax.TriviaPieceKind) (string, bool) {
	if kind == syntax.MultiLineComment {
		text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	} else {
		text = strings.TrimPrefix(text, "//")
	}
	text = strings.TrimSpace(text)
	rest, ok := strings.CutPrefix(text, suppressionKeyword)
	if !ok {
		return "", false
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != ':' {
		// lintel-ignored, lintel-ignore-next and the like are not ours
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func parseSuppression(body string, reg *Registry) ([]*suppressionTarget, string) {
	names, reason, ok := strings.Cut(body, ":")
	fields := strings.Fields(names)
	if len(fields) == 0 {
		return nil, "suppression comment names no rule"
	}
	if !ok || strings.TrimSpace(reason) == "" {
		return nil, "suppression comment is missing an explanation after ':'"
	}
	targets := make([]*suppressionTarget, 0, len(fields))
	for _, f := range fields {
		if f == "lint" {
			targets = append(targets, &suppressionTarget{all: true, text: f})
			continue
		}
		if !strings.HasPrefix(f, "lint/") {
			return nil, "unknown suppression category " + quote(f) + ", expected lint/<group>/<rule>"
		}
		filter, err := ParseRuleFilter(f)
		if err != nil {
			return nil, err.Error()
		}
		known := reg.HasGroup(filter.Group)
		if filter.Rule != "" {
			_, known = reg.Lookup(RuleKey{Group: filter.Group, Name: filter.Rule})
		}
		if !known {
			return nil, "unknown lint rule " + quote(f)
		}
		targets = append(targets, &suppressionTarget{filter: filter, text: f})
	}
	return targets, ""
}

func quote(s string) string { return "'" + s + "'" }

// suppressedRange is the range of the outermost node starting at tok,
// stopping below lists and the module.
func suppressedRange(tok syntax.SyntaxToken) source.TextRange {
	start := tok.TextTrimmedRange().Start
	n := tok.Parent()
	for {
		p, ok := n.Parent()
		if !ok || p.Kind() == syntax.Module || p.Kind().IsList() || p.TextTrimmedRange().Start != start {
			break
		}
		n = p
	}
	return n.TextTrimmedRange()
}

// suppressed reports whether key is suppressed at r and marks the matching
// targets used.
func (s *suppressions) suppressed(key RuleKey, r source.TextRange) bool {
	hit := false
	for _, sup := range s.list {
		if !sup.rng.ContainsRange(r) {
			continue
		}
		for _, t := range sup.targets {
			if t.matches(key) {
				t.used, hit = true, true
			}
		}
	}
	return hit
}

// unused returns a warning for each target that suppressed nothing. Targets
// naming only rules that did not run are not reported.
func (s *suppressions) unused(filter AnalysisFilter, active func(*suppressionTarget) bool) []RuleDiagnostic {
	var out []RuleDiagnostic
	for _, sup := range s.list {
		if !filter.inRange(sup.comment) {
			continue
		}
		for _, t := range sup.targets {
			if t.used || !active(t) {
				continue
			}
			out = append(out, RuleDiagnostic{
				Category: diag.CategorySuppressionUnused,
				Severity: diag.SevWarning,
				Message:  "suppression " + quote(t.text) + " has no effect",
				Range:    sup.comment,
				explicit: true,
			})
		}
	}
	return out
}
