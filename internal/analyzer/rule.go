package analyzer

import (
	"fmt"
	"strings"

	"lintel/internal/diag"
	"lintel/internal/mutation"
	"lintel/internal/semantic"
	"lintel/internal/source"
	"lintel/internal/syntax"
)

type Phase uint8

const (
	PhaseSyntax Phase = iota
	PhaseSemantic
	phaseCount
)

func (p Phase) String() string {
	if p == PhaseSemantic {
		return "semantic"
	}
	return "syntax"
}

// RuleKey names a rule as group/name, e.g. style/noNegationElse.
type RuleKey struct {
	Group string
	Name  string
}

func (k RuleKey) String() string { return k.Group + "/" + k.Name }

// Category is the diagnostic category: lint/group/name.
func (k RuleKey) Category() string { return "lint/" + k.String() }

// ParseRuleKey accepts "group/name" with an optional "lint/" prefix.
func ParseRuleKey(s string) (RuleKey, error) {
	s = strings.TrimPrefix(s, "lint/")
	group, name, ok := strings.Cut(s, "/")
	if !ok || group == "" || name == "" || strings.Contains(name, "/") {
		return RuleKey{}, fmt.Errorf("invalid rule name %q (expected group/name)", s)
	}
	return RuleKey{Group: group, Name: name}, nil
}

// Metadata describes a rule statically.
type Metadata struct {
	Group       string
	Name        string
	Category    RuleCategories
	Docs        string
	Recommended bool
	Severity    diag.Severity

	// Fix is the applicability of the rule's actions; HasFix is false for
	// rules that only report.
	Fix    diag.Applicability
	HasFix bool
}

func (m Metadata) Key() RuleKey { return RuleKey{Group: m.Group, Name: m.Name} }

// Query selects the nodes a rule runs on: a set of kinds, a cast to the
// rule's typed view, and the phase it runs in.
type Query[N any] struct {
	phase Phase
	kinds syntax.KindSet
	cast  func(syntax.SyntaxNode) (N, bool)
}

// Ast queries nodes in the syntax phase.
func Ast[N any](kinds syntax.KindSet, cast func(syntax.SyntaxNode) (N, bool)) Query[N] {
	return Query[N]{phase: PhaseSyntax, kinds: kinds, cast: cast}
}

// Semantic queries nodes in the semantic phase, where RuleContext.Model is
// available.
func Semantic[N any](kinds syntax.KindSet, cast func(syntax.SyntaxNode) (N, bool)) Query[N] {
	return Query[N]{phase: PhaseSemantic, kinds: kinds, cast: cast}
}

func (q Query[N]) Phase() Phase          { return q.phase }
func (q Query[N]) Kinds() syntax.KindSet { return q.kinds }

// Rule is implemented by every lint rule. Run returns one state per finding;
// Diagnostic and Action turn a state into output. None of them may panic on
// a malformed tree: a missing slot means the rule does not apply.
type Rule[N, S any] interface {
	Metadata() Metadata
	Query() Query[N]
	Run(ctx *RuleContext[N]) []S
	Diagnostic(ctx *RuleContext[N], state S) (RuleDiagnostic, bool)
	Action(ctx *RuleContext[N], state S) (RuleAction, bool)
}

// NoAction can be embedded by rules without a fix.
type NoAction[N, S any] struct{}

func (NoAction[N, S]) Action(*RuleContext[N], S) (RuleAction, bool) { return RuleAction{}, false }

// RuleContext is handed to every rule callback.
type RuleContext[N any] struct {
	query N
	node  syntax.SyntaxNode
	root  syntax.SyntaxNode
	model *semantic.Model
	file  source.FileID
	key   RuleKey
}

// Query returns the matched node as the rule's typed view.
func (c *RuleContext[N]) Query() N                { return c.query }
func (c *RuleContext[N]) Node() syntax.SyntaxNode { return c.node }
func (c *RuleContext[N]) Root() syntax.SyntaxNode { return c.root }
func (c *RuleContext[N]) File() source.FileID     { return c.file }
func (c *RuleContext[N]) RuleKey() RuleKey        { return c.key }

// Mutation starts an edit of the snapshot the rule runs on.
func (c *RuleContext[N]) Mutation() *mutation.BatchMutation { return mutation.Begin(c.root) }

// Model is nil in the syntax phase.
func (c *RuleContext[N]) Model() *semantic.Model { return c.model }

// NewRuleContext builds a context outside the engine, for rule tests.
func NewRuleContext[N any](query N, node syntax.SyntaxNode, model *semantic.Model) *RuleContext[N] {
	return &RuleContext[N]{query: query, node: node, root: node.Root(), model: model}
}
