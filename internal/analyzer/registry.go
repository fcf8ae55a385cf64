package analyzer

import (
	"fmt"
	"iter"

	"lintel/internal/diag"
	"lintel/internal/syntax"
)

// dispatch runs one rule on a node that is known to have a matching kind.
type dispatch func(n syntax.SyntaxNode, env *runEnv) ControlFlow

type entry struct {
	meta  Metadata
	phase Phase
	kinds syntax.KindSet
	run   dispatch
}

// Registry maps (phase, kind) to the rules interested in it. Rules matching
// the same node run in registration order.
type Registry struct {
	entries []entry
	byKey   map[RuleKey]int
	byKind  [phaseCount]map[syntax.Kind][]int
}

func NewRegistry() *Registry {
	r := &Registry{byKey: make(map[RuleKey]int)}
	for i := range r.byKind {
		r.byKind[i] = make(map[syntax.Kind][]int)
	}
	return r
}

// Register adds rule to r. Registering the same rule name twice is an error.
func Register[N, S any](r *Registry, rule Rule[N, S]) error {
	meta := rule.Metadata()
	key := meta.Key()
	if _, dup := r.byKey[key]; dup {
		return fmt.Errorf("analyzer: rule %s registered twice", key)
	}
	q := rule.Query()
	if q.cast == nil || q.kinds.IsEmpty() {
		return fmt.Errorf("analyzer: rule %s has an empty query", key)
	}

	idx := len(r.entries)
	r.entries = append(r.entries, entry{
		meta:  meta,
		phase: q.phase,
		kinds: q.kinds,
		run:   ruleDispatch(rule, q, meta),
	})
	r.byKey[key] = idx
	for k := range q.kinds.All() {
		r.byKind[q.phase][k] = append(r.byKind[q.phase][k], idx)
	}
	return nil
}

// MustRegister is Register for static rule tables.
func MustRegister[N, S any](r *Registry, rule Rule[N, S]) {
	if err := Register(r, rule); err != nil {
		panic(err)
	}
}

func ruleDispatch[N, S any](rule Rule[N, S], q Query[N], meta Metadata) dispatch {
	key := meta.Key()
	return func(n syntax.SyntaxNode, env *runEnv) ControlFlow {
		view, ok := q.cast(n)
		if !ok {
			return Continue
		}
		ctx := &RuleContext[N]{
			query: view,
			node:  n,
			root:  env.root,
			model: env.model,
			file:  env.file,
			key:   key,
		}
		for _, state := range rule.Run(ctx) {
			if env.suppressed(key, n.TextTrimmedRange()) {
				continue
			}
			sig := &ruleSignal[N, S]{
				rule:     rule,
				ctx:      ctx,
				state:    state,
				severity: env.severity(key, meta.Severity),
			}
			if env.emit(sig) == Break {
				return Break
			}
		}
		return Continue
	}
}

func (r *Registry) Len() int { return len(r.entries) }

// Rules yields rule metadata in registration order.
func (r *Registry) Rules() iter.Seq[Metadata] {
	return func(yield func(Metadata) bool) {
		for _, e := range r.entries {
			if !yield(e.meta) {
				return
			}
		}
	}
}

func (r *Registry) Lookup(key RuleKey) (Metadata, bool) {
	idx, ok := r.byKey[key]
	if !ok {
		return Metadata{}, false
	}
	return r.entries[idx].meta, true
}

// HasGroup reports whether any rule belongs to group.
func (r *Registry) HasGroup(group string) bool {
	for _, e := range r.entries {
		if e.meta.Group == group {
			return true
		}
	}
	return false
}

// Phase reports the phase a registered rule runs in.
func (r *Registry) Phase(key RuleKey) (Phase, bool) {
	idx, ok := r.byKey[key]
	if !ok {
		return 0, false
	}
	return r.entries[idx].phase, true
}

func (r *Registry) handlers(phase Phase, kind syntax.Kind) []int {
	return r.byKind[phase][kind]
}

// ruleSignal defers the Diagnostic and Action callbacks until the consumer
// asks for them.
type ruleSignal[N, S any] struct {
	rule     Rule[N, S]
	ctx      *RuleContext[N]
	state    S
	severity diag.Severity
}

func (s *ruleSignal[N, S]) Rule() RuleKey { return s.ctx.key }

func (s *ruleSignal[N, S]) Diagnostic() (RuleDiagnostic, bool) {
	d, ok := s.rule.Diagnostic(s.ctx, s.state)
	if !ok {
		return RuleDiagnostic{}, false
	}
	d.Category = s.ctx.key.Category()
	if !d.explicit {
		d.Severity = s.severity
	}
	return d, true
}

func (s *ruleSignal[N, S]) Actions() []RuleAction {
	a, ok := s.rule.Action(s.ctx, s.state)
	if !ok || a.Mutation == nil {
		return nil
	}
	a.Rule = s.ctx.key.String()
	return []RuleAction{a}
}
