package analyzer

import (
	"lintel/internal/semantic"
	"lintel/internal/syntax"
)

// visitor receives every walk event of a phase.
type visitor interface {
	visit(ev syntax.WalkEvent, env *runEnv) ControlFlow
}

// ruleVisitor dispatches registered rules. Subtrees outside the filter range
// and bogus subtrees are skipped until their Leave event.
type ruleVisitor struct {
	e     *Engine
	phase Phase
	skip  syntax.SyntaxNode
}

func (e *Engine) ruleVisitor(p Phase) *ruleVisitor {
	return &ruleVisitor{e: e, phase: p}
}

func (v *ruleVisitor) visit(ev syntax.WalkEvent, env *runEnv) ControlFlow {
	n := ev.Node
	if !v.skip.IsZero() {
		if ev.Kind == syntax.Leave && n.Equal(v.skip) {
			v.skip = syntax.SyntaxNode{}
		}
		return Continue
	}
	if ev.Kind == syntax.Leave {
		return Continue
	}
	if n.Kind().IsBogus() || !v.e.opts.Filter.inRange(n.TextTrimmedRange()) {
		v.skip = n
		return Continue
	}
	for _, idx := range v.e.reg.handlers(v.phase, n.Kind()) {
		if !v.e.enabled[idx] {
			continue
		}
		if v.e.reg.entries[idx].run(n, env) == Break {
			return Break
		}
	}
	return Continue
}

// modelVisitor builds the semantic model during the syntax phase. It sees
// every node regardless of the range filter.
type modelVisitor struct {
	ex *semantic.Extractor
	b  *semantic.Builder
}

func newModelVisitor(root syntax.SyntaxNode) *modelVisitor {
	return &modelVisitor{ex: semantic.NewExtractor(), b: semantic.NewBuilder(root)}
}

func (v *modelVisitor) visit(ev syntax.WalkEvent, _ *runEnv) ControlFlow {
	switch ev.Kind {
	case syntax.Enter:
		v.b.Visit(ev.Node)
		v.ex.Enter(ev.Node)
	case syntax.Leave:
		v.ex.Leave(ev.Node)
	}
	for e, ok := v.ex.Pop(); ok; e, ok = v.ex.Pop() {
		v.b.Push(e)
	}
	return Continue
}

func (v *modelVisitor) finish() *semantic.Model {
	return v.b.Build()
}
