package analyzer

import (
	"fmt"
	"strconv"

	"lintel/internal/diag"
	"lintel/internal/semantic"
	"lintel/internal/source"
	"lintel/internal/syntax"
	"lintel/internal/trace"
)

type Options struct {
	Filter AnalysisFilter
	File   source.FileID
	// Severity overrides the default severity of individual rules.
	Severity map[RuleKey]diag.Severity
	Tracer   trace.Tracer
	// ParentSpan nests the engine's phase spans under a caller span.
	ParentSpan uint64
}

type engineState uint8

const (
	stateSetup engineState = iota
	stateVisiting
	stateDone
)

func (s engineState) String() string {
	switch s {
	case stateSetup:
		return "setup"
	case stateVisiting:
		return "visiting"
	default:
		return "done"
	}
}

// Engine runs the rules of a registry over one tree. An Engine is not safe
// for concurrent use; the driver creates one per file.
type Engine struct {
	reg     *Registry
	opts    Options
	enabled []bool
	state   engineState
	phase   Phase
	model   *semantic.Model
	signals int
}

func New(reg *Registry, opts Options) *Engine {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	e := &Engine{reg: reg, opts: opts, enabled: make([]bool, len(reg.entries))}
	for i, ent := range reg.entries {
		e.enabled[i] = opts.Filter.Allows(ent.meta)
	}
	return e
}

// Analyze is a shorthand for New(reg, opts).Analyze(root, emit).
func Analyze(root syntax.SyntaxNode, reg *Registry, opts Options, emit func(Signal) ControlFlow) bool {
	return New(reg, opts).Analyze(root, emit)
}

// Model returns the semantic model built by the last Analyze. It is nil if
// the walk was broken off during the syntax phase.
func (e *Engine) Model() *semantic.Model { return e.model }

// Signals returns how many signals were emitted by the last Analyze.
func (e *Engine) Signals() int { return e.signals }

// Analyze walks root once per phase and reports whether emit asked to break.
// Analyze may be called again; each call starts from a clean state.
func (e *Engine) Analyze(root syntax.SyntaxNode, emit func(Signal) ControlFlow) bool {
	e.state, e.model, e.signals = stateSetup, nil, 0
	counted := func(s Signal) ControlFlow {
		e.signals++
		return emit(s)
	}

	sups, malformed := collectSuppressions(root, e.reg)
	env := &runEnv{
		root:       root,
		file:       e.opts.File,
		emit:       counted,
		suppressed: sups.suppressed,
		severity:   e.severityOf,
	}
	for _, d := range malformed {
		if !e.opts.Filter.inRange(d.Range) {
			continue
		}
		if counted(diagnosticSignal{key: suppressionParseKey, d: d}) == Break {
			e.state = stateDone
			return true
		}
	}

	e.state = stateVisiting
	model := newModelVisitor(root)
	phases := [phaseCount][]visitor{
		PhaseSyntax:   {model, e.ruleVisitor(PhaseSyntax)},
		PhaseSemantic: {e.ruleVisitor(PhaseSemantic)},
	}
	for p, visitors := range phases {
		e.phase = Phase(p)
		if e.phase == PhaseSemantic {
			e.model = model.finish()
			env.model = e.model
			if !e.anyEnabled(PhaseSemantic) {
				continue
			}
		}
		if e.walk(root, visitors, env) == Break {
			e.state = stateDone
			return true
		}
	}

	if e.opts.Filter.ReportUnusedSuppressions {
		for _, d := range sups.unused(e.opts.Filter, e.targetActive) {
			if counted(diagnosticSignal{key: suppressionUnusedKey, d: d}) == Break {
				e.state = stateDone
				return true
			}
		}
	}
	e.state = stateDone
	return false
}

func (e *Engine) walk(root syntax.SyntaxNode, visitors []visitor, env *runEnv) ControlFlow {
	span := trace.Begin(e.opts.Tracer, trace.ScopePhase, e.phase.String(), e.opts.ParentSpan)
	before := e.signals
	nodes := 0
	debug := e.opts.Tracer.Level() >= trace.LevelDebug

	flow := Continue
	for ev := range root.Walk() {
		if ev.Kind == syntax.Enter {
			nodes++
			if debug {
				trace.Point(e.opts.Tracer, trace.ScopeNode, ev.Node.Kind().String(), ev.Node.TextTrimmedRange().String(), span.ID())
			}
		}
		for _, v := range visitors {
			if v.visit(ev, env) == Break {
				flow = Break
				break
			}
		}
		if flow == Break {
			break
		}
	}

	span.WithExtra("nodes", strconv.Itoa(nodes)).
		WithExtra("signals", strconv.Itoa(e.signals-before))
	detail := ""
	if flow == Break {
		detail = "break"
	}
	span.End(detail)
	return flow
}

func (e *Engine) anyEnabled(p Phase) bool {
	for i, ent := range e.reg.entries {
		if e.enabled[i] && ent.phase == p {
			return true
		}
	}
	return false
}

func (e *Engine) targetActive(t *suppressionTarget) bool {
	for i, ent := range e.reg.entries {
		if e.enabled[i] && t.matches(ent.meta.Key()) {
			return true
		}
	}
	return false
}

func (e *Engine) severityOf(key RuleKey, def diag.Severity) diag.Severity {
	if sev, ok := e.opts.Severity[key]; ok {
		return sev
	}
	return def
}

func (e *Engine) String() string {
	return fmt.Sprintf("analyzer(%s, %s)", e.state, e.phase)
}

// runEnv is shared by every dispatch of one Analyze call.
type runEnv struct {
	root       syntax.SyntaxNode
	model      *semantic.Model
	file       source.FileID
	emit       func(Signal) ControlFlow
	suppressed func(RuleKey, source.TextRange) bool
	severity   func(RuleKey, diag.Severity) diag.Severity
}
