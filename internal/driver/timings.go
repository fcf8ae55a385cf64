package driver

import (
	"lintel/internal/observ"
	"lintel/internal/trace"
)

// phases times and traces the stages of one file. The timer is nil unless
// timings were requested; the spans are inert unless tracing is on.
type phases struct {
	timer  *observ.Timer
	tracer trace.Tracer
	parent uint64
}

type phaseHandle struct {
	idx   int
	span  *trace.Span
	owner *phases
}

func newPhases(timings bool, tracer trace.Tracer, parent uint64) *phases {
	p := &phases{tracer: tracer, parent: parent}
	if timings {
		p.timer = observ.NewTimer()
	}
	return p
}

func (p *phases) begin(name string) phaseHandle {
	return phaseHandle{
		idx:   p.timer.Begin(name),
		span:  trace.Begin(p.tracer, trace.ScopePhase, name, p.parent),
		owner: p,
	}
}

func (h phaseHandle) end(note string) {
	h.span.End(note)
	h.owner.timer.End(h.idx, note)
}

func (p *phases) report() observ.Report {
	return p.timer.Report()
}
