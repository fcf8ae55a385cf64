package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq orders events across every sink of the process.
func NextSeq() uint64 { return seqCounter.Add(1) }

func nextSpanID() uint64 { return spanCounter.Add(1) }

// goroutineID reads the id from the "goroutine N [...]" stack header.
func goroutineID() uint64 {
	var buf [64]byte
	header := bytes.TrimPrefix(buf[:runtime.Stack(buf[:], false)], []byte("goroutine "))
	n := bytes.IndexByte(header, ' ')
	if n <= 0 {
		return 0
	}
	gid, _ := strconv.ParseUint(string(header[:n]), 10, 64)
	return gid
}

// emits reports whether t records events of scope.
func emits(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

// Span is a begin/end pair. A span whose scope is filtered out is inert:
// it still measures time but emits nothing and has ID 0.
type Span struct {
	tracer  Tracer
	head    Event
	started time.Time
}

// Begin opens a span under parent (0 for a root) and emits its begin event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	s := &Span{started: time.Now()}
	if !emits(t, scope) {
		return s
	}
	s.tracer = t
	s.head = Event{
		Scope:    scope,
		SpanID:   nextSpanID(),
		ParentID: parent,
		GID:      goroutineID(),
		Name:     name,
	}
	begin := s.head
	begin.Time, begin.Kind = s.started, KindSpanBegin
	t.Emit(&begin)
	return s
}

// End emits the end event carrying detail and any extras, and returns the
// elapsed time.
func (s *Span) End(detail string) time.Duration {
	if s == nil {
		return 0
	}
	elapsed := time.Since(s.started)
	if s.tracer != nil && s.tracer.Enabled() {
		end := s.head
		end.Time, end.Kind, end.Detail = time.Now(), KindSpanEnd, detail
		s.tracer.Emit(&end)
	}
	return elapsed
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.head.Extra == nil {
		s.head.Extra = make(map[string]string, 2)
	}
	s.head.Extra[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.head.SpanID
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if !emits(t, scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		GID:      goroutineID(),
		Name:     name,
		Detail:   detail,
	})
}
