package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestLevelFiltersScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelFile, ScopeFile, true},
		{LevelFile, ScopePhase, false},
		{LevelPhase, ScopePhase, true},
		{LevelPhase, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, c := range cases {
		if got := c.level.ShouldEmit(c.scope); got != c.want {
			t.Fatalf("%s.ShouldEmit(%s) = %v, want %v", c.level, c.scope, got, c.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "file", "phase", "DEBUG"} {
		if _, err := ParseLevel(s); err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestStreamTracerSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	run := Begin(tr, ScopeDriver, "check", 0)
	file := Begin(tr, ScopeFile, "a.js", run.ID())
	Point(tr, ScopeNode, "IfStatement", "", file.ID())
	file.WithExtra("diagnostics", "2").End("")
	run.End("done")

	out := buf.String()
	if strings.Contains(out, "IfStatement") {
		t.Fatalf("node point leaked at phase level:\n%s", out)
	}
	for _, want := range []string{"→ check", "→ a.js", "← a.js {diagnostics=2}", "← check (done)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeNode, Name: name})
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d, want 3", len(snap))
	}
	var names []string
	for _, ev := range snap {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ""); got != "cde" {
		t.Fatalf("snapshot order = %q, want cde", got)
	}
	for i := 1; i < len(snap); i++ {
		if snap[i].Seq <= snap[i-1].Seq {
			t.Fatalf("seq not increasing: %d then %d", snap[i-1].Seq, snap[i].Seq)
		}
	}
}

func TestMultiTracerFindsRing(t *testing.T) {
	var buf bytes.Buffer
	m := NewMultiTracer(LevelFile, NewStreamTracer(&buf, LevelFile, FormatNDJSON), NewRingTracer(8, LevelFile))
	Begin(m, ScopeFile, "b.js", 0).End("")

	ring, ok := m.Ring()
	if !ok {
		t.Fatalf("ring not found")
	}
	if n := len(ring.Snapshot()); n != 2 {
		t.Fatalf("ring holds %d events, want 2", n)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 2 {
		t.Fatalf("stream wrote %d lines, want 2", lines)
	}
	if !strings.Contains(buf.String(), `"name":"b.js"`) {
		t.Fatalf("ndjson output missing name: %s", buf.String())
	}
}

func TestContextDefaultsToNop(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("expected Nop tracer")
	}
	r := NewRingTracer(1, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Fatalf("tracer not propagated")
	}
}

func TestWithSpanParentsChildren(t *testing.T) {
	r := NewRingTracer(8, LevelDebug)
	root := Begin(r, ScopeDriver, "check", 0)
	ctx := WithSpan(context.Background(), root)
	if got := CurrentSpan(ctx).SpanID; got != root.ID() {
		t.Fatalf("current span %d, want %d", got, root.ID())
	}
	child := Begin(r, ScopeFile, "a.js", CurrentSpan(ctx).SpanID)
	child.End("")
	root.End("")
	events := r.Snapshot()
	if len(events) != 4 || events[1].ParentID != root.ID() {
		t.Fatalf("unexpected events: %+v", events)
	}

	inert := Begin(Nop, ScopeDriver, "off", 0)
	if WithSpan(ctx, inert) != ctx {
		t.Fatalf("inert span replaced the context value")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatalf("off tracer reports enabled")
	}
}

func TestHeartbeatEmitsUntilStopped(t *testing.T) {
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatalf("heartbeat on a disabled tracer")
	}
	r := NewRingTracer(64, LevelFile)
	h := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	events := r.Snapshot()
	if len(events) == 0 {
		t.Fatalf("no heartbeat within 2s")
	}
	if events[0].Kind != KindHeartbeat || !strings.HasPrefix(events[0].Detail, "#1 after ") {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	n := len(r.Snapshot())
	time.Sleep(5 * time.Millisecond)
	if len(r.Snapshot()) != n {
		t.Fatalf("heartbeat kept emitting after Stop")
	}
}

func TestNewBuildsSinksForMode(t *testing.T) {
	var buf bytes.Buffer
	cases := []struct {
		mode     string
		wantRing bool
	}{{"stream", false}, {"ring", true}, {"both", true}}
	for _, tc := range cases {
		mode, err := ParseMode(tc.mode)
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", tc.mode, err)
		}
		if mode.String() != tc.mode {
			t.Fatalf("mode %q prints as %q", tc.mode, mode)
		}
		tr, err := New(Config{Level: LevelFile, Mode: mode, Output: &buf})
		if err != nil {
			t.Fatalf("New(%s): %v", tc.mode, err)
		}
		_, isRing := tr.(*RingTracer)
		if m, ok := tr.(*MultiTracer); ok {
			_, isRing = m.Ring()
		}
		if isRing != tc.wantRing {
			t.Fatalf("mode %s: ring present = %v", tc.mode, isRing)
		}
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Fatalf("expected an error for an unknown mode")
	}
	if _, err := New(Config{Level: LevelFile}); err == nil {
		t.Fatalf("expected an error for a zero mode")
	}
}
