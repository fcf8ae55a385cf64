package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	i := tm.Begin("parse")
	tm.End(i, "12 nodes")
	j := tm.Begin("analyze")
	tm.End(j, "")
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(r.Phases))
	}
	if r.Phases[0].Name != "parse" || r.Phases[0].Note != "12 nodes" || r.Phases[0].Count != 1 {
		t.Fatalf("unexpected first phase: %+v", r.Phases[0])
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Fatalf("total %.3f below phase %.3f", r.TotalMS, r.Phases[0].DurationMS)
	}
	if s := tm.Summary(); !strings.Contains(s, "// 12 nodes") || !strings.Contains(s, "total") {
		t.Fatalf("summary missing parts:\n%s", s)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	if r := tm.Report(); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Fatalf("nil timer reported %+v", r)
	}
}

func TestMerge(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "parse", DurationMS: 1}, {Name: "analyze", DurationMS: 2}}}
	b := Report{TotalMS: 4, Phases: []PhaseReport{{Name: "load", DurationMS: 1}, {Name: "parse", DurationMS: 3, Count: 2}}}

	m := Merge(a, b)
	if m.TotalMS != 7 {
		t.Fatalf("total = %v, want 7", m.TotalMS)
	}
	want := []PhaseReport{
		{Name: "parse", DurationMS: 4, Count: 3},
		{Name: "analyze", DurationMS: 2, Count: 1},
		{Name: "load", DurationMS: 1, Count: 1},
	}
	if len(m.Phases) != len(want) {
		t.Fatalf("phases = %+v", m.Phases)
	}
	for i := range want {
		if m.Phases[i] != want[i] {
			t.Fatalf("phase %d = %+v, want %+v", i, m.Phases[i], want[i])
		}
	}
	if !strings.Contains(m.Summary(), "x3") {
		t.Fatalf("summary should show counts:\n%s", m.Summary())
	}
}
