package syntax

import (
	"slices"
	"testing"
)

func TestKindSet(t *testing.T) {
	s := KindSetOf(IfStatement, Ident, BogusExpression)
	if !s.Contains(Ident) || s.Contains(Module) {
		t.Fatalf("membership wrong")
	}
	got := slices.Collect(s.All())
	want := []Kind{Ident, IfStatement, BogusExpression}
	if !slices.Equal(got, want) {
		t.Fatalf("All() = %v, want %v", got, want)
	}
	u := s.Union(KindSetOf(Module))
	if !u.Contains(Module) || s.Contains(Module) {
		t.Fatalf("union must not alias")
	}
	if !(KindSet{}).IsEmpty() || u.IsEmpty() {
		t.Fatalf("IsEmpty wrong")
	}
}
