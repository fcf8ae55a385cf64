package source

import "testing"

func TestInternerDedup(t *testing.T) {
	in := NewInterner()
	a := in.Intern("foo")
	b := in.Intern("bar")
	if a == b || a == NoStringID {
		t.Fatalf("ids: %d %d", a, b)
	}
	if again := in.Intern("foo"); again != a {
		t.Fatalf("Intern(foo) = %d, want %d", again, a)
	}
	if in.Intern("") != NoStringID {
		t.Fatalf("empty string must map to NoStringID")
	}
	if s, ok := in.Lookup(b); !ok || s != "bar" {
		t.Fatalf("Lookup = %q, %v", s, ok)
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Fatalf("unknown id must miss")
	}
	if _, ok := in.Find("baz"); ok {
		t.Fatalf("Find must not insert")
	}
	if in.Len() != 3 {
		t.Fatalf("Len = %d", in.Len())
	}
}

func TestInternerCopiesInput(t *testing.T) {
	in := NewInterner()
	buf := []byte("name")
	id := in.Intern(string(buf))
	buf[0] = 'g'
	if got := in.MustLookup(id); got != "name" {
		t.Fatalf("interned string aliased caller buffer: %q", got)
	}
}
