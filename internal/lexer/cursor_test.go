package lexer

import (
	"testing"

	"lintel/internal/source"
)

func TestCursorMarkReset(t *testing.T) {
	fs := source.NewFileSet()
	c := NewCursor(fs.Get(fs.AddVirtual("c.js", []byte("abc"))))

	m := c.Mark()
	if c.Bump() != 'a' || !c.Eat('b') || c.Eat('x') {
		t.Fatalf("bump/eat sequence wrong")
	}
	if r := c.RangeFrom(m); r != (source.TextRange{Start: 0, End: 2}) {
		t.Fatalf("range = %v", r)
	}
	if _, _, _, ok := c.Peek3(); ok {
		t.Fatalf("Peek3 past end must fail")
	}
	c.Reset(m)
	if b0, b1, b2, ok := c.Peek3(); !ok || string([]byte{b0, b1, b2}) != "abc" {
		t.Fatalf("Peek3 after reset")
	}
	c.Off = 3
	if !c.EOF() || c.Peek() != 0 || c.Bump() != 0 {
		t.Fatalf("EOF behaviour")
	}
}
