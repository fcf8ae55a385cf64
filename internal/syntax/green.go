package syntax

import (
	"encoding/binary"
	"slices"
	"strings"

	"github.com/zeebo/xxh3"

	"lintel/internal/source"
)

// GreenToken is an immutable leaf. Its text covers leading trivia, the
// token itself and trailing trivia, in that order.
type GreenToken struct {
	kind     Kind
	text     string
	leading  []TriviaPiece
	trailing []TriviaPiece
	hash     uint64
}

// NewGreenToken builds an uncached token. The trivia lengths must fit in text.
func NewGreenToken(kind Kind, text string, leading, trailing []TriviaPiece) *GreenToken {
	if triviaLen(leading)+triviaLen(trailing) > source.SizeOf(len(text)) {
		panic("syntax: trivia longer than token text")
	}
	return &GreenToken{
		kind:     kind,
		text:     text,
		leading:  leading,
		trailing: trailing,
		hash:     hashToken(kind, text, leading, trailing),
	}
}

func (t *GreenToken) Kind() Kind                  { return t.kind }
func (t *GreenToken) Text() string                { return t.text }
func (t *GreenToken) TextLen() source.TextSize    { return source.SizeOf(len(t.text)) }
func (t *GreenToken) Leading() []TriviaPiece      { return t.leading }
func (t *GreenToken) Trailing() []TriviaPiece     { return t.trailing }
func (t *GreenToken) LeadingLen() source.TextSize { return triviaLen(t.leading) }
func (t *GreenToken) TrailingLen() source.TextSize {
	return triviaLen(t.trailing)
}
func (t *GreenToken) Hash() uint64 { return t.hash }

// TrimmedRange is the token text without trivia, relative to the token start.
func (t *GreenToken) TrimmedRange() source.TextRange {
	return source.TextRange{Start: t.LeadingLen(), End: t.TextLen() - t.TrailingLen()}
}

func (t *GreenToken) TextTrimmed() string {
	return t.TrimmedRange().Slice(t.text)
}

func (t *GreenToken) LeadingText() string {
	return t.text[:t.LeadingLen()]
}

func (t *GreenToken) TrailingText() string {
	return t.text[t.TextLen()-t.TrailingLen():]
}

func (t *GreenToken) equal(o *GreenToken) bool {
	return t.kind == o.kind && t.text == o.text &&
		slices.Equal(t.leading, o.leading) && slices.Equal(t.trailing, o.trailing)
}

// GreenElement is a node, a token, or an empty (missing) slot.
type GreenElement struct {
	node  *GreenNode
	token *GreenToken
}

func NodeElement(n *GreenNode) GreenElement   { return GreenElement{node: n} }
func TokenElement(t *GreenToken) GreenElement { return GreenElement{token: t} }

func (e GreenElement) IsEmpty() bool      { return e.node == nil && e.token == nil }
func (e GreenElement) Node() *GreenNode   { return e.node }
func (e GreenElement) Token() *GreenToken { return e.token }

func (e GreenElement) Kind() Kind {
	switch {
	case e.node != nil:
		return e.node.kind
	case e.token != nil:
		return e.token.kind
	default:
		return Tombstone
	}
}

func (e GreenElement) TextLen() source.TextSize {
	switch {
	case e.node != nil:
		return e.node.textLen
	case e.token != nil:
		return e.token.TextLen()
	default:
		return 0
	}
}

func (e GreenElement) hash() uint64 {
	switch {
	case e.node != nil:
		return e.node.hash
	case e.token != nil:
		return e.token.hash
	default:
		return 0
	}
}

// same reports pointer identity.
func (e GreenElement) same(o GreenElement) bool {
	return e.node == o.node && e.token == o.token
}

type greenSlot struct {
	elem GreenElement
	rel  source.TextSize // offset from the start of the parent
}

// GreenNode is an immutable interior node.
type GreenNode struct {
	kind    Kind
	slots   []greenSlot
	textLen source.TextSize
	hash    uint64
}

// NewGreenNode builds an uncached node over the given slots.
func NewGreenNode(kind Kind, elems []GreenElement) *GreenNode {
	n := &GreenNode{kind: kind, slots: make([]greenSlot, len(elems))}
	var rel source.TextSize
	for i, e := range elems {
		n.slots[i] = greenSlot{elem: e, rel: rel}
		rel += e.TextLen()
	}
	n.textLen = rel
	n.hash = hashNode(kind, elems)
	return n
}

func (n *GreenNode) Kind() Kind                       { return n.kind }
func (n *GreenNode) TextLen() source.TextSize         { return n.textLen }
func (n *GreenNode) SlotCount() int                   { return len(n.slots) }
func (n *GreenNode) Hash() uint64                     { return n.hash }
func (n *GreenNode) Slot(i int) GreenElement          { return n.slots[i].elem }
func (n *GreenNode) SlotOffset(i int) source.TextSize { return n.slots[i].rel }

// Elements returns a copy of the slot list.
func (n *GreenNode) Elements() []GreenElement {
	out := make([]GreenElement, len(n.slots))
	for i, s := range n.slots {
		out[i] = s.elem
	}
	return out
}

// Text concatenates the full text of every token below n.
func (n *GreenNode) Text() string {
	var b strings.Builder
	b.Grow(int(n.textLen))
	n.writeText(&b)
	return b.String()
}

func (n *GreenNode) writeText(b *strings.Builder) {
	for _, s := range n.slots {
		switch {
		case s.elem.node != nil:
			s.elem.node.writeText(b)
		case s.elem.token != nil:
			b.WriteString(s.elem.token.text)
		}
	}
}

// WithSlot returns a copy of n with slot i replaced. Other slots keep their
// green children by pointer.
func (n *GreenNode) WithSlot(i int, e GreenElement) *GreenNode {
	elems := n.Elements()
	elems[i] = e
	return NewGreenNode(n.kind, elems)
}

// Equal reports structural equality, ignoring allocation identity.
func (n *GreenNode) Equal(o *GreenNode) bool {
	if n == o {
		return true
	}
	if n == nil || o == nil || n.kind != o.kind || n.textLen != o.textLen ||
		n.hash != o.hash || len(n.slots) != len(o.slots) {
		return false
	}
	for i := range n.slots {
		a, b := n.slots[i].elem, o.slots[i].elem
		switch {
		case a.IsEmpty() || b.IsEmpty():
			if !a.IsEmpty() || !b.IsEmpty() {
				return false
			}
		case a.node != nil:
			if b.node == nil || !a.node.Equal(b.node) {
				return false
			}
		default:
			if b.token == nil || !a.token.equal(b.token) {
				return false
			}
		}
	}
	return true
}

const (
	tagEmpty byte = iota
	tagToken
	tagNode
)

func hashToken(kind Kind, text string, leading, trailing []TriviaPiece) uint64 {
	h := xxh3.New()
	var buf [8]byte
	buf[0] = tagToken
	binary.LittleEndian.PutUint16(buf[1:], uint16(kind))
	_, _ = h.Write(buf[:3])
	_, _ = h.WriteString(text)
	for _, list := range [2][]TriviaPiece{leading, trailing} {
		binary.LittleEndian.PutUint32(buf[:4], source.SizeOf(len(list)))
		_, _ = h.Write(buf[:4])
		for _, p := range list {
			buf[0] = byte(p.Kind)
			binary.LittleEndian.PutUint32(buf[1:], p.Len)
			_, _ = h.Write(buf[:5])
		}
	}
	return h.Sum64()
}

func hashNode(kind Kind, elems []GreenElement) uint64 {
	h := xxh3.New()
	var buf [9]byte
	buf[0] = tagNode
	binary.LittleEndian.PutUint16(buf[1:], uint16(kind))
	_, _ = h.Write(buf[:3])
	for _, e := range elems {
		if e.IsEmpty() {
			buf[0] = tagEmpty
			_, _ = h.Write(buf[:1])
			continue
		}
		buf[0] = tagNode
		if e.token != nil {
			buf[0] = tagToken
		}
		binary.LittleEndian.PutUint64(buf[1:], e.hash())
		_, _ = h.Write(buf[:9])
	}
	return h.Sum64()
}
