package syntax

import (
	"iter"
	"strings"

	"lintel/internal/source"
)

type nodeData struct {
	green  *GreenNode
	parent *nodeData
	index  uint32
	// offset is filled on first use from the parent's offset.
	offset      source.TextSize
	offsetKnown bool
}

func (d *nodeData) absOffset() source.TextSize {
	if !d.offsetKnown {
		d.offset = d.parent.absOffset() + d.parent.green.slots[d.index].rel
		d.offsetKnown = true
	}
	return d.offset
}

// SyntaxNode is a positioned, parent-aware cursor over a green node.
// The zero value is "no node".
type SyntaxNode struct {
	data *nodeData
}

// NodeKey identifies a cursor by green pointer and absolute offset.
type NodeKey struct {
	Green  *GreenNode
	Offset source.TextSize
}

// NewRoot creates a root cursor at offset zero.
func NewRoot(green *GreenNode) SyntaxNode {
	return SyntaxNode{data: &nodeData{green: green, offsetKnown: true}}
}

func (n SyntaxNode) IsZero() bool { return n.data == nil }

func (n SyntaxNode) Kind() Kind { return n.data.green.kind }

func (n SyntaxNode) Green() *GreenNode { return n.data.green }

// Detach returns a new root over the same green payload.
func (n SyntaxNode) Detach() SyntaxNode { return NewRoot(n.data.green) }

func (n SyntaxNode) Key() NodeKey {
	return NodeKey{Green: n.data.green, Offset: n.data.absOffset()}
}

// Equal compares identity, not content: an interned subtree appearing twice
// at different offsets yields unequal cursors.
func (n SyntaxNode) Equal(o SyntaxNode) bool {
	if n.data == nil || o.data == nil {
		return n.data == o.data
	}
	return n.data.green == o.data.green && n.data.absOffset() == o.data.absOffset()
}

func (n SyntaxNode) Offset() source.TextSize { return n.data.absOffset() }

func (n SyntaxNode) TextRange() source.TextRange {
	return source.RangeAt(n.data.absOffset(), n.data.green.textLen)
}

// TextTrimmedRange excludes the leading trivia of the first token and the
// trailing trivia of the last token.
func (n SyntaxNode) TextTrimmedRange() source.TextRange {
	r := n.TextRange()
	first, ok := n.FirstToken()
	if !ok {
		return r
	}
	last, _ := n.LastToken()
	start := r.Start + first.green.LeadingLen()
	end := r.End - last.green.TrailingLen()
	if end < start {
		return source.TextRange{Start: start, End: start}
	}
	return source.TextRange{Start: start, End: end}
}

func (n SyntaxNode) Text() string { return n.data.green.Text() }

func (n SyntaxNode) TextTrimmed() string {
	return n.TextTrimmedRange().Sub(n.data.absOffset()).Slice(n.Text())
}

func (n SyntaxNode) String() string { return n.Text() }

// Parent returns the enclosing node.
func (n SyntaxNode) Parent() (SyntaxNode, bool) {
	if n.data.parent == nil {
		return SyntaxNode{}, false
	}
	return SyntaxNode{data: n.data.parent}, true
}

func (n SyntaxNode) IsRoot() bool { return n.data.parent == nil }

func (n SyntaxNode) Root() SyntaxNode {
	d := n.data
	for d.parent != nil {
		d = d.parent
	}
	return SyntaxNode{data: d}
}

// IndexInParent is the slot index inside the parent; zero for roots.
func (n SyntaxNode) IndexInParent() int { return int(n.data.index) }

// Ancestors yields n and then every enclosing node up to the root.
func (n SyntaxNode) Ancestors() iter.Seq[SyntaxNode] {
	return func(yield func(SyntaxNode) bool) {
		for d := n.data; d != nil; d = d.parent {
			if !yield(SyntaxNode{data: d}) {
				return
			}
		}
	}
}

func (n SyntaxNode) SlotCount() int { return len(n.data.green.slots) }

func (n SyntaxNode) childAt(i int) SyntaxElement {
	s := n.data.green.slots[i]
	switch {
	case s.elem.node != nil:
		return SyntaxElement{node: SyntaxNode{data: &nodeData{green: s.elem.node, parent: n.data, index: uint32(i)}}}
	case s.elem.token != nil:
		return SyntaxElement{token: SyntaxToken{parent: n.data, index: uint32(i), green: s.elem.token}}
	default:
		return SyntaxElement{}
	}
}

// Slot returns the element in slot i; ok is false for missing or out-of-range slots.
func (n SyntaxNode) Slot(i int) (SyntaxElement, bool) {
	if i < 0 || i >= len(n.data.green.slots) || n.data.green.slots[i].elem.IsEmpty() {
		return SyntaxElement{}, false
	}
	return n.childAt(i), true
}

// Children yields child nodes in order, materializing cursors one at a time.
func (n SyntaxNode) Children() iter.Seq[SyntaxNode] {
	return func(yield func(SyntaxNode) bool) {
		for i, s := range n.data.green.slots {
			if s.elem.node == nil {
				continue
			}
			if !yield(n.childAt(i).node) {
				return
			}
		}
	}
}

// ChildrenWithTokens yields child nodes and tokens, skipping missing slots.
func (n SyntaxNode) ChildrenWithTokens() iter.Seq[SyntaxElement] {
	return func(yield func(SyntaxElement) bool) {
		for i, s := range n.data.green.slots {
			if s.elem.IsEmpty() {
				continue
			}
			if !yield(n.childAt(i)) {
				return
			}
		}
	}
}

func (n SyntaxNode) FirstChild() (SyntaxNode, bool) {
	for c := range n.Children() {
		return c, true
	}
	return SyntaxNode{}, false
}

func (n SyntaxNode) LastChild() (SyntaxNode, bool) {
	slots := n.data.green.slots
	for i := len(slots) - 1; i >= 0; i-- {
		if slots[i].elem.node != nil {
			return n.childAt(i).node, true
		}
	}
	return SyntaxNode{}, false
}

func (n SyntaxNode) siblingNode(step int) (SyntaxNode, bool) {
	p := n.data.parent
	if p == nil {
		return SyntaxNode{}, false
	}
	parent := SyntaxNode{data: p}
	for i := int(n.data.index) + step; i >= 0 && i < len(p.green.slots); i += step {
		if p.green.slots[i].elem.node != nil {
			return parent.childAt(i).node, true
		}
	}
	return SyntaxNode{}, false
}

func (n SyntaxNode) NextSibling() (SyntaxNode, bool) { return n.siblingNode(1) }
func (n SyntaxNode) PrevSibling() (SyntaxNode, bool) { return n.siblingNode(-1) }

// FirstToken returns the first token in the subtree, skipping empty nodes.
func (n SyntaxNode) FirstToken() (SyntaxToken, bool) {
	for i, s := range n.data.green.slots {
		switch {
		case s.elem.token != nil:
			return n.childAt(i).token, true
		case s.elem.node != nil:
			if t, ok := n.childAt(i).node.FirstToken(); ok {
				return t, true
			}
		}
	}
	return SyntaxToken{}, false
}

// LastToken returns the last token in the subtree.
func (n SyntaxNode) LastToken() (SyntaxToken, bool) {
	slots := n.data.green.slots
	for i := len(slots) - 1; i >= 0; i-- {
		s := slots[i]
		switch {
		case s.elem.token != nil:
			return n.childAt(i).token, true
		case s.elem.node != nil:
			if t, ok := n.childAt(i).node.LastToken(); ok {
				return t, true
			}
		}
	}
	return SyntaxToken{}, false
}

// Descendants yields n and every node below it in preorder.
func (n SyntaxNode) Descendants() iter.Seq[SyntaxNode] {
	return func(yield func(SyntaxNode) bool) {
		p := n.Preorder()
		for ev, ok := p.Next(); ok; ev, ok = p.Next() {
			if ev.Kind == Enter && !yield(ev.Node) {
				return
			}
		}
	}
}

// DescendantTokens yields every token in the subtree in document order.
func (n SyntaxNode) DescendantTokens() iter.Seq[SyntaxToken] {
	return func(yield func(SyntaxToken) bool) {
		n.eachToken(yield)
	}
}

func (n SyntaxNode) eachToken(yield func(SyntaxToken) bool) bool {
	for i, s := range n.data.green.slots {
		switch {
		case s.elem.token != nil:
			if !yield(n.childAt(i).token) {
				return false
			}
		case s.elem.node != nil:
			if !n.childAt(i).node.eachToken(yield) {
				return false
			}
		}
	}
	return true
}

// TokenAtOffset returns the token whose full range contains offset. At a
// boundary the token starting at offset wins.
func (n SyntaxNode) TokenAtOffset(offset source.TextSize) (SyntaxToken, bool) {
	r := n.TextRange()
	if offset < r.Start || offset >= r.End {
		return SyntaxToken{}, false
	}
	cur := n
	for {
		base := cur.data.absOffset()
		var next SyntaxNode
		found := false
		for i, s := range cur.data.green.slots {
			if s.elem.IsEmpty() {
				continue
			}
			start := base + s.rel
			if offset < start || offset >= start+s.elem.TextLen() {
				continue
			}
			el := cur.childAt(i)
			if t, ok := el.AsToken(); ok {
				return t, true
			}
			next = el.node
			found = true
			break
		}
		if !found {
			return SyntaxToken{}, false
		}
		cur = next
	}
}

// CoveringElement returns the deepest element whose range contains r.
func (n SyntaxNode) CoveringElement(r source.TextRange) SyntaxElement {
	cur := n
	for {
		var next SyntaxElement
		for el := range cur.ChildrenWithTokens() {
			if el.TextRange().ContainsRange(r) && !el.TextRange().Empty() {
				next = el
				break
			}
		}
		switch {
		case next.IsZero():
			return SyntaxElement{node: cur}
		case next.node.IsZero():
			return next
		default:
			cur = next.node
		}
	}
}

// ReplaceChild returns a new root in which the slot holding prev is replaced
// by next (an empty element removes the child). It returns false when prev
// is not a child of n.
func (n SyntaxNode) ReplaceChild(prev SyntaxElement, next GreenElement) (SyntaxNode, bool) {
	p, ok := prev.Parent()
	if !ok || !p.Equal(n) {
		return SyntaxNode{}, false
	}
	return rebuildUp(n, prev.IndexInParent(), next), true
}

// ReplaceNode replaces prev by next anywhere below root and returns the new
// root, or false when prev does not belong to root's tree.
func ReplaceNode(root, prev SyntaxNode, next *GreenNode) (SyntaxNode, bool) {
	if prev.IsZero() || !prev.Root().Equal(root) {
		return SyntaxNode{}, false
	}
	if prev.data.green == next {
		return root, true
	}
	parent, ok := prev.Parent()
	if !ok {
		return NewRoot(next), true
	}
	return parent.ReplaceChild(NodeElem(prev), NodeElement(next))
}

// rebuildUp copies the path from node to the root, substituting slot index
// with elem. Siblings off the path are reused by pointer.
func rebuildUp(node SyntaxNode, index int, elem GreenElement) SyntaxNode {
	green := node.data.green.WithSlot(index, elem)
	for d := node.data; d.parent != nil; d = d.parent {
		green = d.parent.green.WithSlot(int(d.index), NodeElement(green))
	}
	return NewRoot(green)
}

// SyntaxToken is a positioned cursor over a green token.
type SyntaxToken struct {
	parent *nodeData
	index  uint32
	green  *GreenToken
}

// TokenKey identifies a token cursor by green pointer and offset.
type TokenKey struct {
	Green  *GreenToken
	Offset source.TextSize
}

func (t SyntaxToken) IsZero() bool { return t.green == nil }

func (t SyntaxToken) Kind() Kind { return t.green.kind }

func (t SyntaxToken) Green() *GreenToken { return t.green }

func (t SyntaxToken) Offset() source.TextSize {
	return t.parent.absOffset() + t.parent.green.slots[t.index].rel
}

func (t SyntaxToken) Key() TokenKey { return TokenKey{Green: t.green, Offset: t.Offset()} }

func (t SyntaxToken) Equal(o SyntaxToken) bool {
	if t.green == nil || o.green == nil {
		return t.green == o.green
	}
	return t.green == o.green && t.Offset() == o.Offset()
}

func (t SyntaxToken) Text() string { return t.green.text }

func (t SyntaxToken) TextTrimmed() string { return t.green.TextTrimmed() }

func (t SyntaxToken) TextRange() source.TextRange {
	return source.RangeAt(t.Offset(), t.green.TextLen())
}

func (t SyntaxToken) TextTrimmedRange() source.TextRange {
	return t.green.TrimmedRange().Add(t.Offset())
}

func (t SyntaxToken) LeadingTrivia() TriviaList {
	return TriviaList{pieces: t.green.leading, text: t.green.LeadingText(), offset: t.Offset()}
}

func (t SyntaxToken) TrailingTrivia() TriviaList {
	r := t.TextTrimmedRange()
	return TriviaList{pieces: t.green.trailing, text: t.green.TrailingText(), offset: r.End}
}

func (t SyntaxToken) HasLeadingComments() bool  { return t.LeadingTrivia().HasComments() }
func (t SyntaxToken) HasTrailingComments() bool { return t.TrailingTrivia().HasComments() }

func (t SyntaxToken) Parent() SyntaxNode { return SyntaxNode{data: t.parent} }

func (t SyntaxToken) IndexInParent() int { return int(t.index) }

// NextToken returns the following token in document order.
func (t SyntaxToken) NextToken() (SyntaxToken, bool) {
	d, from := t.parent, int(t.index)+1
	for d != nil {
		n := SyntaxNode{data: d}
		for i := from; i < len(d.green.slots); i++ {
			s := d.green.slots[i]
			switch {
			case s.elem.token != nil:
				return n.childAt(i).token, true
			case s.elem.node != nil:
				if tok, ok := n.childAt(i).node.FirstToken(); ok {
					return tok, true
				}
			}
		}
		from = int(d.index) + 1
		d = d.parent
	}
	return SyntaxToken{}, false
}

// PrevToken returns the preceding token in document order.
func (t SyntaxToken) PrevToken() (SyntaxToken, bool) {
	d, from := t.parent, int(t.index)-1
	for d != nil {
		n := SyntaxNode{data: d}
		for i := from; i >= 0; i-- {
			s := d.green.slots[i]
			switch {
			case s.elem.token != nil:
				return n.childAt(i).token, true
			case s.elem.node != nil:
				if tok, ok := n.childAt(i).node.LastToken(); ok {
					return tok, true
				}
			}
		}
		from = int(d.index) - 1
		d = d.parent
	}
	return SyntaxToken{}, false
}

func (t SyntaxToken) String() string { return t.green.text }

// SyntaxElement is either a node or a token cursor.
type SyntaxElement struct {
	node  SyntaxNode
	token SyntaxToken
}

func NodeElem(n SyntaxNode) SyntaxElement   { return SyntaxElement{node: n} }
func TokenElem(t SyntaxToken) SyntaxElement { return SyntaxElement{token: t} }

func (e SyntaxElement) IsZero() bool { return e.node.IsZero() && e.token.IsZero() }

func (e SyntaxElement) AsNode() (SyntaxNode, bool)   { return e.node, !e.node.IsZero() }
func (e SyntaxElement) AsToken() (SyntaxToken, bool) { return e.token, !e.token.IsZero() }

func (e SyntaxElement) Kind() Kind {
	if !e.node.IsZero() {
		return e.node.Kind()
	}
	return e.token.Kind()
}

func (e SyntaxElement) TextRange() source.TextRange {
	if !e.node.IsZero() {
		return e.node.TextRange()
	}
	return e.token.TextRange()
}

func (e SyntaxElement) TextTrimmedRange() source.TextRange {
	if !e.node.IsZero() {
		return e.node.TextTrimmedRange()
	}
	return e.token.TextTrimmedRange()
}

func (e SyntaxElement) Text() string {
	if !e.node.IsZero() {
		return e.node.Text()
	}
	return e.token.Text()
}

func (e SyntaxElement) Parent() (SyntaxNode, bool) {
	if !e.node.IsZero() {
		return e.node.Parent()
	}
	if e.token.IsZero() {
		return SyntaxNode{}, false
	}
	return e.token.Parent(), true
}

func (e SyntaxElement) IndexInParent() int {
	if !e.node.IsZero() {
		return e.node.IndexInParent()
	}
	return e.token.IndexInParent()
}

// Green returns the green payload.
func (e SyntaxElement) Green() GreenElement {
	if !e.node.IsZero() {
		return NodeElement(e.node.data.green)
	}
	if !e.token.IsZero() {
		return TokenElement(e.token.green)
	}
	return GreenElement{}
}

// TextOf concatenates the texts of a token sequence; handy in tests and rules.
func TextOf(tokens iter.Seq[SyntaxToken]) string {
	var b strings.Builder
	for t := range tokens {
		b.WriteString(t.Text())
	}
	return b.String()
}
