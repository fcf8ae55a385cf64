package syntax

import "slices"

// maxCachedSlots bounds node interning; wide nodes rarely repeat and would
// make the equality check expensive.
const maxCachedSlots = 3

// NodeCache hash-conses green nodes and tokens built during one parse.
// It is not safe for concurrent use.
type NodeCache struct {
	nodes   map[uint64][]*GreenNode
	tokens  map[uint64][]*GreenToken
	counter *Counter
}

// NewNodeCache creates an empty cache. A nil counter disables accounting.
func NewNodeCache(counter *Counter) *NodeCache {
	return &NodeCache{
		nodes:   make(map[uint64][]*GreenNode),
		tokens:  make(map[uint64][]*GreenToken),
		counter: counter,
	}
}

// Token returns an interned token equal to (kind, text, trivia).
func (c *NodeCache) Token(kind Kind, text string, leading, trailing []TriviaPiece) *GreenToken {
	h := hashToken(kind, text, leading, trailing)
	for _, t := range c.tokens[h] {
		if t.kind == kind && t.text == text && slices.Equal(t.leading, leading) && slices.Equal(t.trailing, trailing) {
			c.counter.hit()
			return t
		}
	}
	t := &GreenToken{kind: kind, text: text, leading: leading, trailing: trailing, hash: h}
	c.tokens[h] = append(c.tokens[h], t)
	c.counter.trackToken(t)
	return t
}

// Node returns an interned node for kind over elems. Children must already be
// interned, so identity of children is enough to decide equality.
func (c *NodeCache) Node(kind Kind, elems []GreenElement) *GreenNode {
	if len(elems) > maxCachedSlots {
		n := NewGreenNode(kind, elems)
		c.counter.trackNode(n)
		return n
	}
	h := hashNode(kind, elems)
	for _, n := range c.nodes[h] {
		if n.kind == kind && sameChildren(n, elems) {
			c.counter.hit()
			return n
		}
	}
	n := NewGreenNode(kind, elems)
	c.nodes[h] = append(c.nodes[h], n)
	c.counter.trackNode(n)
	return n
}

// Len returns the number of distinct cached nodes and tokens.
func (c *NodeCache) Len() (nodes, tokens int) {
	for _, b := range c.nodes {
		nodes += len(b)
	}
	for _, b := range c.tokens {
		tokens += len(b)
	}
	return nodes, tokens
}

func sameChildren(n *GreenNode, elems []GreenElement) bool {
	if len(n.slots) != len(elems) {
		return false
	}
	for i, e := range elems {
		if !n.slots[i].elem.same(e) {
			return false
		}
	}
	return true
}
