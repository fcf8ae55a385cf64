package syntax

import (
	"fmt"
)

// Checkpoint marks a position in the builder's child stack so a node can be
// wrapped around already emitted children (used for binary expressions).
type Checkpoint struct {
	children int
	depth    int
}

type builderFrame struct {
	kind  Kind
	first int
}

// TreeBuilder assembles a green tree from start/token/finish events.
type TreeBuilder struct {
	cache    *NodeCache
	parents  []builderFrame
	children []GreenElement
}

// NewTreeBuilder creates a builder interning into cache; a nil cache gets a private one.
func NewTreeBuilder(cache *NodeCache) *TreeBuilder {
	if cache == nil {
		cache = NewNodeCache(nil)
	}
	return &TreeBuilder{cache: cache}
}

// StartNode opens a node; its children are the elements pushed until FinishNode.
func (b *TreeBuilder) StartNode(kind Kind) {
	b.parents = append(b.parents, builderFrame{kind: kind, first: len(b.children)})
}

// Token appends a leaf to the current node.
func (b *TreeBuilder) Token(kind Kind, text string, leading, trailing []TriviaPiece) {
	b.children = append(b.children, TokenElement(b.cache.Token(kind, text, leading, trailing)))
}

// Missing appends an empty slot to the current node.
func (b *TreeBuilder) Missing() {
	b.children = append(b.children, GreenElement{})
}

// FinishNode closes the current node. A fixed-shape node whose slot count does
// not match its kind is turned into the bogus kind of its family.
func (b *TreeBuilder) FinishNode() {
	if len(b.parents) == 0 {
		panic("syntax: FinishNode without StartNode")
	}
	top := b.parents[len(b.parents)-1]
	b.parents = b.parents[:len(b.parents)-1]

	elems := b.children[top.first:]
	kind := top.kind
	if want := kind.SlotCount(); want != Variable && want != len(elems) {
		kind = kind.ToBogus()
	}
	node := b.cache.Node(kind, elems)
	b.children = append(b.children[:top.first], NodeElement(node))
}

// Checkpoint records the current position.
func (b *TreeBuilder) Checkpoint() Checkpoint {
	return Checkpoint{children: len(b.children), depth: len(b.parents)}
}

// StartNodeAt opens a node that adopts every child emitted since cp.
func (b *TreeBuilder) StartNodeAt(cp Checkpoint, kind Kind) {
	if cp.depth != len(b.parents) || cp.children > len(b.children) {
		panic(fmt.Sprintf("syntax: stale checkpoint (depth %d, now %d)", cp.depth, len(b.parents)))
	}
	b.parents = append(b.parents, builderFrame{kind: kind, first: cp.children})
}

// Finish returns the single root node. It panics if nodes are left open or
// more than one root was produced: both are parser bugs.
func (b *TreeBuilder) Finish() *GreenNode {
	if len(b.parents) != 0 || len(b.children) != 1 || b.children[0].node == nil {
		panic(fmt.Sprintf("syntax: unbalanced tree (%d open, %d roots)", len(b.parents), len(b.children)))
	}
	root := b.children[0].node
	b.children = b.children[:0]
	return root
}
