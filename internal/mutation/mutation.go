// Package mutation records edits against an immutable syntax tree and
// commits them in one pass, rebuilding only the ancestors of edited slots.
package mutation

import (
	"errors"
	"fmt"
	"slices"

	"lintel/internal/syntax"
)

var (
	// ErrTargetNotFound is returned when an edit targets an element outside the mutation root.
	ErrTargetNotFound = errors.New("mutation target not found in tree")
	// ErrOverlappingEdits is returned when one edit targets an ancestor of (or the same element as) another.
	ErrOverlappingEdits = errors.New("overlapping edits")
)

type change struct {
	target syntax.SyntaxElement
	next   syntax.GreenElement // empty means removal
}

// BatchMutation is a set of edits anchored to one root.
type BatchMutation struct {
	root    syntax.SyntaxNode
	changes []change
}

// Begin starts a mutation over root.
func Begin(root syntax.SyntaxNode) *BatchMutation {
	return &BatchMutation{root: root}
}

// Root returns the tree the mutation is anchored to.
func (m *BatchMutation) Root() syntax.SyntaxNode { return m.root }

// Len returns the number of recorded edits.
func (m *BatchMutation) Len() int { return len(m.changes) }

// ReplaceNode records the replacement of prev by next.
func (m *BatchMutation) ReplaceNode(prev syntax.SyntaxNode, next *syntax.GreenNode) {
	m.ReplaceElement(syntax.NodeElem(prev), syntax.NodeElement(next))
}

// ReplaceToken records the replacement of prev by next, trivia included.
func (m *BatchMutation) ReplaceToken(prev syntax.SyntaxToken, next *syntax.GreenToken) {
	m.ReplaceElement(syntax.TokenElem(prev), syntax.TokenElement(next))
}

// ReplaceTokenTransferTrivia replaces prev by a token of next's kind and
// trimmed text that keeps prev's leading and trailing trivia.
func (m *BatchMutation) ReplaceTokenTransferTrivia(prev syntax.SyntaxToken, next *syntax.GreenToken) {
	g := prev.Green()
	text := g.LeadingText() + next.TextTrimmed() + g.TrailingText()
	m.ReplaceToken(prev, syntax.NewGreenToken(next.Kind(), text, g.Leading(), g.Trailing()))
}

// ReplaceElement records a generic replacement. An empty next removes prev.
func (m *BatchMutation) ReplaceElement(prev syntax.SyntaxElement, next syntax.GreenElement) {
	if !next.IsEmpty() && prev.Green() == next {
		return
	}
	m.changes = append(m.changes, change{target: prev, next: next})
}

// RemoveNode records the removal of prev. Inside a list the slot disappears;
// elsewhere it becomes an empty (missing) slot.
func (m *BatchMutation) RemoveNode(prev syntax.SyntaxNode) {
	m.changes = append(m.changes, change{target: syntax.NodeElem(prev)})
}

// RemoveToken records the removal of prev.
func (m *BatchMutation) RemoveToken(prev syntax.SyntaxToken) {
	m.changes = append(m.changes, change{target: syntax.TokenElem(prev)})
}

type slotEdit struct {
	index int
	next  syntax.GreenElement
}

type pendingParent struct {
	node  syntax.SyntaxNode
	depth int
	edits []slotEdit
}

// Commit validates every edit and then produces a new root. Either all
// edits apply or none do: on error the original tree is the only tree.
func (m *BatchMutation) Commit() (syntax.SyntaxNode, error) {
	if len(m.changes) == 0 {
		return m.root, nil
	}
	if err := m.validate(); err != nil {
		return syntax.SyntaxNode{}, err
	}

	// root replacement is exclusive by the overlap check
	for _, c := range m.changes {
		if n, ok := c.target.AsNode(); ok && n.IsRoot() {
			if c.next.Node() == nil {
				return syntax.SyntaxNode{}, fmt.Errorf("%w: cannot remove or retype the root", ErrTargetNotFound)
			}
			return syntax.NewRoot(c.next.Node()), nil
		}
	}

	pending := make(map[syntax.NodeKey]*pendingParent)
	maxDepth := 0
	enqueue := func(parent syntax.SyntaxNode, edit slotEdit) {
		key := parent.Key()
		p, ok := pending[key]
		if !ok {
			p = &pendingParent{node: parent, depth: depthOf(parent)}
			pending[key] = p
			maxDepth = max(maxDepth, p.depth)
		}
		p.edits = append(p.edits, edit)
	}
	for _, c := range m.changes {
		parent, _ := c.target.Parent()
		enqueue(parent, slotEdit{index: c.target.IndexInParent(), next: c.next})
	}

	for depth := maxDepth; depth >= 0; depth-- {
		var level []*pendingParent
		for _, p := range pending {
			if p.depth == depth {
				level = append(level, p)
			}
		}
		// deterministic order, independent of map iteration
		slices.SortFunc(level, func(a, b *pendingParent) int {
			return int(a.node.Offset()) - int(b.node.Offset())
		})
		for _, p := range level {
			green := rebuild(p.node, p.edits)
			parent, ok := p.node.Parent()
			if !ok {
				return syntax.NewRoot(green), nil
			}
			enqueue(parent, slotEdit{index: p.node.IndexInParent(), next: syntax.NodeElement(green)})
		}
	}
	return syntax.SyntaxNode{}, fmt.Errorf("%w: edits never reached the root", ErrTargetNotFound)
}

func (m *BatchMutation) validate() error {
	nodeTargets := make(map[syntax.NodeKey]struct{}, len(m.changes))
	tokenTargets := make(map[syntax.TokenKey]struct{})
	for _, c := range m.changes {
		if c.target.IsZero() {
			return ErrTargetNotFound
		}
		if !belongsTo(c.target, m.root) {
			return ErrTargetNotFound
		}
		if n, ok := c.target.AsNode(); ok {
			if _, dup := nodeTargets[n.Key()]; dup {
				return fmt.Errorf("%w: %s edited twice", ErrOverlappingEdits, n.Kind())
			}
			nodeTargets[n.Key()] = struct{}{}
			continue
		}
		t, _ := c.target.AsToken()
		if _, dup := tokenTargets[t.Key()]; dup {
			return fmt.Errorf("%w: %s edited twice", ErrOverlappingEdits, t.Kind())
		}
		tokenTargets[t.Key()] = struct{}{}
	}
	for _, c := range m.changes {
		parent, ok := c.target.Parent()
		if !ok {
			continue
		}
		for a := range parent.Ancestors() {
			if _, hit := nodeTargets[a.Key()]; hit {
				return fmt.Errorf("%w: %s is inside edited %s", ErrOverlappingEdits, c.target.Kind(), a.Kind())
			}
		}
	}
	return nil
}

func belongsTo(el syntax.SyntaxElement, root syntax.SyntaxNode) bool {
	var top syntax.SyntaxNode
	if n, ok := el.AsNode(); ok {
		top = n.Root()
	} else {
		t, _ := el.AsToken()
		top = t.Parent().Root()
	}
	return top.Equal(root)
}

func depthOf(n syntax.SyntaxNode) int {
	d := -1
	for range n.Ancestors() {
		d++
	}
	return d
}

func rebuild(node syntax.SyntaxNode, edits []slotEdit) *syntax.GreenNode {
	elems := node.Green().Elements()
	drop := make(map[int]bool)
	list := node.Kind().IsList()
	for _, e := range edits {
		if e.next.IsEmpty() && list {
			drop[e.index] = true
			continue
		}
		elems[e.index] = e.next
	}
	if len(drop) > 0 {
		kept := elems[:0]
		for i, e := range elems {
			if !drop[i] {
				kept = append(kept, e)
			}
		}
		elems = kept
	}
	return syntax.NewGreenNode(node.Kind(), elems)
}
