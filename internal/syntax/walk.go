package syntax

import "iter"

// WalkEventKind distinguishes entering and leaving a node.
type WalkEventKind uint8

const (
	Enter WalkEventKind = iota
	Leave
)

func (k WalkEventKind) String() string {
	if k == Enter {
		return "Enter"
	}
	return "Leave"
}

// WalkEvent is emitted by Preorder for every node, once on entry and once on exit.
type WalkEvent struct {
	Kind WalkEventKind
	Node SyntaxNode
}

// Preorder walks a subtree, producing Enter/Leave events in document order.
type Preorder struct {
	start SyntaxNode
	next  WalkEvent
	done  bool
	last  WalkEvent
	has   bool
}

// Preorder starts a walk rooted at n.
func (n SyntaxNode) Preorder() *Preorder {
	return &Preorder{start: n, next: WalkEvent{Kind: Enter, Node: n}}
}

// Next returns the next event; ok is false once the walk is over.
func (p *Preorder) Next() (WalkEvent, bool) {
	if p.done {
		return WalkEvent{}, false
	}
	ev := p.next
	p.last, p.has = ev, true

	switch ev.Kind {
	case Enter:
		if child, ok := ev.Node.FirstChild(); ok {
			p.next = WalkEvent{Kind: Enter, Node: child}
		} else {
			p.next = WalkEvent{Kind: Leave, Node: ev.Node}
		}
	case Leave:
		if ev.Node.data == p.start.data {
			p.done = true
			break
		}
		if sib, ok := ev.Node.NextSibling(); ok {
			p.next = WalkEvent{Kind: Enter, Node: sib}
		} else {
			parent, _ := ev.Node.Parent()
			p.next = WalkEvent{Kind: Leave, Node: parent}
		}
	}
	return ev, true
}

// SkipSubtree makes the walk jump to the Leave event of the node last entered.
// It has no effect if the last event was a Leave.
func (p *Preorder) SkipSubtree() {
	if p.has && p.last.Kind == Enter && !p.done {
		p.next = WalkEvent{Kind: Leave, Node: p.last.Node}
	}
}

// Walk yields the events of a full preorder walk of n.
func (n SyntaxNode) Walk() iter.Seq[WalkEvent] {
	return func(yield func(WalkEvent) bool) {
		p := n.Preorder()
		for ev, ok := p.Next(); ok; ev, ok = p.Next() {
			if !yield(ev) {
				return
			}
		}
	}
}
