package syntax

import (
	"runtime"
	"testing"
	"time"
)

var ws1 = []TriviaPiece{{Kind: Whitespace, Len: 1}}

// buildOnePlusOne builds "1 + 1" as ExpressionStatement(BinaryExpression(lit, +, lit), missing ;).
func buildOnePlusOne(t *testing.T, cache *NodeCache) SyntaxNode {
	t.Helper()
	b := NewTreeBuilder(cache)
	b.StartNode(ExpressionStatement)
	cp := b.Checkpoint()
	b.StartNode(NumberLiteralExpression)
	b.Token(NumberLit, "1 ", nil, ws1)
	b.FinishNode()
	b.StartNodeAt(cp, BinaryExpression)
	b.Token(Plus, "+ ", nil, ws1)
	b.StartNode(NumberLiteralExpression)
	b.Token(NumberLit, "1", nil, nil)
	b.FinishNode()
	b.FinishNode()
	b.Missing()
	b.FinishNode()
	return NewRoot(b.Finish())
}

func TestBuilderCheckpointWrapsChildren(t *testing.T) {
	root := buildOnePlusOne(t, nil)
	if root.Kind() != ExpressionStatement {
		t.Fatalf("root kind = %s", root.Kind())
	}
	bin, ok := root.FirstChild()
	if !ok || bin.Kind() != BinaryExpression {
		t.Fatalf("expected BinaryExpression child, got %v", bin.Kind())
	}
	if bin.SlotCount() != 3 {
		t.Fatalf("binary slots = %d", bin.SlotCount())
	}
	if root.Text() != "1 + 1" {
		t.Fatalf("text = %q", root.Text())
	}
	if _, ok := root.Slot(1); ok {
		t.Fatalf("semicolon slot should be missing")
	}
}

func TestBuilderWrongShapeBecomesBogus(t *testing.T) {
	b := NewTreeBuilder(nil)
	b.StartNode(StatementList)
	b.StartNode(IfStatement)
	b.Token(IfKw, "if", nil, nil)
	b.FinishNode()
	b.StartNode(NumberLiteralExpression)
	b.Token(NumberLit, "1", nil, nil)
	b.Token(NumberLit, "2", nil, nil)
	b.FinishNode()
	b.FinishNode()
	root := NewRoot(b.Finish())

	var kinds []Kind
	for c := range root.Children() {
		kinds = append(kinds, c.Kind())
	}
	if len(kinds) != 2 || kinds[0] != BogusStatement || kinds[1] != BogusExpression {
		t.Fatalf("kinds = %v", kinds)
	}
}

func TestBuilderUnbalancedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	b := NewTreeBuilder(nil)
	b.StartNode(StatementList)
	b.Finish()
}

func TestNodeCacheInternsIdenticalSubtrees(t *testing.T) {
	counter := &Counter{}
	cache := NewNodeCache(counter)
	root := buildOnePlusOne(t, cache)

	bin, _ := root.FirstChild()
	left, _ := bin.FirstChild()
	right, _ := bin.LastChild()

	// the two literal tokens differ by trailing trivia, so they are distinct
	if left.Green() == right.Green() {
		t.Fatalf("literals with different trivia must not share a node")
	}
	if left.Equal(right) {
		t.Fatalf("different positions must not compare equal")
	}

	a := cache.Node(NumberLiteralExpression, []GreenElement{TokenElement(cache.Token(NumberLit, "1", nil, nil))})
	if a != right.Green() {
		t.Fatalf("identical literal not interned")
	}
	if counter.Hits() < 2 {
		t.Fatalf("expected token and node cache hits, got %d", counter.Hits())
	}
	nodes, tokens := cache.Len()
	if int64(nodes) != counter.Nodes() || int64(tokens) != counter.Tokens() {
		t.Fatalf("cache len %d/%d vs counter %d/%d", nodes, tokens, counter.Nodes(), counter.Tokens())
	}
	// the cache references every allocation, so nothing can be reclaimed yet
	if counter.Live() != counter.Nodes()+counter.Tokens() {
		t.Fatalf("live %d, allocated %d", counter.Live(), counter.Nodes()+counter.Tokens())
	}
	runtime.KeepAlive(cache)
}

func TestCountedCacheReleasesAllocations(t *testing.T) {
	counter := &Counter{}
	func() {
		root := buildOnePlusOne(t, NewNodeCache(counter))
		if root.Text() != "1 + 1" {
			t.Fatalf("text = %q", root.Text())
		}
	}()
	if counter.Nodes() == 0 || counter.Tokens() == 0 {
		t.Fatalf("nothing was counted: nodes=%d tokens=%d", counter.Nodes(), counter.Tokens())
	}

	deadline := time.Now().Add(5 * time.Second)
	for counter.Live() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("%d green allocations still live after the tree was dropped", counter.Live())
		}
		runtime.GC()
		time.Sleep(time.Millisecond)
	}
}

func TestWideNodesAreNotCached(t *testing.T) {
	cache := NewNodeCache(nil)
	tok := TokenElement(cache.Token(Semicolon, ";", nil, nil))
	elems := []GreenElement{tok, tok, tok, tok}
	if cache.Node(StatementList, elems) == cache.Node(StatementList, elems) {
		t.Fatalf("nodes above the slot limit should not be interned")
	}
	if !cache.Node(StatementList, elems).Equal(cache.Node(StatementList, elems)) {
		t.Fatalf("structural equality must still hold")
	}
}
