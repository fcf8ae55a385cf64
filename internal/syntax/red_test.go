package syntax

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"lintel/internal/source"
)

func TestTokenTrivia(t *testing.T) {
	b := NewTreeBuilder(nil)
	b.StartNode(ReferenceIdentifier)
	b.Token(Ident, "  /*c*/x // tail", []TriviaPiece{{Whitespace, 2}, {MultiLineComment, 5}},
		[]TriviaPiece{{Whitespace, 1}, {SingleLineComment, 7}})
	b.FinishNode()
	root := NewRoot(b.Finish())

	tok, ok := root.FirstToken()
	if !ok {
		t.Fatalf("no token")
	}
	if tok.TextTrimmed() != "x" {
		t.Fatalf("trimmed = %q", tok.TextTrimmed())
	}
	if got := tok.TextTrimmedRange(); got != (source.TextRange{Start: 7, End: 8}) {
		t.Fatalf("trimmed range = %v", got)
	}
	if !tok.HasLeadingComments() || !tok.HasTrailingComments() {
		t.Fatalf("comments not detected")
	}
	var texts []string
	for p := range tok.LeadingTrivia().Pieces() {
		texts = append(texts, p.Text)
	}
	if !slices.Equal(texts, []string{"  ", "/*c*/"}) {
		t.Fatalf("leading pieces = %q", texts)
	}
	if tr := tok.TrailingTrivia(); tr.Text() != " // tail" || tr.TextRange().Start != 8 {
		t.Fatalf("trailing = %q at %v", tr.Text(), tr.TextRange())
	}
	if root.TextTrimmed() != "x" {
		t.Fatalf("node trimmed = %q", root.TextTrimmed())
	}
}

func TestRangesAreContiguous(t *testing.T) {
	root := buildOnePlusOne(t, nil)
	checkRanges(t, root)
}

func checkRanges(t *testing.T, n SyntaxNode) {
	t.Helper()
	r := n.TextRange()
	next := r.Start
	for el := range n.ChildrenWithTokens() {
		cr := el.TextRange()
		if !r.ContainsRange(cr) {
			t.Fatalf("%s %v escapes parent %s %v", el.Kind(), cr, n.Kind(), r)
		}
		if cr.Start != next {
			t.Fatalf("%s starts at %d, expected %d", el.Kind(), cr.Start, next)
		}
		next = cr.End
		if c, ok := el.AsNode(); ok {
			checkRanges(t, c)
		}
	}
	if next != r.End {
		t.Fatalf("%s children end at %d, node ends at %d", n.Kind(), next, r.End)
	}
}

func TestNavigation(t *testing.T) {
	root := buildOnePlusOne(t, nil)
	bin, _ := root.FirstChild()
	left, _ := bin.FirstChild()

	right, ok := left.NextSibling()
	if !ok || right.TextRange().Start != 4 {
		t.Fatalf("NextSibling = %v %v", right.Kind(), ok)
	}
	if back, ok := right.PrevSibling(); !ok || !back.Equal(left) {
		t.Fatalf("PrevSibling did not return left operand")
	}

	var kinds []Kind
	for a := range right.Ancestors() {
		kinds = append(kinds, a.Kind())
	}
	want := []Kind{NumberLiteralExpression, BinaryExpression, ExpressionStatement}
	if !slices.Equal(kinds, want) {
		t.Fatalf("ancestors = %v", kinds)
	}

	first, _ := root.FirstToken()
	var toks []string
	for tok, ok := first, true; ok; tok, ok = tok.NextToken() {
		toks = append(toks, tok.TextTrimmed())
	}
	if strings.Join(toks, ",") != "1,+,1" {
		t.Fatalf("token chain = %v", toks)
	}
	last, _ := root.LastToken()
	if prev, ok := last.PrevToken(); !ok || prev.Kind() != Plus {
		t.Fatalf("PrevToken = %v", prev.Kind())
	}

	if tok, ok := root.TokenAtOffset(2); !ok || tok.Kind() != Plus {
		t.Fatalf("TokenAtOffset(2) = %v", tok.Kind())
	}
	if _, ok := root.TokenAtOffset(5); ok {
		t.Fatalf("offset past the end must miss")
	}
	if el := root.CoveringElement(source.TextRange{Start: 4, End: 5}); el.Kind() != NumberLit {
		t.Fatalf("covering = %s", el.Kind())
	}
}

func TestPreorderSkipSubtree(t *testing.T) {
	root := buildOnePlusOne(t, nil)
	var seen []string
	p := root.Preorder()
	for ev, ok := p.Next(); ok; ev, ok = p.Next() {
		seen = append(seen, ev.Kind.String()+":"+ev.Node.Kind().String())
		if ev.Kind == Enter && ev.Node.Kind() == BinaryExpression {
			p.SkipSubtree()
		}
	}
	want := []string{
		"Enter:ExpressionStatement",
		"Enter:BinaryExpression",
		"Leave:BinaryExpression",
		"Leave:ExpressionStatement",
	}
	if !slices.Equal(seen, want) {
		t.Fatalf("events = %v", seen)
	}

	count := 0
	for range root.Descendants() {
		count++
	}
	if count != 4 {
		t.Fatalf("descendants = %d", count)
	}
}

func TestReplaceNodeKeepsUntouchedSubtrees(t *testing.T) {
	root := buildOnePlusOne(t, nil)
	bin, _ := root.FirstChild()
	left, _ := bin.FirstChild()
	right, _ := bin.LastChild()

	two := NewGreenNode(NumberLiteralExpression, []GreenElement{TokenElement(NewGreenToken(NumberLit, "2", nil, nil))})
	newRoot, ok := ReplaceNode(root, right, two)
	if !ok {
		t.Fatalf("replace failed")
	}
	if newRoot.Text() != "1 + 2" || root.Text() != "1 + 1" {
		t.Fatalf("new %q old %q", newRoot.Text(), root.Text())
	}
	newBin, _ := newRoot.FirstChild()
	newLeft, _ := newBin.FirstChild()
	if newLeft.Green() != left.Green() {
		t.Fatalf("left operand was rebuilt")
	}

	other := buildOnePlusOne(t, nil)
	otherBin, _ := other.FirstChild()
	if _, ok := ReplaceNode(NewRoot(NewGreenNode(Module, nil)), otherBin, two); ok {
		t.Fatalf("foreign target must not be found")
	}
}

func TestReplaceChild(t *testing.T) {
	root := buildOnePlusOne(t, nil)
	bin, _ := root.FirstChild()
	plus, ok := bin.Slot(1)
	if !ok || plus.Kind() != Plus {
		t.Fatalf("slot 1 = %v", plus.Kind())
	}

	minus := TokenElement(NewGreenToken(Minus, "- ", nil, ws1))
	newRoot, ok := bin.ReplaceChild(plus, minus)
	if !ok {
		t.Fatalf("replace failed")
	}
	if newRoot.Text() != "1 - 1" || root.Text() != "1 + 1" {
		t.Fatalf("new %q old %q", newRoot.Text(), root.Text())
	}

	// an empty element leaves a missing slot behind
	cleared, ok := bin.ReplaceChild(plus, GreenElement{})
	if !ok || cleared.Text() != "1 1" {
		t.Fatalf("cleared %q, %v", cleared.Text(), ok)
	}
	clearedBin, _ := cleared.FirstChild()
	if _, ok := clearedBin.Slot(1); ok || clearedBin.SlotCount() != 3 {
		t.Fatalf("operator slot should be empty")
	}

	if _, ok := root.ReplaceChild(plus, minus); ok {
		t.Fatalf("grandchild must not be replaced through the root")
	}
}

func TestMissingSlotError(t *testing.T) {
	root := buildOnePlusOne(t, nil)
	_, err := RequiredToken(root, 1, "semicolon")
	if err == nil {
		t.Fatalf("expected error")
	}
	var mse *MissingSlotError
	if !errors.As(err, &mse) || mse.Parent != ExpressionStatement || !errors.Is(err, ErrMissingSlot) {
		t.Fatalf("unexpected error %v", err)
	}
	if _, ok := OptionalToken(root, 1); ok {
		t.Fatalf("optional lookup should miss")
	}
}

func TestDebugString(t *testing.T) {
	root := buildOnePlusOne(t, nil)
	out := root.DebugString()
	for _, want := range []string{"ExpressionStatement@0..5", "  BinaryExpression@0..5", "Plus@2..4 \"+\" [] [Whitespace(1)]", "(missing)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump missing %q:\n%s", want, out)
		}
	}
}
