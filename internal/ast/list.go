package ast

import (
	"iter"

	"lintel/internal/syntax"
)

// List is a view over a list node. Separator tokens are skipped by
// Elements and exposed by Separators.
type List[T any] struct {
	node
	cast func(syntax.SyntaxNode) (T, bool)
}

func newList[T any](n syntax.SyntaxNode, cast func(syntax.SyntaxNode) (T, bool)) List[T] {
	return List[T]{node: node{n}, cast: cast}
}

// Elements yields the elements that cast to T, in source order.
func (l List[T]) Elements() iter.Seq[T] {
	return func(yield func(T) bool) {
		if l.n.IsZero() {
			return
		}
		for c := range l.n.Children() {
			if v, ok := l.cast(c); ok && !yield(v) {
				return
			}
		}
	}
}

func (l List[T]) Len() int {
	n := 0
	for range l.Elements() {
		n++
	}
	return n
}

func (l List[T]) Separators() iter.Seq[syntax.SyntaxToken] {
	return func(yield func(syntax.SyntaxToken) bool) {
		if l.n.IsZero() {
			return
		}
		for el := range l.n.ChildrenWithTokens() {
			if t, ok := el.AsToken(); ok && !yield(t) {
				return
			}
		}
	}
}

func requiredList[T any](x node, slot int, name string, kind syntax.Kind, cast func(syntax.SyntaxNode) (T, bool)) (List[T], error) {
	return required(x, slot, name, func(n syntax.SyntaxNode) (List[T], bool) {
		if n.Kind() != kind {
			return List[T]{}, false
		}
		return newList(n, cast), true
	})
}
