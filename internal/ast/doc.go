// Package ast provides typed views over red syntax nodes.
//
// Every view wraps a syntax.SyntaxNode of one kind and exposes its slots by
// name. Required children are returned with an error when the slot is
// empty (the parser recovered from an error there); optional children are
// returned with an ok flag. Unions such as AnyExpression cover every kind
// that may appear in a position and resolve to a concrete view via Variant.
package ast
