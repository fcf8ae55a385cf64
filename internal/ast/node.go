package ast

import (
	"fmt"

	"lintel/internal/source"
	"lintel/internal/syntax"
)

// Node is implemented by every typed view.
type Node interface {
	Syntax() syntax.SyntaxNode
}

type node struct {
	n syntax.SyntaxNode
}

func (x node) Syntax() syntax.SyntaxNode { return x.n }

// Range is the trimmed range: trivia around the node is excluded.
func (x node) Range() source.TextRange { return x.n.TextTrimmedRange() }

func (x node) String() string { return x.n.TextTrimmed() }

func (x node) IsZero() bool { return x.n.IsZero() }

func (x node) token(slot int, name string) (syntax.SyntaxToken, error) {
	return syntax.RequiredToken(x.n, slot, name)
}

func (x node) optToken(slot int) (syntax.SyntaxToken, bool) {
	return syntax.OptionalToken(x.n, slot)
}

// required fetches slot and casts it; a wrong kind counts as missing.
func required[T any](x node, slot int, name string, cast func(syntax.SyntaxNode) (T, bool)) (T, error) {
	c, err := syntax.RequiredNode(x.n, slot, name)
	if err != nil {
		var zero T
		return zero, err
	}
	v, ok := cast(c)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: found %s", &syntax.MissingSlotError{Parent: x.n.Kind(), Slot: slot, Name: name}, c.Kind())
	}
	return v, nil
}

func optional[T any](x node, slot int, cast func(syntax.SyntaxNode) (T, bool)) (T, bool) {
	c, ok := syntax.OptionalNode(x.n, slot)
	if !ok {
		var zero T
		return zero, false
	}
	return cast(c)
}

func castKind[T any](n syntax.SyntaxNode, k syntax.Kind, wrap func(node) T) (T, bool) {
	if n.IsZero() || n.Kind() != k {
		var zero T
		return zero, false
	}
	return wrap(node{n}), true
}

func castSet[T any](n syntax.SyntaxNode, set syntax.KindSet, wrap func(node) T) (T, bool) {
	if n.IsZero() || !set.Contains(n.Kind()) {
		var zero T
		return zero, false
	}
	return wrap(node{n}), true
}

// Bogus wraps any of the bogus kinds produced by error recovery.
type Bogus struct{ node }

func CastBogus(n syntax.SyntaxNode) (Bogus, bool) {
	if n.IsZero() || !n.Kind().IsBogus() {
		return Bogus{}, false
	}
	return Bogus{node{n}}, true
}

// Cast returns the concrete view for n, or nil for lists, tokens-only kinds
// and unknown kinds.
func Cast(n syntax.SyntaxNode) Node {
	if n.IsZero() {
		return nil
	}
	if wrap, ok := views[n.Kind()]; ok {
		return wrap(node{n})
	}
	if n.Kind().IsBogus() {
		return Bogus{node{n}}
	}
	return nil
}

var views = map[syntax.Kind]func(node) Node{
	syntax.Module:                        func(b node) Node { return Module{b} },
	syntax.BlockStatement:                func(b node) Node { return BlockStatement{b} },
	syntax.ExpressionStatement:           func(b node) Node { return ExpressionStatement{b} },
	syntax.EmptyStatement:                func(b node) Node { return EmptyStatement{b} },
	syntax.IfStatement:                   func(b node) Node { return IfStatement{b} },
	syntax.ElseClause:                    func(b node) Node { return ElseClause{b} },
	syntax.VariableStatement:             func(b node) Node { return VariableStatement{b} },
	syntax.VariableDeclaration:           func(b node) Node { return VariableDeclaration{b} },
	syntax.VariableDeclarator:            func(b node) Node { return VariableDeclarator{b} },
	syntax.InitializerClause:             func(b node) Node { return InitializerClause{b} },
	syntax.IdentifierBinding:             func(b node) Node { return IdentifierBinding{b} },
	syntax.FunctionDeclaration:           func(b node) Node { return FunctionDeclaration{b} },
	syntax.FunctionExpression:            func(b node) Node { return FunctionExpression{b} },
	syntax.Parameters:                    func(b node) Node { return Parameters{b} },
	syntax.FormalParameter:               func(b node) Node { return FormalParameter{b} },
	syntax.FunctionBody:                  func(b node) Node { return FunctionBody{b} },
	syntax.ReturnStatement:               func(b node) Node { return ReturnStatement{b} },
	syntax.WhileStatement:                func(b node) Node { return WhileStatement{b} },
	syntax.ForStatement:                  func(b node) Node { return ForStatement{b} },
	syntax.TryStatement:                  func(b node) Node { return TryStatement{b} },
	syntax.CatchClause:                   func(b node) Node { return CatchClause{b} },
	syntax.CatchDeclaration:              func(b node) Node { return CatchDeclaration{b} },
	syntax.FinallyClause:                 func(b node) Node { return FinallyClause{b} },
	syntax.ThrowStatement:                func(b node) Node { return ThrowStatement{b} },
	syntax.BreakStatement:                func(b node) Node { return BreakStatement{b} },
	syntax.ContinueStatement:             func(b node) Node { return ContinueStatement{b} },
	syntax.DebuggerStatement:             func(b node) Node { return DebuggerStatement{b} },
	syntax.IdentifierExpression:          func(b node) Node { return IdentifierExpression{b} },
	syntax.ReferenceIdentifier:           func(b node) Node { return ReferenceIdentifier{b} },
	syntax.NumberLiteralExpression:       func(b node) Node { return LiteralExpression{b} },
	syntax.StringLiteralExpression:       func(b node) Node { return LiteralExpression{b} },
	syntax.BooleanLiteralExpression:      func(b node) Node { return LiteralExpression{b} },
	syntax.NullLiteralExpression:         func(b node) Node { return LiteralExpression{b} },
	syntax.ThisExpression:                func(b node) Node { return ThisExpression{b} },
	syntax.UnaryExpression:               func(b node) Node { return UnaryExpression{b} },
	syntax.PreUpdateExpression:           func(b node) Node { return PreUpdateExpression{b} },
	syntax.PostUpdateExpression:          func(b node) Node { return PostUpdateExpression{b} },
	syntax.BinaryExpression:              func(b node) Node { return BinaryExpression{binaryLike{b}} },
	syntax.LogicalExpression:             func(b node) Node { return LogicalExpression{binaryLike{b}} },
	syntax.AssignmentExpression:          func(b node) Node { return AssignmentExpression{b} },
	syntax.IdentifierAssignment:          func(b node) Node { return IdentifierAssignment{b} },
	syntax.ParenthesizedExpression:       func(b node) Node { return ParenthesizedExpression{b} },
	syntax.CallExpression:                func(b node) Node { return CallExpression{b} },
	syntax.CallArguments:                 func(b node) Node { return CallArguments{b} },
	syntax.NewExpression:                 func(b node) Node { return NewExpression{b} },
	syntax.StaticMemberExpression:        func(b node) Node { return StaticMemberExpression{b} },
	syntax.ComputedMemberExpression:      func(b node) Node { return ComputedMemberExpression{b} },
	syntax.Name:                          func(b node) Node { return Name{b} },
	syntax.ConditionalExpression:         func(b node) Node { return ConditionalExpression{b} },
	syntax.ArrayExpression:               func(b node) Node { return ArrayExpression{b} },
	syntax.ArrayHole:                     func(b node) Node { return ArrayHole{b} },
	syntax.ObjectExpression:              func(b node) Node { return ObjectExpression{b} },
	syntax.PropertyObjectMember:          func(b node) Node { return PropertyObjectMember{b} },
	syntax.ShorthandPropertyObjectMember: func(b node) Node { return ShorthandPropertyObjectMember{b} },
	syntax.LiteralMemberName:             func(b node) Node { return LiteralMemberName{b} },
}
