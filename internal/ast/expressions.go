package ast

import "lintel/internal/syntax"

type IdentifierExpression struct{ node }

func CastIdentifierExpression(n syntax.SyntaxNode) (IdentifierExpression, bool) {
	return castKind(n, syntax.IdentifierExpression, func(b node) IdentifierExpression { return IdentifierExpression{b} })
}

func (e IdentifierExpression) Name() (ReferenceIdentifier, error) {
	return required(e.node, 0, "name", CastReferenceIdentifier)
}

// ReferenceIdentifier is an identifier in read position.
type ReferenceIdentifier struct{ node }

func CastReferenceIdentifier(n syntax.SyntaxNode) (ReferenceIdentifier, bool) {
	return castKind(n, syntax.ReferenceIdentifier, func(b node) ReferenceIdentifier { return ReferenceIdentifier{b} })
}

func (r ReferenceIdentifier) ValueToken() (syntax.SyntaxToken, error) { return r.token(0, "value") }
func (r ReferenceIdentifier) Name() (string, error)                   { return tokenText(r.ValueToken()) }

var literalKinds = syntax.KindSetOf(
	syntax.NumberLiteralExpression, syntax.StringLiteralExpression,
	syntax.BooleanLiteralExpression, syntax.NullLiteralExpression,
)

// LiteralExpression covers number, string, boolean and null literals.
type LiteralExpression struct{ node }

func CastLiteralExpression(n syntax.SyntaxNode) (LiteralExpression, bool) {
	return castSet(n, literalKinds, func(b node) LiteralExpression { return LiteralExpression{b} })
}

func (l LiteralExpression) Kind() syntax.Kind                       { return l.n.Kind() }
func (l LiteralExpression) ValueToken() (syntax.SyntaxToken, error) { return l.token(0, "value") }
func (l LiteralExpression) IsNull() bool                            { return l.n.Kind() == syntax.NullLiteralExpression }

type ThisExpression struct{ node }

type UnaryExpression struct{ node }

func CastUnaryExpression(n syntax.SyntaxNode) (UnaryExpression, bool) {
	return castKind(n, syntax.UnaryExpression, func(b node) UnaryExpression { return UnaryExpression{b} })
}

func (e UnaryExpression) OperatorToken() (syntax.SyntaxToken, error) { return e.token(0, "operator") }

// Operator returns the operator kind, e.g. syntax.Bang.
func (e UnaryExpression) Operator() (syntax.Kind, error) {
	tok, err := e.OperatorToken()
	if err != nil {
		return syntax.Tombstone, err
	}
	return tok.Kind(), nil
}

func (e UnaryExpression) Argument() (AnyExpression, error) {
	return required(e.node, 1, "argument", CastAnyExpression)
}

type PreUpdateExpression struct{ node }

func CastPreUpdateExpression(n syntax.SyntaxNode) (PreUpdateExpression, bool) {
	return castKind(n, syntax.PreUpdateExpression, func(b node) PreUpdateExpression { return PreUpdateExpression{b} })
}

func (e PreUpdateExpression) OperatorToken() (syntax.SyntaxToken, error) {
	return e.token(0, "operator")
}
func (e PreUpdateExpression) Operand() (AnyAssignment, error) {
	return required(e.node, 1, "operand", anyAssignmentOrExpression)
}

type PostUpdateExpression struct{ node }

func CastPostUpdateExpression(n syntax.SyntaxNode) (PostUpdateExpression, bool) {
	return castKind(n, syntax.PostUpdateExpression, func(b node) PostUpdateExpression { return PostUpdateExpression{b} })
}

func (e PostUpdateExpression) Operand() (AnyAssignment, error) {
	return required(e.node, 0, "operand", anyAssignmentOrExpression)
}
func (e PostUpdateExpression) OperatorToken() (syntax.SyntaxToken, error) {
	return e.token(1, "operator")
}

// binaryLike is shared by binary and logical expressions.
type binaryLike struct{ node }

func (e binaryLike) Left() (AnyExpression, error) {
	return required(e.node, 0, "left", CastAnyExpression)
}
func (e binaryLike) OperatorToken() (syntax.SyntaxToken, error) { return e.token(1, "operator") }
func (e binaryLike) Operator() (syntax.Kind, error) {
	tok, err := e.OperatorToken()
	if err != nil {
		return syntax.Tombstone, err
	}
	return tok.Kind(), nil
}
func (e binaryLike) Right() (AnyExpression, error) {
	return required(e.node, 2, "right", CastAnyExpression)
}

type BinaryExpression struct{ binaryLike }

func CastBinaryExpression(n syntax.SyntaxNode) (BinaryExpression, bool) {
	return castKind(n, syntax.BinaryExpression, func(b node) BinaryExpression { return BinaryExpression{binaryLike{b}} })
}

// IsEquality reports ==, !=, === and !==.
func (e BinaryExpression) IsEquality() bool {
	op, err := e.Operator()
	if err != nil {
		return false
	}
	switch op {
	case syntax.EqEq, syntax.BangEq, syntax.EqEqEq, syntax.BangEqEq:
		return true
	}
	return false
}

// LogicalExpression is &&, || or ??.
type LogicalExpression struct{ binaryLike }

func CastLogicalExpression(n syntax.SyntaxNode) (LogicalExpression, bool) {
	return castKind(n, syntax.LogicalExpression, func(b node) LogicalExpression { return LogicalExpression{binaryLike{b}} })
}

type AssignmentExpression struct{ node }

func CastAssignmentExpression(n syntax.SyntaxNode) (AssignmentExpression, bool) {
	return castKind(n, syntax.AssignmentExpression, func(b node) AssignmentExpression { return AssignmentExpression{b} })
}

func (e AssignmentExpression) Left() (AnyAssignment, error) {
	return required(e.node, 0, "left", anyAssignmentOrExpression)
}
func (e AssignmentExpression) OperatorToken() (syntax.SyntaxToken, error) {
	return e.token(1, "operator")
}
func (e AssignmentExpression) Right() (AnyExpression, error) {
	return required(e.node, 2, "right", CastAnyExpression)
}

// IdentifierAssignment is an identifier in write position.
type IdentifierAssignment struct{ node }

func CastIdentifierAssignment(n syntax.SyntaxNode) (IdentifierAssignment, bool) {
	return castKind(n, syntax.IdentifierAssignment, func(b node) IdentifierAssignment { return IdentifierAssignment{b} })
}

func (a IdentifierAssignment) NameToken() (syntax.SyntaxToken, error) { return a.token(0, "name") }
func (a IdentifierAssignment) Name() (string, error)                  { return tokenText(a.NameToken()) }

type ParenthesizedExpression struct{ node }

func CastParenthesizedExpression(n syntax.SyntaxNode) (ParenthesizedExpression, bool) {
	return castKind(n, syntax.ParenthesizedExpression, func(b node) ParenthesizedExpression { return ParenthesizedExpression{b} })
}

func (e ParenthesizedExpression) Expression() (AnyExpression, error) {
	return required(e.node, 1, "expression", CastAnyExpression)
}

type CallExpression struct{ node }

func CastCallExpression(n syntax.SyntaxNode) (CallExpression, bool) {
	return castKind(n, syntax.CallExpression, func(b node) CallExpression { return CallExpression{b} })
}

func (e CallExpression) Callee() (AnyExpression, error) {
	return required(e.node, 0, "callee", CastAnyExpression)
}
func (e CallExpression) Arguments() (CallArguments, error) {
	return required(e.node, 1, "arguments", CastCallArguments)
}

type CallArguments struct{ node }

func CastCallArguments(n syntax.SyntaxNode) (CallArguments, bool) {
	return castKind(n, syntax.CallArguments, func(b node) CallArguments { return CallArguments{b} })
}

func (a CallArguments) Args() (List[AnyExpression], error) {
	return requiredList(a.node, 1, "args", syntax.ArgumentList, CastAnyExpression)
}

type NewExpression struct{ node }

func CastNewExpression(n syntax.SyntaxNode) (NewExpression, bool) {
	return castKind(n, syntax.NewExpression, func(b node) NewExpression { return NewExpression{b} })
}

func (e NewExpression) Callee() (AnyExpression, error) {
	return required(e.node, 1, "callee", CastAnyExpression)
}
func (e NewExpression) Arguments() (CallArguments, bool) {
	return optional(e.node, 2, CastCallArguments)
}

type StaticMemberExpression struct{ node }

func CastStaticMemberExpression(n syntax.SyntaxNode) (StaticMemberExpression, bool) {
	return castKind(n, syntax.StaticMemberExpression, func(b node) StaticMemberExpression { return StaticMemberExpression{b} })
}

func (e StaticMemberExpression) Object() (AnyExpression, error) {
	return required(e.node, 0, "object", CastAnyExpression)
}
func (e StaticMemberExpression) Member() (Name, error) { return required(e.node, 2, "member", CastName) }

type ComputedMemberExpression struct{ node }

func CastComputedMemberExpression(n syntax.SyntaxNode) (ComputedMemberExpression, bool) {
	return castKind(n, syntax.ComputedMemberExpression, func(b node) ComputedMemberExpression { return ComputedMemberExpression{b} })
}

func (e ComputedMemberExpression) Object() (AnyExpression, error) {
	return required(e.node, 0, "object", CastAnyExpression)
}
func (e ComputedMemberExpression) Member() (AnyExpression, error) {
	return required(e.node, 2, "member", CastAnyExpression)
}

// Name is a property name after '.'.
type Name struct{ node }

func CastName(n syntax.SyntaxNode) (Name, bool) {
	return castKind(n, syntax.Name, func(b node) Name { return Name{b} })
}

func (n Name) ValueToken() (syntax.SyntaxToken, error) { return n.token(0, "value") }

type ConditionalExpression struct{ node }

func CastConditionalExpression(n syntax.SyntaxNode) (ConditionalExpression, bool) {
	return castKind(n, syntax.ConditionalExpression, func(b node) ConditionalExpression { return ConditionalExpression{b} })
}

func (e ConditionalExpression) Test() (AnyExpression, error) {
	return required(e.node, 0, "test", CastAnyExpression)
}
func (e ConditionalExpression) Consequent() (AnyExpression, error) {
	return required(e.node, 2, "consequent", CastAnyExpression)
}
func (e ConditionalExpression) Alternate() (AnyExpression, error) {
	return required(e.node, 4, "alternate", CastAnyExpression)
}

type ArrayExpression struct{ node }

func CastArrayExpression(n syntax.SyntaxNode) (ArrayExpression, bool) {
	return castKind(n, syntax.ArrayExpression, func(b node) ArrayExpression { return ArrayExpression{b} })
}

func (e ArrayExpression) Elements() (List[AnyArrayElement], error) {
	return requiredList(e.node, 1, "elements", syntax.ArrayElementList, CastAnyArrayElement)
}

// ArrayHole is an elision: the empty element in [1,,2].
type ArrayHole struct{ node }

type ObjectExpression struct{ node }

func CastObjectExpression(n syntax.SyntaxNode) (ObjectExpression, bool) {
	return castKind(n, syntax.ObjectExpression, func(b node) ObjectExpression { return ObjectExpression{b} })
}

func (e ObjectExpression) Members() (List[AnyObjectMember], error) {
	return requiredList(e.node, 1, "members", syntax.ObjectMemberList, CastAnyObjectMember)
}

type PropertyObjectMember struct{ node }

func (m PropertyObjectMember) Name() (LiteralMemberName, error) {
	return required(m.node, 0, "name", func(n syntax.SyntaxNode) (LiteralMemberName, bool) {
		return castKind(n, syntax.LiteralMemberName, func(b node) LiteralMemberName { return LiteralMemberName{b} })
	})
}
func (m PropertyObjectMember) Value() (AnyExpression, error) {
	return required(m.node, 2, "value", CastAnyExpression)
}

// ShorthandPropertyObjectMember is `{a}`: both the key and a read of a.
type ShorthandPropertyObjectMember struct{ node }

func (m ShorthandPropertyObjectMember) Name() (ReferenceIdentifier, error) {
	return required(m.node, 0, "name", CastReferenceIdentifier)
}

type LiteralMemberName struct{ node }

func (n LiteralMemberName) ValueToken() (syntax.SyntaxToken, error) { return n.token(0, "value") }
