package ast

import "lintel/internal/syntax"

var (
	AnyExpressionKinds = syntax.KindSetOf(
		syntax.IdentifierExpression, syntax.NumberLiteralExpression, syntax.StringLiteralExpression,
		syntax.BooleanLiteralExpression, syntax.NullLiteralExpression, syntax.ThisExpression,
		syntax.UnaryExpression, syntax.PreUpdateExpression, syntax.PostUpdateExpression,
		syntax.BinaryExpression, syntax.LogicalExpression, syntax.AssignmentExpression,
		syntax.ParenthesizedExpression, syntax.CallExpression, syntax.NewExpression,
		syntax.StaticMemberExpression, syntax.ComputedMemberExpression, syntax.ConditionalExpression,
		syntax.ArrayExpression, syntax.ObjectExpression, syntax.FunctionExpression,
		syntax.IdentifierAssignment, syntax.BogusExpression,
	)

	AnyStatementKinds = syntax.KindSetOf(
		syntax.BlockStatement, syntax.ExpressionStatement, syntax.EmptyStatement, syntax.IfStatement,
		syntax.VariableStatement, syntax.FunctionDeclaration, syntax.ReturnStatement,
		syntax.WhileStatement, syntax.ForStatement, syntax.TryStatement, syntax.ThrowStatement,
		syntax.BreakStatement, syntax.ContinueStatement, syntax.DebuggerStatement,
		syntax.BogusStatement,
	)

	AnyAssignmentKinds = syntax.KindSetOf(
		syntax.IdentifierAssignment, syntax.StaticMemberExpression, syntax.ComputedMemberExpression,
		syntax.BogusExpression,
	)

	AnyObjectMemberKinds = syntax.KindSetOf(syntax.PropertyObjectMember, syntax.ShorthandPropertyObjectMember)

	AnyArrayElementKinds = AnyExpressionKinds.Union(syntax.KindSetOf(syntax.ArrayHole))

	AnyFunctionKinds = syntax.KindSetOf(syntax.FunctionDeclaration, syntax.FunctionExpression)

	// AnyForInitializerKinds: `for (var i = 0; ...)` or `for (i = 0; ...)`.
	AnyForInitializerKinds = AnyExpressionKinds.Union(syntax.KindSetOf(syntax.VariableDeclaration))
)

type AnyExpression struct{ node }

func CastAnyExpression(n syntax.SyntaxNode) (AnyExpression, bool) {
	return castSet(n, AnyExpressionKinds, func(b node) AnyExpression { return AnyExpression{b} })
}

func (e AnyExpression) Kind() syntax.Kind { return e.n.Kind() }

// Variant returns the concrete expression view.
func (e AnyExpression) Variant() Node { return Cast(e.n) }

// OmitParentheses strips any number of enclosing parentheses.
func (e AnyExpression) OmitParentheses() AnyExpression {
	for e.n.Kind() == syntax.ParenthesizedExpression {
		inner, err := ParenthesizedExpression{e.node}.Expression()
		if err != nil {
			return e
		}
		e = inner
	}
	return e
}

type AnyStatement struct{ node }

func CastAnyStatement(n syntax.SyntaxNode) (AnyStatement, bool) {
	return castSet(n, AnyStatementKinds, func(b node) AnyStatement { return AnyStatement{b} })
}

func (s AnyStatement) Kind() syntax.Kind { return s.n.Kind() }
func (s AnyStatement) Variant() Node     { return Cast(s.n) }

// AnyAssignment is the target of an assignment or update.
type AnyAssignment struct{ node }

func CastAnyAssignment(n syntax.SyntaxNode) (AnyAssignment, bool) {
	return castSet(n, AnyAssignmentKinds, func(b node) AnyAssignment { return AnyAssignment{b} })
}

func (a AnyAssignment) Kind() syntax.Kind { return a.n.Kind() }
func (a AnyAssignment) Variant() Node     { return Cast(a.n) }

// anyAssignmentOrExpression accepts targets that failed validation too.
func anyAssignmentOrExpression(n syntax.SyntaxNode) (AnyAssignment, bool) {
	return castSet(n, AnyAssignmentKinds.Union(AnyExpressionKinds), func(b node) AnyAssignment { return AnyAssignment{b} })
}

type AnyObjectMember struct{ node }

func CastAnyObjectMember(n syntax.SyntaxNode) (AnyObjectMember, bool) {
	return castSet(n, AnyObjectMemberKinds, func(b node) AnyObjectMember { return AnyObjectMember{b} })
}

func (m AnyObjectMember) Variant() Node { return Cast(m.n) }

type AnyArrayElement struct{ node }

func CastAnyArrayElement(n syntax.SyntaxNode) (AnyArrayElement, bool) {
	return castSet(n, AnyArrayElementKinds, func(b node) AnyArrayElement { return AnyArrayElement{b} })
}

func (e AnyArrayElement) IsHole() bool { return e.n.Kind() == syntax.ArrayHole }

func (e AnyArrayElement) Expression() (AnyExpression, bool) {
	return CastAnyExpression(e.n)
}

type AnyFunction struct{ node }

func CastAnyFunction(n syntax.SyntaxNode) (AnyFunction, bool) {
	return castSet(n, AnyFunctionKinds, func(b node) AnyFunction { return AnyFunction{b} })
}

// ID is the function name; optional for expressions.
func (f AnyFunction) ID() (IdentifierBinding, bool) { return optional(f.node, 1, CastIdentifierBinding) }
func (f AnyFunction) Parameters() (Parameters, error) {
	return required(f.node, 2, "parameters", CastParameters)
}
func (f AnyFunction) Body() (FunctionBody, error) {
	return required(f.node, 3, "body", CastFunctionBody)
}

type AnyForInitializer struct{ node }

func CastAnyForInitializer(n syntax.SyntaxNode) (AnyForInitializer, bool) {
	return castSet(n, AnyForInitializerKinds, func(b node) AnyForInitializer { return AnyForInitializer{b} })
}

func (i AnyForInitializer) Variant() Node { return Cast(i.n) }
