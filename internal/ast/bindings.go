package ast

import "lintel/internal/syntax"

// VariableDeclaration: var|let|const declarators
type VariableDeclaration struct{ node }

func CastVariableDeclaration(n syntax.SyntaxNode) (VariableDeclaration, bool) {
	return castKind(n, syntax.VariableDeclaration, func(b node) VariableDeclaration { return VariableDeclaration{b} })
}

func (d VariableDeclaration) KindToken() (syntax.SyntaxToken, error) {
	return d.token(0, "declaration kind")
}

func (d VariableDeclaration) Declarators() (List[VariableDeclarator], error) {
	return requiredList(d.node, 1, "declarators", syntax.VariableDeclaratorList, CastVariableDeclarator)
}

// IsVar reports a function-scoped declaration.
func (d VariableDeclaration) IsVar() bool {
	tok, err := d.KindToken()
	return err == nil && tok.Kind() == syntax.VarKw
}

func (d VariableDeclaration) IsConst() bool {
	tok, err := d.KindToken()
	return err == nil && tok.Kind() == syntax.ConstKw
}

type VariableDeclarator struct{ node }

func CastVariableDeclarator(n syntax.SyntaxNode) (VariableDeclarator, bool) {
	return castKind(n, syntax.VariableDeclarator, func(b node) VariableDeclarator { return VariableDeclarator{b} })
}

func (d VariableDeclarator) ID() (IdentifierBinding, error) {
	return required(d.node, 0, "id", CastIdentifierBinding)
}
func (d VariableDeclarator) Initializer() (InitializerClause, bool) {
	return optional(d.node, 1, CastInitializerClause)
}

type InitializerClause struct{ node }

func CastInitializerClause(n syntax.SyntaxNode) (InitializerClause, bool) {
	return castKind(n, syntax.InitializerClause, func(b node) InitializerClause { return InitializerClause{b} })
}

func (c InitializerClause) Expression() (AnyExpression, error) {
	return required(c.node, 1, "expression", CastAnyExpression)
}

type IdentifierBinding struct{ node }

func CastIdentifierBinding(n syntax.SyntaxNode) (IdentifierBinding, bool) {
	return castKind(n, syntax.IdentifierBinding, func(b node) IdentifierBinding { return IdentifierBinding{b} })
}

func (b IdentifierBinding) NameToken() (syntax.SyntaxToken, error) { return b.token(0, "name") }

func (b IdentifierBinding) Name() (string, error) { return tokenText(b.NameToken()) }

type FunctionDeclaration struct{ node }

func CastFunctionDeclaration(n syntax.SyntaxNode) (FunctionDeclaration, bool) {
	return castKind(n, syntax.FunctionDeclaration, func(b node) FunctionDeclaration { return FunctionDeclaration{b} })
}

func (f FunctionDeclaration) ID() (IdentifierBinding, error) {
	return required(f.node, 1, "id", CastIdentifierBinding)
}
func (f FunctionDeclaration) Parameters() (Parameters, error) { return AnyFunction(f).Parameters() }
func (f FunctionDeclaration) Body() (FunctionBody, error)     { return AnyFunction(f).Body() }

type FunctionExpression struct{ node }

func CastFunctionExpression(n syntax.SyntaxNode) (FunctionExpression, bool) {
	return castKind(n, syntax.FunctionExpression, func(b node) FunctionExpression { return FunctionExpression{b} })
}

func (f FunctionExpression) ID() (IdentifierBinding, bool)   { return AnyFunction(f).ID() }
func (f FunctionExpression) Parameters() (Parameters, error) { return AnyFunction(f).Parameters() }
func (f FunctionExpression) Body() (FunctionBody, error)     { return AnyFunction(f).Body() }

type Parameters struct{ node }

func CastParameters(n syntax.SyntaxNode) (Parameters, bool) {
	return castKind(n, syntax.Parameters, func(b node) Parameters { return Parameters{b} })
}

func (p Parameters) Items() (List[FormalParameter], error) {
	return requiredList(p.node, 1, "items", syntax.ParameterList, CastFormalParameter)
}

type FormalParameter struct{ node }

func CastFormalParameter(n syntax.SyntaxNode) (FormalParameter, bool) {
	return castKind(n, syntax.FormalParameter, func(b node) FormalParameter { return FormalParameter{b} })
}

func (p FormalParameter) Binding() (IdentifierBinding, error) {
	return required(p.node, 0, "binding", CastIdentifierBinding)
}
func (p FormalParameter) Initializer() (InitializerClause, bool) {
	return optional(p.node, 1, CastInitializerClause)
}

type FunctionBody struct{ node }

func CastFunctionBody(n syntax.SyntaxNode) (FunctionBody, bool) {
	return castKind(n, syntax.FunctionBody, func(b node) FunctionBody { return FunctionBody{b} })
}

func (b FunctionBody) Statements() (List[AnyStatement], error) {
	return requiredList(b.node, 1, "statements", syntax.StatementList, CastAnyStatement)
}

func tokenText(tok syntax.SyntaxToken, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return tok.TextTrimmed(), nil
}
