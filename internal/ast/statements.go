package ast

import "lintel/internal/syntax"

type Module struct{ node }

func CastModule(n syntax.SyntaxNode) (Module, bool) {
	return castKind(n, syntax.Module, func(b node) Module { return Module{b} })
}

func (m Module) Items() (List[AnyStatement], error) {
	return requiredList(m.node, 0, "items", syntax.StatementList, CastAnyStatement)
}
func (m Module) EOFToken() (syntax.SyntaxToken, error) { return m.token(1, "EOF") }

type BlockStatement struct{ node }

func CastBlockStatement(n syntax.SyntaxNode) (BlockStatement, bool) {
	return castKind(n, syntax.BlockStatement, func(b node) BlockStatement { return BlockStatement{b} })
}

func (s BlockStatement) LBrace() (syntax.SyntaxToken, error) { return s.token(0, "' {'") }
func (s BlockStatement) Statements() (List[AnyStatement], error) {
	return requiredList(s.node, 1, "statements", syntax.StatementList, CastAnyStatement)
}
func (s BlockStatement) RBrace() (syntax.SyntaxToken, error) { return s.token(2, "'}'") }

type ExpressionStatement struct{ node }

func CastExpressionStatement(n syntax.SyntaxNode) (ExpressionStatement, bool) {
	return castKind(n, syntax.ExpressionStatement, func(b node) ExpressionStatement { return ExpressionStatement{b} })
}

func (s ExpressionStatement) Expression() (AnyExpression, error) {
	return required(s.node, 0, "expression", CastAnyExpression)
}
func (s ExpressionStatement) Semicolon() (syntax.SyntaxToken, bool) { return s.optToken(1) }

type EmptyStatement struct{ node }

func CastEmptyStatement(n syntax.SyntaxNode) (EmptyStatement, bool) {
	return castKind(n, syntax.EmptyStatement, func(b node) EmptyStatement { return EmptyStatement{b} })
}

func (s EmptyStatement) Semicolon() (syntax.SyntaxToken, error) { return s.token(0, "';'") }

// IfStatement: if ( test ) consequent else-clause?
type IfStatement struct{ node }

func CastIfStatement(n syntax.SyntaxNode) (IfStatement, bool) {
	return castKind(n, syntax.IfStatement, func(b node) IfStatement { return IfStatement{b} })
}

func (s IfStatement) IfToken() (syntax.SyntaxToken, error) { return s.token(0, "'if'") }
func (s IfStatement) LParen() (syntax.SyntaxToken, error)  { return s.token(1, "'('") }
func (s IfStatement) Test() (AnyExpression, error) {
	return required(s.node, 2, "test", CastAnyExpression)
}
func (s IfStatement) RParen() (syntax.SyntaxToken, error) { return s.token(3, "')'") }
func (s IfStatement) Consequent() (AnyStatement, error) {
	return required(s.node, 4, "consequent", CastAnyStatement)
}
func (s IfStatement) ElseClause() (ElseClause, bool) { return optional(s.node, 5, CastElseClause) }

type ElseClause struct{ node }

func CastElseClause(n syntax.SyntaxNode) (ElseClause, bool) {
	return castKind(n, syntax.ElseClause, func(b node) ElseClause { return ElseClause{b} })
}

func (c ElseClause) ElseToken() (syntax.SyntaxToken, error) { return c.token(0, "'else'") }
func (c ElseClause) Alternate() (AnyStatement, error) {
	return required(c.node, 1, "alternate", CastAnyStatement)
}

type VariableStatement struct{ node }

func CastVariableStatement(n syntax.SyntaxNode) (VariableStatement, bool) {
	return castKind(n, syntax.VariableStatement, func(b node) VariableStatement { return VariableStatement{b} })
}

func (s VariableStatement) Declaration() (VariableDeclaration, error) {
	return required(s.node, 0, "declaration", CastVariableDeclaration)
}
func (s VariableStatement) Semicolon() (syntax.SyntaxToken, bool) { return s.optToken(1) }

type ReturnStatement struct{ node }

func CastReturnStatement(n syntax.SyntaxNode) (ReturnStatement, bool) {
	return castKind(n, syntax.ReturnStatement, func(b node) ReturnStatement { return ReturnStatement{b} })
}

func (s ReturnStatement) ReturnToken() (syntax.SyntaxToken, error) { return s.token(0, "'return'") }
func (s ReturnStatement) Argument() (AnyExpression, bool) {
	return optional(s.node, 1, CastAnyExpression)
}
func (s ReturnStatement) Semicolon() (syntax.SyntaxToken, bool) { return s.optToken(2) }

type WhileStatement struct{ node }

func CastWhileStatement(n syntax.SyntaxNode) (WhileStatement, bool) {
	return castKind(n, syntax.WhileStatement, func(b node) WhileStatement { return WhileStatement{b} })
}

func (s WhileStatement) WhileToken() (syntax.SyntaxToken, error) { return s.token(0, "'while'") }
func (s WhileStatement) Test() (AnyExpression, error) {
	return required(s.node, 2, "test", CastAnyExpression)
}
func (s WhileStatement) Body() (AnyStatement, error) {
	return required(s.node, 4, "body", CastAnyStatement)
}

// ForStatement: for ( init? ; test? ; update? ) body
type ForStatement struct{ node }

func CastForStatement(n syntax.SyntaxNode) (ForStatement, bool) {
	return castKind(n, syntax.ForStatement, func(b node) ForStatement { return ForStatement{b} })
}

func (s ForStatement) ForToken() (syntax.SyntaxToken, error) { return s.token(0, "'for'") }
func (s ForStatement) Initializer() (AnyForInitializer, bool) {
	return optional(s.node, 2, CastAnyForInitializer)
}
func (s ForStatement) Test() (AnyExpression, bool)   { return optional(s.node, 4, CastAnyExpression) }
func (s ForStatement) Update() (AnyExpression, bool) { return optional(s.node, 6, CastAnyExpression) }
func (s ForStatement) Body() (AnyStatement, error) {
	return required(s.node, 8, "body", CastAnyStatement)
}

type TryStatement struct{ node }

func CastTryStatement(n syntax.SyntaxNode) (TryStatement, bool) {
	return castKind(n, syntax.TryStatement, func(b node) TryStatement { return TryStatement{b} })
}

func (s TryStatement) TryToken() (syntax.SyntaxToken, error) { return s.token(0, "'try'") }
func (s TryStatement) Body() (BlockStatement, error) {
	return required(s.node, 1, "body", CastBlockStatement)
}
func (s TryStatement) CatchClause() (CatchClause, bool) { return optional(s.node, 2, CastCatchClause) }
func (s TryStatement) FinallyClause() (FinallyClause, bool) {
	return optional(s.node, 3, CastFinallyClause)
}

type CatchClause struct{ node }

func CastCatchClause(n syntax.SyntaxNode) (CatchClause, bool) {
	return castKind(n, syntax.CatchClause, func(b node) CatchClause { return CatchClause{b} })
}

func (c CatchClause) CatchToken() (syntax.SyntaxToken, error) { return c.token(0, "'catch'") }
func (c CatchClause) Declaration() (CatchDeclaration, bool) {
	return optional(c.node, 1, CastCatchDeclaration)
}
func (c CatchClause) Body() (BlockStatement, error) {
	return required(c.node, 2, "body", CastBlockStatement)
}

type CatchDeclaration struct{ node }

func CastCatchDeclaration(n syntax.SyntaxNode) (CatchDeclaration, bool) {
	return castKind(n, syntax.CatchDeclaration, func(b node) CatchDeclaration { return CatchDeclaration{b} })
}

func (d CatchDeclaration) Binding() (IdentifierBinding, error) {
	return required(d.node, 1, "binding", CastIdentifierBinding)
}

type FinallyClause struct{ node }

func CastFinallyClause(n syntax.SyntaxNode) (FinallyClause, bool) {
	return castKind(n, syntax.FinallyClause, func(b node) FinallyClause { return FinallyClause{b} })
}

func (c FinallyClause) Body() (BlockStatement, error) {
	return required(c.node, 1, "body", CastBlockStatement)
}

type ThrowStatement struct{ node }

func CastThrowStatement(n syntax.SyntaxNode) (ThrowStatement, bool) {
	return castKind(n, syntax.ThrowStatement, func(b node) ThrowStatement { return ThrowStatement{b} })
}

func (s ThrowStatement) Argument() (AnyExpression, error) {
	return required(s.node, 1, "argument", CastAnyExpression)
}

type BreakStatement struct{ node }

func CastBreakStatement(n syntax.SyntaxNode) (BreakStatement, bool) {
	return castKind(n, syntax.BreakStatement, func(b node) BreakStatement { return BreakStatement{b} })
}

type ContinueStatement struct{ node }

func CastContinueStatement(n syntax.SyntaxNode) (ContinueStatement, bool) {
	return castKind(n, syntax.ContinueStatement, func(b node) ContinueStatement { return ContinueStatement{b} })
}

type DebuggerStatement struct{ node }

func CastDebuggerStatement(n syntax.SyntaxNode) (DebuggerStatement, bool) {
	return castKind(n, syntax.DebuggerStatement, func(b node) DebuggerStatement { return DebuggerStatement{b} })
}

func (s DebuggerStatement) DebuggerToken() (syntax.SyntaxToken, error) {
	return s.token(0, "'debugger'")
}
