package ast_test

import (
	"errors"
	"slices"
	"testing"

	"lintel/internal/ast"
	"lintel/internal/parser"
	"lintel/internal/syntax"
)

func first[T any](t *testing.T, src string, cast func(syntax.SyntaxNode) (T, bool)) T {
	t.Helper()
	root := parser.ParseText(src).Root
	for n := range root.Descendants() {
		if v, ok := cast(n); ok {
			return v
		}
	}
	t.Fatalf("no match in %q", src)
	var zero T
	return zero
}

func TestIfStatementAccessors(t *testing.T) {
	stmt := first(t, "if (!a) b(); else c;", ast.CastIfStatement)

	test, err := stmt.Test()
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	unary, ok := test.Variant().(ast.UnaryExpression)
	if !ok {
		t.Fatalf("test variant = %T", test.Variant())
	}
	if op, _ := unary.Operator(); op != syntax.Bang {
		t.Fatalf("operator = %v", op)
	}
	cons, err := stmt.Consequent()
	if err != nil || cons.Kind() != syntax.ExpressionStatement {
		t.Fatalf("consequent = %v, %v", cons.Kind(), err)
	}
	elseClause, ok := stmt.ElseClause()
	if !ok {
		t.Fatalf("missing else")
	}
	alt, err := elseClause.Alternate()
	if err != nil || alt.String() != "c;" {
		t.Fatalf("alternate = %q, %v", alt.String(), err)
	}
}

func TestMissingSlotIsAnError(t *testing.T) {
	stmt := first(t, "if () a", ast.CastIfStatement)
	_, err := stmt.Test()
	if !errors.Is(err, syntax.ErrMissingSlot) {
		t.Fatalf("err = %v", err)
	}
	var missing *syntax.MissingSlotError
	if !errors.As(err, &missing) || missing.Name != "test" || missing.Parent != syntax.IfStatement {
		t.Fatalf("missing = %+v", missing)
	}
}

func TestVariableDeclarators(t *testing.T) {
	decl := first(t, "var a = 1, b;", ast.CastVariableDeclaration)
	if !decl.IsVar() || decl.IsConst() {
		t.Fatalf("kind flags wrong")
	}
	list, err := decl.Declarators()
	if err != nil || list.Len() != 2 {
		t.Fatalf("declarators = %d, %v", list.Len(), err)
	}
	var names []string
	var inits int
	for d := range list.Elements() {
		id, err := d.ID()
		if err != nil {
			t.Fatalf("ID: %v", err)
		}
		name, _ := id.Name()
		names = append(names, name)
		if _, ok := d.Initializer(); ok {
			inits++
		}
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" || inits != 1 {
		t.Fatalf("names = %v, inits = %d", names, inits)
	}
	seps := 0
	for range list.Separators() {
		seps++
	}
	if seps != 1 {
		t.Fatalf("separators = %d", seps)
	}
}

func TestOmitParentheses(t *testing.T) {
	stmt := first(t, "((x));", ast.CastExpressionStatement)
	expr, _ := stmt.Expression()
	inner := expr.OmitParentheses()
	if inner.Kind() != syntax.IdentifierExpression || inner.String() != "x" {
		t.Fatalf("inner = %v %q", inner.Kind(), inner.String())
	}
}

func TestArrayHoles(t *testing.T) {
	arr := first(t, "[a,,b]", ast.CastArrayExpression)
	elems, err := arr.Elements()
	if err != nil {
		t.Fatal(err)
	}
	holes := 0
	for e := range elems.Elements() {
		if e.IsHole() {
			holes++
		} else if _, ok := e.Expression(); !ok {
			t.Fatalf("element is neither hole nor expression")
		}
	}
	if holes != 1 || elems.Len() != 3 {
		t.Fatalf("holes = %d, len = %d", holes, elems.Len())
	}
}

func TestAssignmentTarget(t *testing.T) {
	assign := first(t, "o.x = 1", ast.CastAssignmentExpression)
	left, err := assign.Left()
	if err != nil {
		t.Fatal(err)
	}
	member, ok := left.Variant().(ast.StaticMemberExpression)
	if !ok {
		t.Fatalf("variant = %T", left.Variant())
	}
	name, _ := member.Member()
	if v, _ := name.ValueToken(); v.TextTrimmed() != "x" {
		t.Fatalf("member = %q", v.TextTrimmed())
	}
}

func TestFunctionViews(t *testing.T) {
	fn := first(t, "function f(a, b = 1) { return a }", ast.CastFunctionDeclaration)
	id, err := fn.ID()
	if err != nil {
		t.Fatal(err)
	}
	if name, _ := id.Name(); name != "f" {
		t.Fatalf("name = %q", name)
	}
	params, _ := fn.Parameters()
	items, _ := params.Items()
	if items.Len() != 2 {
		t.Fatalf("params = %d", items.Len())
	}
	body, _ := fn.Body()
	stmts, _ := body.Statements()
	for s := range stmts.Elements() {
		ret, ok := s.Variant().(ast.ReturnStatement)
		if !ok {
			t.Fatalf("statement = %T", s.Variant())
		}
		if _, ok := ret.Argument(); !ok {
			t.Fatalf("return argument missing")
		}
	}

	expr := first(t, "(function () {})", ast.CastFunctionExpression)
	if _, ok := expr.ID(); ok {
		t.Fatalf("anonymous function has no id")
	}
}

func TestCastRejectsOtherKinds(t *testing.T) {
	root := parser.ParseText("a;").Root
	if _, ok := ast.CastIfStatement(root); ok {
		t.Fatalf("module cast to if")
	}
	if _, ok := ast.CastModule(root); !ok {
		t.Fatalf("module cast failed")
	}
	if _, ok := ast.CastAnyExpression(syntax.SyntaxNode{}); ok {
		t.Fatalf("zero node cast")
	}
}

func TestFactoryRoundTrips(t *testing.T) {
	bin := ast.MakeBinaryExpression(
		ast.MakeIdentifierExpression("x"), syntax.EqEqEq, ast.MakeUnaryExpression(syntax.Minus, ast.MakeIdentifierExpression("y")))
	stmt := ast.MakeBlockStatement(ast.MakeExpressionStatement(ast.MakeParenthesizedExpression(bin)))
	text := syntax.NewRoot(stmt).Text()
	if text != "{(x === -y);}" {
		t.Fatalf("text = %q", text)
	}
	reparsed := parser.ParseText(text)
	if reparsed.HasErrors() {
		t.Fatalf("factory output does not parse: %+v", reparsed.Diagnostics)
	}
	block := first(t, text, ast.CastBlockStatement)
	if got, want := kindsOf(block.Syntax()), kindsOf(syntax.NewRoot(stmt)); !slices.Equal(got, want) {
		t.Fatalf("factory shape %v, parsed shape %v", want, got)
	}

	tok := ast.WithTrivia(ast.Token(syntax.EqEqEq), ast.TokenWithSpace(syntax.EqEq))
	if tok.Text() != "=== " || tok.TextTrimmed() != "===" {
		t.Fatalf("WithTrivia = %q", tok.Text())
	}
	if ast.WithoutTrailingTrivia(tok).Text() != "===" {
		t.Fatalf("WithoutTrailingTrivia")
	}
}

func kindsOf(n syntax.SyntaxNode) []syntax.Kind {
	var out []syntax.Kind
	for d := range n.Descendants() {
		out = append(out, d.Kind())
	}
	return out
}

func TestWithEdgeTrivia(t *testing.T) {
	like := first(t, "(\n  a // k\n);", ast.CastIdentifierExpression).Syntax().Green()
	n := first(t, "( b );", ast.CastIdentifierExpression).Syntax().Green()

	got := ast.WithEdgeTrivia(n, like)
	if got.Text() != "\n  b // k" {
		t.Fatalf("text = %q", got.Text())
	}
	if n.Text() != "b " {
		t.Fatalf("input changed: %q", n.Text())
	}
}
