package rules

import (
	"lintel/internal/analyzer"
	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/semantic"
	"lintel/internal/syntax"
)

type noVar struct{}

func (noVar) Metadata() analyzer.Metadata {
	return analyzer.Metadata{
		Group:       "style",
		Name:        "noVar",
		Category:    analyzer.CategoryLint,
		Docs:        "Disallow var. The fix picks const when no declared name is ever written, let otherwise.",
		Recommended: true,
		Severity:    diag.SevWarning,
		Fix:         diag.FixMaybeIncorrect,
		HasFix:      true,
	}
}

func (noVar) Query() analyzer.Query[ast.VariableDeclaration] {
	return analyzer.Semantic(syntax.KindSetOf(syntax.VariableDeclaration), ast.CastVariableDeclaration)
}

// varFix is the keyword replacing var, or Tombstone when no fix is safe.
type varFix struct {
	kw syntax.SyntaxToken
	to syntax.Kind
}

func (noVar) Run(ctx *analyzer.RuleContext[ast.VariableDeclaration]) []varFix {
	decl := ctx.Query()
	if !decl.IsVar() {
		return nil
	}
	kw, err := decl.KindToken()
	if err != nil {
		return nil
	}
	return []varFix{{kw: kw, to: replacementKeyword(ctx.Model(), decl)}}
}

// replacementKeyword decides between let and const. Block scoping changes
// meaning when a name is used before its declaration or the statement is
// nested in a block, so those get no fix.
func replacementKeyword(model *semantic.Model, decl ast.VariableDeclaration) syntax.Kind {
	if !atFunctionLevel(decl.Syntax()) {
		return syntax.Tombstone
	}
	declarators, err := decl.Declarators()
	if err != nil {
		return syntax.Tombstone
	}
	constOK := true
	for d := range declarators.Elements() {
		id, err := d.ID()
		if err != nil {
			return syntax.Tombstone
		}
		b, ok := model.Binding(id.Syntax())
		if !ok || redeclared(model, b) {
			return syntax.Tombstone
		}
		for ref := range b.AllReferences() {
			if ref.IsHoisted() {
				return syntax.Tombstone
			}
			if ref.IsWrite() {
				constOK = false
			}
		}
		if _, ok := d.Initializer(); !ok {
			constOK = false
		}
	}
	if constOK {
		return syntax.ConstKw
	}
	return syntax.LetKw
}

// redeclared reports whether another var in b's scope declares the same
// name. The model maps only the first declaration to the binding.
func redeclared(model *semantic.Model, b semantic.Binding) bool {
	scope := b.Scope().Range()
	for n := range model.Root().Descendants() {
		if n.Kind() != syntax.IdentifierBinding || n.TextTrimmed() != b.Name() {
			continue
		}
		r := n.TextTrimmedRange()
		if r == b.Range() || !scope.ContainsRange(r) {
			continue
		}
		if _, ok := model.Binding(n); !ok {
			return true
		}
	}
	return false
}

// atFunctionLevel: VariableStatement directly in the module or a function body.
func atFunctionLevel(decl syntax.SyntaxNode) bool {
	stmt, ok := decl.Parent()
	if !ok || stmt.Kind() != syntax.VariableStatement {
		return false
	}
	list, ok := stmt.Parent()
	if !ok {
		return false
	}
	owner, ok := list.Parent()
	return ok && (owner.Kind() == syntax.Module || owner.Kind() == syntax.FunctionBody)
}

func (noVar) Diagnostic(_ *analyzer.RuleContext[ast.VariableDeclaration], st varFix) (analyzer.RuleDiagnostic, bool) {
	return analyzer.NewDiagnostic(st.kw.TextTrimmedRange(), "Use let or const instead of var."), true
}

func (noVar) Action(ctx *analyzer.RuleContext[ast.VariableDeclaration], st varFix) (analyzer.RuleAction, bool) {
	if st.to == syntax.Tombstone {
		return analyzer.RuleAction{}, false
	}
	m := ctx.Mutation()
	m.ReplaceTokenTransferTrivia(st.kw, ast.Token(st.to))
	return analyzer.RuleAction{
		Category:      analyzer.QuickFix,
		Applicability: diag.FixMaybeIncorrect,
		Message:       "Use " + st.to.Text(),
		Mutation:      m,
	}, true
}
