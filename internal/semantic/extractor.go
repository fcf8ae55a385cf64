package semantic

import (
	"lintel/internal/source"
	"lintel/internal/syntax"
)

type declInfo struct {
	rng source.TextRange
}

type pendingRef struct {
	name  string
	rng   source.TextRange
	write bool
	scope ScopeID
}

type extractScope struct {
	id       ScopeID
	node     syntax.SyntaxNode
	hoisting bool // function or global: var and function declarations land here
	bindings map[string]declInfo
	pending  []pendingRef
}

// Extractor produces semantic events from Enter/Leave notifications of a
// preorder walk. References are resolved when their scope ends, so events
// for them arrive after the declarations they resolve to.
type Extractor struct {
	stack  []*extractScope
	queue  []Event
	head   int
	nextID ScopeID
}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Pop returns the oldest queued event.
func (e *Extractor) Pop() (Event, bool) {
	if e.head >= len(e.queue) {
		e.queue, e.head = e.queue[:0], 0
		return Event{}, false
	}
	ev := e.queue[e.head]
	e.head++
	return ev, true
}

func (e *Extractor) push(ev Event) {
	e.queue = append(e.queue, ev)
}

func (e *Extractor) Enter(n syntax.SyntaxNode) {
	switch n.Kind() {
	case syntax.Module:
		e.startScope(n, ScopeGlobal)
	case syntax.FunctionDeclaration, syntax.FunctionExpression:
		e.startScope(n, ScopeFunction)
	case syntax.BlockStatement:
		e.startScope(n, ScopeBlock)
	case syntax.CatchClause:
		e.startScope(n, ScopeCatch)
	case syntax.ForStatement:
		e.startScope(n, ScopeFor)
	case syntax.IdentifierBinding:
		e.declare(n)
	case syntax.ReferenceIdentifier:
		e.reference(n, false)
	case syntax.IdentifierAssignment:
		e.reference(n, true)
	}
}

func (e *Extractor) Leave(n syntax.SyntaxNode) {
	switch n.Kind() {
	case syntax.Module, syntax.FunctionDeclaration, syntax.FunctionExpression,
		syntax.BlockStatement, syntax.CatchClause, syntax.ForStatement:
		e.endScope()
	}
}

func (e *Extractor) startScope(n syntax.SyntaxNode, kind ScopeKind) {
	parent := NoScope
	if len(e.stack) > 0 {
		parent = e.stack[len(e.stack)-1].id
	}
	s := &extractScope{
		id:       e.nextID,
		node:     n,
		hoisting: kind == ScopeGlobal || kind == ScopeFunction,
		bindings: make(map[string]declInfo),
	}
	e.nextID++
	e.stack = append(e.stack, s)
	e.push(Event{Kind: ScopeStarted, Range: n.TextTrimmedRange(), Scope: s.id, Parent: parent, ScopeKind: kind})
}

func (e *Extractor) endScope() {
	if len(e.stack) == 0 {
		return
	}
	s := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]

	var parent *extractScope
	if len(e.stack) > 0 {
		parent = e.stack[len(e.stack)-1]
	}
	for _, ref := range s.pending {
		if decl, ok := s.bindings[ref.name]; ok {
			hoisted := ref.rng.Start < decl.rng.Start
			e.push(Event{Kind: refKind(ref.write, hoisted), Range: ref.rng, Name: ref.name, Scope: ref.scope, DeclaredAt: decl.rng})
			continue
		}
		if parent != nil {
			parent.pending = append(parent.pending, ref)
			continue
		}
		e.push(Event{Kind: UnresolvedReference, Range: ref.rng, Name: ref.name, Scope: ref.scope, IsWrite: ref.write})
	}
	e.push(Event{Kind: ScopeEnded, Scope: s.id})
}

func refKind(write, hoisted bool) EventKind {
	switch {
	case write && hoisted:
		return HoistedWrite
	case write:
		return Write
	case hoisted:
		return HoistedRead
	default:
		return Read
	}
}

func (e *Extractor) declare(n syntax.SyntaxNode) {
	if len(e.stack) == 0 {
		return
	}
	name, ok := identName(n)
	if !ok {
		return
	}
	target, hoisted := e.declarationScope(n)
	if _, dup := target.bindings[name]; dup {
		// redeclaration (var a; var a) refers to the first binding
		return
	}
	rng := n.TextTrimmedRange()
	target.bindings[name] = declInfo{rng: rng}
	e.push(Event{Kind: DeclarationFound, Range: rng, Name: name, Scope: target.id, Hoisted: hoisted})
}

// declarationScope picks the scope a binding identifier declares into.
func (e *Extractor) declarationScope(n syntax.SyntaxNode) (*extractScope, bool) {
	top := len(e.stack) - 1
	parent, _ := n.Parent()
	switch parent.Kind() {
	case syntax.FunctionDeclaration:
		// the function's own scope is already open; the name belongs outside
		return e.hoistingScope(top - 1), true
	case syntax.VariableDeclarator:
		if isVarDeclarator(parent) {
			return e.hoistingScope(top), true
		}
	}
	return e.stack[top], false
}

func (e *Extractor) hoistingScope(from int) *extractScope {
	for i := min(from, len(e.stack)-1); i >= 0; i-- {
		if e.stack[i].hoisting {
			return e.stack[i]
		}
	}
	return e.stack[0]
}

func isVarDeclarator(declarator syntax.SyntaxNode) bool {
	list, ok := declarator.Parent()
	if !ok {
		return false
	}
	decl, ok := list.Parent()
	if !ok || decl.Kind() != syntax.VariableDeclaration {
		return false
	}
	kw, ok := syntax.OptionalToken(decl, 0)
	return ok && kw.Kind() == syntax.VarKw
}

func (e *Extractor) reference(n syntax.SyntaxNode, write bool) {
	if len(e.stack) == 0 {
		return
	}
	name, ok := identName(n)
	if !ok {
		return
	}
	s := e.stack[len(e.stack)-1]
	s.pending = append(s.pending, pendingRef{name: name, rng: n.TextTrimmedRange(), write: write, scope: s.id})
}

// identName reads the single identifier token of a binding, reference or
// assignment node.
func identName(n syntax.SyntaxNode) (string, bool) {
	tok, ok := syntax.OptionalToken(n, 0)
	if !ok || tok.Kind() != syntax.Ident {
		return "", false
	}
	return tok.TextTrimmed(), true
}
