package semantic

import (
	"iter"

	"lintel/internal/source"
	"lintel/internal/syntax"
)

// Model is the immutable result of semantic analysis of one tree.
// Handles derived from it share its data.
type Model struct {
	data *modelData
}

func (m *Model) Root() syntax.SyntaxNode { return m.data.root }

func (m *Model) GlobalScope() Scope { return Scope{m.data, 0} }

func (m *Model) AllBindings() iter.Seq[Binding] {
	return func(yield func(Binding) bool) {
		for i := range m.data.bindings {
			if !yield(Binding{m.data, BindingID(i)}) {
				return
			}
		}
	}
}

func (m *Model) AllUnresolvedReferences() iter.Seq[Unresolved] {
	return func(yield func(Unresolved) bool) {
		for i := range m.data.unresolved {
			if !yield(Unresolved{m.data, i}) {
				return
			}
		}
	}
}

// Binding resolves an identifier occurrence to its declaration. It accepts
// binding identifiers, references, assignments, and identifier expressions.
func (m *Model) Binding(n syntax.SyntaxNode) (Binding, bool) {
	if n.IsZero() {
		return Binding{}, false
	}
	if n.Kind() == syntax.IdentifierExpression {
		c, ok := n.FirstChild()
		if !ok {
			return Binding{}, false
		}
		n = c
	}
	r := n.TextTrimmedRange()
	if n.Kind() == syntax.IdentifierBinding {
		id, ok := m.data.declaredAt[r]
		return Binding{m.data, id}, ok
	}
	if id, ok := m.data.referenceAt[r]; ok {
		return Binding{m.data, m.data.references[id].binding}, true
	}
	return Binding{}, false
}

// Reference returns the resolved reference at n, if any.
func (m *Model) Reference(n syntax.SyntaxNode) (Reference, bool) {
	if n.IsZero() {
		return Reference{}, false
	}
	id, ok := m.data.referenceAt[n.TextTrimmedRange()]
	return Reference{m.data, id}, ok
}

// ScopeOf returns the innermost scope whose range covers n.
func (m *Model) ScopeOf(n syntax.SyntaxNode) Scope {
	r := n.TextTrimmedRange()
	cur := ScopeID(0)
	for {
		next, found := cur, false
		for _, c := range m.data.scopes[cur].children {
			if m.data.scopes[c].rng.ContainsRange(r) {
				next, found = c, true
				break
			}
		}
		if !found {
			return Scope{m.data, cur}
		}
		cur = next
	}
}

// Binding is a declaration site.
type Binding struct {
	data *modelData
	id   BindingID
}

func (b Binding) IsZero() bool { return b.data == nil }

func (b Binding) ID() BindingID { return b.id }

func (b Binding) Syntax() syntax.SyntaxNode {
	return b.data.nodeByRange[b.data.bindings[b.id].rng]
}

func (b Binding) Range() source.TextRange { return b.data.bindings[b.id].rng }

func (b Binding) Name() string {
	s, _ := b.data.names.Lookup(b.data.bindings[b.id].name)
	return s
}

func (b Binding) Scope() Scope { return Scope{b.data, b.data.bindings[b.id].scope} }

// IsHoisted reports a var or function declaration.
func (b Binding) IsHoisted() bool { return b.data.bindings[b.id].hoisted }

// AllReferences follows the reference chain in source order. Each call
// returns a fresh sequence.
func (b Binding) AllReferences() iter.Seq[Reference] {
	return b.references(func(EventKind) bool { return true })
}

func (b Binding) AllReads() iter.Seq[Reference] {
	return b.references(func(k EventKind) bool { return k == Read || k == HoistedRead })
}

func (b Binding) AllWrites() iter.Seq[Reference] {
	return b.references(func(k EventKind) bool { return k == Write || k == HoistedWrite })
}

func (b Binding) references(keep func(EventKind) bool) iter.Seq[Reference] {
	return func(yield func(Reference) bool) {
		for id := b.data.bindings[b.id].first; id != noReference; id = b.data.references[id].next {
			if keep(b.data.references[id].kind) && !yield(Reference{b.data, id}) {
				return
			}
		}
	}
}

// Reference is a use site resolved to a Binding.
type Reference struct {
	data *modelData
	id   ReferenceID
}

func (r Reference) Syntax() syntax.SyntaxNode {
	return r.data.nodeByRange[r.data.references[r.id].rng]
}

func (r Reference) Range() source.TextRange { return r.data.references[r.id].rng }

func (r Reference) Binding() Binding { return Binding{r.data, r.data.references[r.id].binding} }

func (r Reference) IsRead() bool {
	k := r.data.references[r.id].kind
	return k == Read || k == HoistedRead
}

func (r Reference) IsWrite() bool { return !r.IsRead() }

// IsHoisted reports a use that precedes its declaration.
func (r Reference) IsHoisted() bool {
	k := r.data.references[r.id].kind
	return k == HoistedRead || k == HoistedWrite
}

func (r Reference) Scope() Scope { return Scope{r.data, r.data.references[r.id].scope} }

// Unresolved is a reference with no declaration in the file, e.g. a global.
type Unresolved struct {
	data *modelData
	idx  int
}

func (u Unresolved) Syntax() syntax.SyntaxNode {
	return u.data.nodeByRange[u.data.unresolved[u.idx].rng]
}

func (u Unresolved) Range() source.TextRange { return u.data.unresolved[u.idx].rng }

func (u Unresolved) Name() string {
	s, _ := u.data.names.Lookup(u.data.unresolved[u.idx].name)
	return s
}

func (u Unresolved) IsWrite() bool { return u.data.unresolved[u.idx].write }

func (u Unresolved) Scope() Scope { return Scope{u.data, u.data.unresolved[u.idx].scope} }

type Scope struct {
	data *modelData
	id   ScopeID
}

func (s Scope) ID() ScopeID             { return s.id }
func (s Scope) Kind() ScopeKind         { return s.data.scopes[s.id].kind }
func (s Scope) Range() source.TextRange { return s.data.scopes[s.id].rng }
func (s Scope) IsGlobal() bool          { return s.data.scopes[s.id].parent == NoScope }

func (s Scope) Parent() (Scope, bool) {
	p := s.data.scopes[s.id].parent
	if p == NoScope {
		return Scope{}, false
	}
	return Scope{s.data, p}, true
}

// Ancestors yields s and then each enclosing scope.
func (s Scope) Ancestors() iter.Seq[Scope] {
	return func(yield func(Scope) bool) {
		for cur, ok := s, true; ok; cur, ok = cur.Parent() {
			if !yield(cur) {
				return
			}
		}
	}
}

func (s Scope) Children() iter.Seq[Scope] {
	return func(yield func(Scope) bool) {
		for _, c := range s.data.scopes[s.id].children {
			if !yield(Scope{s.data, c}) {
				return
			}
		}
	}
}

func (s Scope) Bindings() iter.Seq[Binding] {
	return func(yield func(Binding) bool) {
		for _, b := range s.data.scopes[s.id].bindings {
			if !yield(Binding{s.data, b}) {
				return
			}
		}
	}
}

// Binding looks name up in this scope only.
func (s Scope) Binding(name string) (Binding, bool) {
	id, ok := s.data.names.Find(name)
	if !ok {
		return Binding{}, false
	}
	b, ok := s.data.scopes[s.id].byName[id]
	return Binding{s.data, b}, ok
}

// Resolve looks name up in s and its ancestors.
func (s Scope) Resolve(name string) (Binding, bool) {
	for sc := range s.Ancestors() {
		if b, ok := sc.Binding(name); ok {
			return b, true
		}
	}
	return Binding{}, false
}
