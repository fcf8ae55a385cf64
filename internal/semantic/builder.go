package semantic

import (
	"fmt"

	"fortio.org/safecast"

	"lintel/internal/source"
	"lintel/internal/syntax"
)

type (
	BindingID   uint32
	ReferenceID uint32
)

const noReference = ^ReferenceID(0)

type scopeData struct {
	kind     ScopeKind
	parent   ScopeID
	rng      source.TextRange
	children []ScopeID
	bindings []BindingID
	byName   map[source.StringID]BindingID
}

type bindingData struct {
	rng     source.TextRange
	name    source.StringID
	scope   ScopeID
	hoisted bool
	first   ReferenceID
	last    ReferenceID
}

type referenceData struct {
	rng     source.TextRange
	kind    EventKind
	binding BindingID
	scope   ScopeID
	next    ReferenceID
}

type unresolvedData struct {
	rng   source.TextRange
	name  source.StringID
	scope ScopeID
	write bool
}

type modelData struct {
	root        syntax.SyntaxNode
	names       *source.Interner
	scopes      []scopeData
	bindings    []bindingData
	references  []referenceData
	unresolved  []unresolvedData
	declaredAt  map[source.TextRange]BindingID
	referenceAt map[source.TextRange]ReferenceID
	nodeByRange map[source.TextRange]syntax.SyntaxNode
}

// Builder folds events into a Model.
type Builder struct {
	data *modelData
}

func NewBuilder(root syntax.SyntaxNode) *Builder {
	return &Builder{data: &modelData{
		root:        root,
		names:       source.NewInterner(),
		declaredAt:  make(map[source.TextRange]BindingID),
		referenceAt: make(map[source.TextRange]ReferenceID),
		nodeByRange: make(map[source.TextRange]syntax.SyntaxNode),
	}}
}

// Visit records identifier nodes so handles can return their syntax.
func (b *Builder) Visit(n syntax.SyntaxNode) {
	switch n.Kind() {
	case syntax.IdentifierBinding, syntax.ReferenceIdentifier, syntax.IdentifierAssignment:
		b.data.nodeByRange[n.TextTrimmedRange()] = n
	}
}

func (b *Builder) Push(ev Event) {
	d := b.data
	switch ev.Kind {
	case ScopeStarted:
		d.scopes = append(d.scopes, scopeData{
			kind:   ev.ScopeKind,
			parent: ev.Parent,
			rng:    ev.Range,
			byName: make(map[source.StringID]BindingID),
		})
		if ev.Parent != NoScope {
			p := &d.scopes[ev.Parent]
			p.children = append(p.children, ev.Scope)
		}

	case DeclarationFound:
		id := toID[BindingID](len(d.bindings))
		name := d.names.Intern(ev.Name)
		d.bindings = append(d.bindings, bindingData{
			rng:     ev.Range,
			name:    name,
			scope:   ev.Scope,
			hoisted: ev.Hoisted,
			first:   noReference,
			last:    noReference,
		})
		s := &d.scopes[ev.Scope]
		s.bindings = append(s.bindings, id)
		s.byName[name] = id
		d.declaredAt[ev.Range] = id

	case Read, HoistedRead, Write, HoistedWrite:
		bid, ok := d.declaredAt[ev.DeclaredAt]
		if !ok {
			return
		}
		id := toID[ReferenceID](len(d.references))
		d.references = append(d.references, referenceData{
			rng:     ev.Range,
			kind:    ev.Kind,
			binding: bid,
			scope:   ev.Scope,
			next:    noReference,
		})
		bd := &d.bindings[bid]
		if bd.last == noReference {
			bd.first = id
		} else {
			d.references[bd.last].next = id
		}
		bd.last = id
		d.referenceAt[ev.Range] = id

	case UnresolvedReference:
		d.unresolved = append(d.unresolved, unresolvedData{
			rng:   ev.Range,
			name:  d.names.Intern(ev.Name),
			scope: ev.Scope,
			write: ev.IsWrite,
		})

	case ScopeEnded:
	}
}

// Build freezes the collected data. The builder must not be used afterwards.
func (b *Builder) Build() *Model {
	m := &Model{data: b.data}
	b.data = nil
	return m
}

// Build runs the extractor and builder over root.
func Build(root syntax.SyntaxNode) *Model {
	ex := NewExtractor()
	b := NewBuilder(root)
	drain := func() {
		for ev, ok := ex.Pop(); ok; ev, ok = ex.Pop() {
			b.Push(ev)
		}
	}
	for ev := range root.Walk() {
		switch ev.Kind {
		case syntax.Enter:
			b.Visit(ev.Node)
			ex.Enter(ev.Node)
		case syntax.Leave:
			ex.Leave(ev.Node)
		}
		drain()
	}
	return b.Build()
}

func toID[T ~uint32](n int) T {
	id, err := safecast.Conv[T](n)
	if err != nil {
		panic(fmt.Errorf("semantic: id overflow: %w", err))
	}
	return id
}
