// Package semantic builds scopes, bindings and references for a syntax tree.
//
// Construction is a single preorder pass: an Extractor turns Enter/Leave
// notifications into a stream of Events, and a Builder folds the events
// into an immutable Model. A Model describes exactly one tree; after a
// mutation a new one must be built.
package semantic

import (
	"fmt"

	"lintel/internal/source"
)

type EventKind uint8

const (
	DeclarationFound EventKind = iota
	Read
	// HoistedRead is a read that precedes its declaration.
	HoistedRead
	Write
	HoistedWrite
	UnresolvedReference
	ScopeStarted
	ScopeEnded
)

var eventNames = [...]string{
	DeclarationFound:    "DeclarationFound",
	Read:                "Read",
	HoistedRead:         "HoistedRead",
	Write:               "Write",
	HoistedWrite:        "HoistedWrite",
	UnresolvedReference: "UnresolvedReference",
	ScopeStarted:        "ScopeStarted",
	ScopeEnded:          "ScopeEnded",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", k)
}

func (k EventKind) IsReference() bool {
	return k >= Read && k <= HoistedWrite
}

type ScopeID uint32

// NoScope is the parent of the global scope.
const NoScope = ^ScopeID(0)

type ScopeKind uint8

const (
	ScopeGlobal ScopeKind = iota
	ScopeFunction
	ScopeBlock
	ScopeCatch
	ScopeFor
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeCatch:
		return "catch"
	case ScopeFor:
		return "for"
	}
	return "unknown"
}

// Event is one fact discovered by the Extractor.
//
//   - DeclarationFound: Range/Name of the binding identifier, Scope is the declaring scope.
//   - Read/Write (hoisted or not): Range/Name of the use, Scope is where it occurs,
//     DeclaredAt is the range of the resolved declaration.
//   - UnresolvedReference: like a reference without DeclaredAt.
//   - ScopeStarted: Range of the scope node, Scope is the new id, Parent its parent.
//   - ScopeEnded: Scope is the id that ended.
type Event struct {
	Kind       EventKind
	Range      source.TextRange
	Name       string
	Scope      ScopeID
	Parent     ScopeID
	ScopeKind  ScopeKind
	DeclaredAt source.TextRange
	Hoisted    bool // declaration is var/function
	IsWrite    bool // unresolved references only
}

func (e Event) String() string {
	switch e.Kind {
	case ScopeStarted:
		return fmt.Sprintf("%s(%d %s @%s)", e.Kind, e.Scope, e.ScopeKind, e.Range)
	case ScopeEnded:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Scope)
	case DeclarationFound, UnresolvedReference:
		return fmt.Sprintf("%s(%s @%s)", e.Kind, e.Name, e.Range)
	default:
		return fmt.Sprintf("%s(%s @%s -> %s)", e.Kind, e.Name, e.Range, e.DeclaredAt)
	}
}
