package syntax

import (
	"errors"
	"fmt"
)

// ErrMissingSlot is matched by every MissingSlotError.
var ErrMissingSlot = errors.New("missing slot")

// MissingSlotError reports a required child absent after a parse error.
type MissingSlotError struct {
	Parent Kind
	Slot   int
	Name   string
}

func (e *MissingSlotError) Error() string {
	return fmt.Sprintf("%s: missing %s (slot %d)", e.Parent, e.Name, e.Slot)
}

func (e *MissingSlotError) Is(target error) bool { return target == ErrMissingSlot }

// RequiredNode fetches a node slot or returns a MissingSlotError.
func RequiredNode(n SyntaxNode, slot int, name string) (SyntaxNode, error) {
	if el, ok := n.Slot(slot); ok {
		if c, ok := el.AsNode(); ok {
			return c, nil
		}
	}
	return SyntaxNode{}, &MissingSlotError{Parent: n.Kind(), Slot: slot, Name: name}
}

// RequiredToken fetches a token slot or returns a MissingSlotError.
func RequiredToken(n SyntaxNode, slot int, name string) (SyntaxToken, error) {
	if el, ok := n.Slot(slot); ok {
		if t, ok := el.AsToken(); ok {
			return t, nil
		}
	}
	return SyntaxToken{}, &MissingSlotError{Parent: n.Kind(), Slot: slot, Name: name}
}

// OptionalNode fetches a node slot that may legitimately be absent.
func OptionalNode(n SyntaxNode, slot int) (SyntaxNode, bool) {
	if el, ok := n.Slot(slot); ok {
		return el.AsNode()
	}
	return SyntaxNode{}, false
}

// OptionalToken fetches a token slot that may legitimately be absent.
func OptionalToken(n SyntaxNode, slot int) (SyntaxToken, bool) {
	if el, ok := n.Slot(slot); ok {
		return el.AsToken()
	}
	return SyntaxToken{}, false
}
