package hashgraph

import (
	"fmt"
	"time"
)

// LinkedEvent is a node of the in-memory hashgraph DAG. It wraps a
// PlatformEvent and points to the LinkedEvents of its resolved parents.
//
// The wrapped event never changes. The parent pointers are set once, when the
// linker creates the LinkedEvent, and may later be cleared by Unlink. Only the
// linker that created a LinkedEvent may call Unlink, from the same goroutine
// that calls the linker's other methods.
type LinkedEvent struct {
	event       *PlatformEvent
	selfParent  *LinkedEvent
	otherParent *LinkedEvent
}

// NewLinkedEvent creates a LinkedEvent. Either parent may be nil.
func NewLinkedEvent(event *PlatformEvent, selfParent, otherParent *LinkedEvent) *LinkedEvent {
	return &LinkedEvent{
		event:       event,
		selfParent:  selfParent,
		otherParent: otherParent,
	}
}

// Event returns the wrapped PlatformEvent.
func (e *LinkedEvent) Event() *PlatformEvent { return e.event }

// SelfParent returns the linked self-parent, or nil if it was not resolved or
// has been unlinked.
func (e *LinkedEvent) SelfParent() *LinkedEvent { return e.selfParent }

// OtherParent returns the linked other-parent, or nil if it was not resolved
// or has been unlinked.
func (e *LinkedEvent) OtherParent() *LinkedEvent { return e.otherParent }

// HasParents is true while at least one parent is linked.
func (e *LinkedEvent) HasParents() bool {
	return e.selfParent != nil || e.otherParent != nil
}

// Unlink severs the links to both parents. The event itself stays valid.
func (e *LinkedEvent) Unlink() {
	e.selfParent = nil
	e.otherParent = nil
}

// Hash returns the hash of the wrapped event.
func (e *LinkedEvent) Hash() Hash { return e.event.Hash() }

// Creator returns the creator id of the wrapped event.
func (e *LinkedEvent) Creator() uint32 { return e.event.Creator() }

// Generation returns the generation of the wrapped event.
func (e *LinkedEvent) Generation() uint64 { return e.event.Generation() }

// BirthRound returns the birth round of the wrapped event.
func (e *LinkedEvent) BirthRound() uint64 { return e.event.BirthRound() }

// TimeCreated returns the creation time of the wrapped event.
func (e *LinkedEvent) TimeCreated() time.Time { return e.event.TimeCreated() }

// Descriptor returns the descriptor of the wrapped event.
func (e *LinkedEvent) Descriptor() EventDescriptor { return e.event.Descriptor() }

// String implements fmt.Stringer.
func (e *LinkedEvent) String() string {
	sp, op := "nil", "nil"
	if e.selfParent != nil {
		sp = e.selfParent.Hash().Short()
	}
	if e.otherParent != nil {
		op = e.otherParent.Hash().Short()
	}
	return fmt.Sprintf("%s{sp: %s, op: %s}", e.event, sp, op)
}
