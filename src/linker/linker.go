package linker

import (
	"fmt"

	"github.com/mosaicnetworks/eventlinker/src/config"
	"github.com/mosaicnetworks/eventlinker/src/hashgraph"
)

// EventLinker resolves the parents of events and tracks the event window.
type EventLinker interface {
	// LinkEvent links an event to its parents. It returns nil if the event is
	// ancient under the current window, in which case it is discarded. An
	// event whose hash is already indexed is not linked again; the indexed
	// LinkedEvent is returned instead.
	LinkEvent(event *hashgraph.PlatformEvent) *hashgraph.LinkedEvent

	// SetEventWindow installs a new window and evicts the events that became
	// ancient from the index. Windows must not go backwards.
	SetEventWindow(window hashgraph.EventWindow)

	// Get returns an indexed event.
	Get(hash hashgraph.Hash) (*hashgraph.LinkedEvent, bool)

	// Len returns the number of indexed events.
	Len() int

	// Window returns the current window.
	Window() hashgraph.EventWindow

	// Stats returns a snapshot of the linker's counters.
	Stats() Stats

	// Clear evicts everything and goes back to the genesis window.
	Clear()
}

// New creates the linker selected by conf.Linker.
func New(conf *config.Config) (EventLinker, error) {
	switch conf.Linker {
	case config.InOrderLinker:
		return NewInOrderLinker(conf)
	case config.ConsensusLinker:
		return NewConsensusLinker(conf)
	default:
		return nil, fmt.Errorf("unknown linker %q", conf.Linker)
	}
}

// ContractViolation is the panic value used when a linker is misused by its
// caller. It signals a bug in the calling pipeline, never bad input.
type ContractViolation struct {
	msg string
}

// Error implements the error interface.
func (c ContractViolation) Error() string {
	return "linker contract violation: " + c.msg
}
