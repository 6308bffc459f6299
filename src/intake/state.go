package intake

import "sync/atomic"

// State captures the lifecycle of a Stage: Idle, Running or Closed.
type State uint32

const (
	// Idle is the state of a Stage that has not been Run yet.
	Idle State = iota
	// Running means a goroutine is draining the queue.
	Running
	// Closed is final.
	Closed
)

// String ...
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Closed:
		return "Closed"
	default:
		return "Unknown"
	}
}

type state struct {
	state State
}

func (b *state) getState() State {
	stateAddr := (*uint32)(&b.state)
	return State(atomic.LoadUint32(stateAddr))
}

func (b *state) setState(s State) {
	stateAddr := (*uint32)(&b.state)
	atomic.StoreUint32(stateAddr, uint32(s))
}

func (b *state) transition(from, to State) bool {
	stateAddr := (*uint32)(&b.state)
	return atomic.CompareAndSwapUint32(stateAddr, uint32(from), uint32(to))
}
