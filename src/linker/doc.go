// Package linker turns the parent descriptors of incoming events into links
// between LinkedEvents, building the hashgraph DAG that consensus runs on.
//
// Events reach the linker roughly in causal order, but references may be
// missing (the parent was never delivered, or has already been forgotten),
// stale (the parent is ancient) or forged (the descriptor's claims do not
// match the real parent). None of these are errors: the offending link is
// simply left nil and the event is linked anyway, so that a misbehaving
// creator can only spoil its own events.
//
// Resolution rules
//
// A parent descriptor is linked only if it is not ancient, an event with its
// hash has been linked before and is still indexed, and the generation and
// birth round it claims are those of that event. A self-parent must
// additionally claim the exact creation time of the event it resolves to, and
// that time must precede the child's. An other-parent comes from another
// creator with an independent clock, so its time is not checked.
//
// Strategies
//
// Both linkers index the events they link by hash and drop ancient ones from
// the index when the event window advances. InOrderLinker leaves the links of
// dropped events alone. ConsensusLinker also unlinks them, so that the part
// of the DAG reachable from recent events stays within the window no matter
// how long consumers hold on to old events.
//
// Concurrency
//
// A linker must be driven by a single goroutine (see the intake package).
// Entering a linker from two goroutines at once panics, as does a regressing
// event window when the linker is strict.
package linker
