// Package hashgraph defines the events that make up the hashgraph DAG, as seen
// by the event-linking stage of the consensus pipeline.
//
// Peers gossip immutable events. Each event carries its creator's id, its
// generation and birth round, the time it was created, and descriptors of its
// parents: the creator's previous event (self-parent) and, usually, another
// creator's event (other-parent). A descriptor is only a claim about the event
// it references; it is the linker's job to resolve it against events it has
// actually seen.
//
// Ancient events
//
// Consensus only needs the recent part of the hashgraph. An EventWindow
// records the current ancient threshold, and the AncientMode decides which
// attribute of an event (generation or birth round) is compared against it.
// An event whose indicator is at or below the threshold is ancient: it is
// dropped on arrival and, once linked, eventually unlinked from the DAG.
//
// LinkedEvent
//
// A LinkedEvent is the node of the in-memory DAG. It wraps a PlatformEvent
// together with pointers to its resolved parents. Either pointer may be nil,
// and both are cleared when the event falls out of the window, so that the
// DAG reachable from recent events stays bounded.
package hashgraph
