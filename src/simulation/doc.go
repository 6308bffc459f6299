// Package simulation drives a linker with a synthetic hashgraph.
//
// A Generator produces a deterministic (seeded) stream of events for a set of
// peers: every event extends its creator's last event and gossips with
// another creator's last event. Some descriptors are forged, some events are
// dropped, and delivery can be reordered within a bounded buffer, so the
// linker sees the same kind of input an adversarial network would give it.
// The Simulator feeds that stream through an intake Stage, advances the
// event window as the graph grows, and returns a Report.
package simulation
