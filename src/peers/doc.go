// Package peers defines the creators of hashgraph events and collections of
// them.
//
// A peer is identified by its secp256k1 public key, and optionaly a moniker
// which is a non-unique user-friendly name. The uint32 ID derived from the
// public key is the creator id carried by every event the peer creates.
//
// A peer-set can be loaded from a peers.json file in a data directory, which
// is what the keygen command writes to.
package peers
