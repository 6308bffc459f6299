// Package keys implements the creator keys of the event linker.
//
// Every event creator owns a secp256k1 key-pair. The linker itself never
// verifies signatures (that happens upstream, before events reach it), but
// creator ids are derived from public keys, and the simulator and the keygen
// command need to produce realistic creators.
package keys
