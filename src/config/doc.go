// Package config defines the configuration of the event-linking stage.
//
// Regardless of how the linker is started, directly from Go code or through
// the linker command, it uses the Config object defined in this package to
// store and forward configuration options. The command line tool also relies
// on a data directory, defined by Config.DataDir, where it expects to find:
//
//  linker.toml // (optional) configuration file, overriden by flags.
//  peers.json  // (optional) the creators to simulate (cf. linker keygen).
//  priv_key    // (optional) a raw private key written by linker keygen.
package config
