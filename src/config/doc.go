// Package config defines the configuration of a blockjournal node.
//
// The Config object holds everything needed to assemble a node: where the
// chain is stored, which address the HTTP service binds to, the peers to sync
// with, and how often. NewDefaultConfig returns sensible defaults; the
// blockjournal command overrides them with flags and an optional config file
// in the data directory.
package config
