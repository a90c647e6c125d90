// Package peers defines the concept of a journal peer and implements functions
// to manage collections of peers.
//
// A peer is another blockjournal node, identified by the network address
// (host:port) of its HTTP service, and optionaly a moniker which is a
// non-unique user-friendly name. Peers are not authenticated; any node that
// serves a structurally valid chain can have it accepted.
//
// Peers are either given on the command line or read from a peers.json file in
// the data directory:
//
//  [
//    {"NetAddr": "10.0.0.1:8000", "Moniker": "alice"},
//    {"NetAddr": "10.0.0.2:8000", "Moniker": "bob"}
//  ]
package peers
