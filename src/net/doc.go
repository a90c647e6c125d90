// Package net implements the transports used by blockjournal nodes to exchange
// chains.
//
// The wire contract is two HTTP endpoints served by every node (cf service
// package):
//
//  GET  /chain   responds {"chain":[...]}
//  POST /sync    takes {"chain":[...]} and responds "SYNC SUCCESSFUL!" or
//                "SYNC FAILED!"
//
// There are two implementations of the Transport interface:
//
// - HTTP: talks to the endpoints above over the network.
//
// - Inmem: in-memory transport used only for testing. Nodes are connected
// directly to a ChainHandler without opening any sockets.
//
// Transport errors are classified with common.ChainErr: NetworkError when a
// peer is unreachable, times out, or returns a non-success status, and
// SerializationError when the response body cannot be decoded. Neither leaves
// any partial state behind.
package net
