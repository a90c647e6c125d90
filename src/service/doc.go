// Package service implements the HTTP API of a blockjournal node.
//
// The sync endpoints are the wire contract between nodes:
//
//  GET  /chain      {"chain":[...]}
//  POST /sync       {"chain":[...]} -> "SYNC SUCCESSFUL!" | "SYNC FAILED!"
//
// A rejected chain is a normal outcome, so /sync answers 200 in both cases.
// A body that is not a chain is answered with 400.
//
// The read-only endpoints are for humans and monitoring:
//
//  GET  /stats      node statistics
//  GET  /block/{i}  a single block, 404 if out of range
//  GET  /peers      the list of peers
package service
