// Package chain implements the journal blockchain: an append-only sequence of
// blocks, each wrapping one journal Entry and linked to its predecessor by
// hash.
//
// Hashing
//
// A block's hash is the SHA-256 digest, in lowercase hex, of a canonical JSON
// document containing every field of the block except the hash itself:
//
//  {"entry":{"content":C,"location":L,"timestamp":TE},"index":I,"previous_hash":P,"timestamp":TB}
//
// Keys are sorted, there is no insignificant whitespace, and timestamps are
// UTC RFC 3339 strings with nanosecond precision (trailing zeros trimmed).
// Any implementation that reproduces this document byte for byte computes the
// same hashes.
//
// Consensus
//
// A Chain is valid when every block's index is its position, every block's
// stored hash matches its recomputed hash and, from index 1 onwards, every
// block references the hash of the block before it. A Chain only ever replaces its blocks with a candidate that is
// valid and preferred by the ForkChoice; the default, LongestChain, prefers
// strictly longer candidates.
//
// Stores
//
// The Store interface persists a chain. There are four implementations: a
// JSON file (JSONStore), a Badger database (BadgerStore), a SQLite database
// (SQLiteStore), and an in-memory store (InmemStore) used for testing.
package chain
