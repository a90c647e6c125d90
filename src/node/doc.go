// Package node implements the reactive component of a blockjournal node.
//
// This is the part of blockjournal that owns the local chain and keeps it
// consistent with the chains of other nodes. Node implements a small state
// machine (Idle, Syncing, Shutdown) driven by a ControlTimer.
//
// Sync
//
// Synchronization is pull-based. When the timer fires, the node asks every
// known peer for its full chain, one peer at a time, and applies the
// replacement rule to each response: a candidate is adopted only if it is
// valid and strictly longer than the local chain. Each peer moves through the
// states Pending, Fetching, then FetchFailed or Fetched, and finally Adopted
// or Rejected. A peer that cannot be reached, times out, or answers garbage
// only affects its own exchange.
//
// After any adoption, the chain is written to the Store. A failed write is
// logged and the in-memory chain stays authoritative.
//
// Push
//
// PushToPeers is the reverse operation: it offers the local chain to every
// peer through their /sync endpoint, and counts the peers that adopted it.
package node
