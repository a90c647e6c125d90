// Package blockjournal implements the engine that assembles a blockjournal
// node from a Config.
//
// Init loads the chain from the configured store, or starts a new chain with
// only the genesis block if the store is empty. It then creates the transport,
// the node, and the HTTP service. Run serves the chain and syncs with peers
// until Shutdown, which saves the chain one last time.
package blockjournal
