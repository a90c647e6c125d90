package net

import (
	"context"

	"github.com/mosaicnetworks/blockjournal/src/chain"
)

// Transport provides an interface for network transports to allow a node to
// communicate with other nodes.
type Transport interface {

	// FetchChain requests the full chain of the target node. Blocks are
	// returned unvalidated.
	FetchChain(ctx context.Context, target string) ([]chain.Block, error)

	// SubmitChain offers a chain to the target node. It returns true if the
	// target adopted it.
	SubmitChain(ctx context.Context, target string, blocks []chain.Block) (bool, error)

	// Close permanently closes a transport, stopping any associated goroutines
	// and freeing other resources.
	Close() error
}

// ChainHandler is implemented by the component that answers the requests of
// remote nodes.
type ChainHandler interface {
	// GetChain returns a copy of the local chain.
	GetChain() []chain.Block
	// ReplaceChain applies the replacement rule to a candidate chain and
	// reports whether it was adopted.
	ReplaceChain(candidate []chain.Block) bool
}
