package net

import (
	"context"
	"fmt"
	"sync"

	"github.com/mosaicnetworks/blockjournal/src/chain"
	"github.com/mosaicnetworks/blockjournal/src/common"
)

// InmemTransport Implements the Transport interface, to allow blockjournal to
// be tested in-memory without going over a network. Requests are answered
// directly by the ChainHandler connected under the target address.
type InmemTransport struct {
	sync.RWMutex
	peers  map[string]ChainHandler
	closed bool
}

// NewInmemTransport is used to initialize a new transport.
func NewInmemTransport() *InmemTransport {
	return &InmemTransport{
		peers: make(map[string]ChainHandler),
	}
}

// Connect is used to connect this transport to a handler reachable under the
// given address.
func (i *InmemTransport) Connect(addr string, handler ChainHandler) {
	i.Lock()
	defer i.Unlock()
	i.peers[addr] = handler
}

// Disconnect is used to remove the ability to route to a given peer.
func (i *InmemTransport) Disconnect(addr string) {
	i.Lock()
	defer i.Unlock()
	delete(i.peers, addr)
}

// FetchChain implements the Transport interface.
func (i *InmemTransport) FetchChain(ctx context.Context, target string) ([]chain.Block, error) {
	handler, err := i.handler(ctx, target)
	if err != nil {
		return nil, err
	}
	return handler.GetChain(), nil
}

// SubmitChain implements the Transport interface.
func (i *InmemTransport) SubmitChain(ctx context.Context, target string, blocks []chain.Block) (bool, error) {
	handler, err := i.handler(ctx, target)
	if err != nil {
		return false, err
	}
	candidate := make([]chain.Block, len(blocks))
	copy(candidate, blocks)
	return handler.ReplaceChain(candidate), nil
}

// Close implements the Transport interface.
func (i *InmemTransport) Close() error {
	i.Lock()
	defer i.Unlock()
	i.closed = true
	return nil
}

func (i *InmemTransport) handler(ctx context.Context, target string) (ChainHandler, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.NewChainErr(common.NetworkError, target, err)
	}

	i.RLock()
	defer i.RUnlock()

	if i.closed {
		return nil, common.NewChainErr(common.NetworkError, "transport closed", nil)
	}

	handler, ok := i.peers[target]
	if !ok {
		return nil, common.NewChainErr(common.NetworkError,
			fmt.Sprintf("failed to connect to peer: %v", target), nil)
	}

	return handler, nil
}
