package node

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/mosaicnetworks/blockjournal/src/chain"
	"github.com/mosaicnetworks/blockjournal/src/net"
	"github.com/mosaicnetworks/blockjournal/src/peers"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Node defines a blockjournal node
type Node struct {
	state

	conf   *Config
	logger *logrus.Entry

	chain *chain.Chain
	store chain.Store
	trans net.Transport
	peers *peers.PeerSet

	ctx        context.Context
	cancel     context.CancelFunc
	shutdownCh chan struct{}
	shutdownMu sync.Mutex

	controlTimer *ControlTimer

	// saveMu covers both the snapshot and the write in save
	saveMu sync.Mutex

	start time.Time

	statsLock    sync.Mutex
	syncRequests int
	syncErrors   int
	adoptions    int
	saveErrors   int
}

// NewNode is a factory method that returns a Node instance. The chain is
// shared with whoever else holds it, typically the service.
func NewNode(conf *Config,
	c *chain.Chain,
	store chain.Store,
	trans net.Transport,
	peerSet *peers.PeerSet,
) *Node {
	ctx, cancel := context.WithCancel(context.Background())

	if peerSet == nil {
		peerSet = peers.NewPeerSet([]*peers.Peer{})
	}

	node := Node{
		conf:         conf,
		logger:       conf.Logger.WithField("moniker", conf.Moniker),
		chain:        c,
		store:        store,
		trans:        trans,
		peers:        peerSet,
		ctx:          ctx,
		cancel:       cancel,
		shutdownCh:   make(chan struct{}),
		controlTimer: NewRandomControlTimer(),
		start:        time.Now(),
	}

	return &node
}

// RunAsync runs the node in a separate goroutine
func (n *Node) RunAsync() {
	n.logger.Debug("runasync")

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.run()
	}()
}

func (n *Node) run() {
	// The ControlTimer paces the sync rounds. It is reset after every round
	// so that a slow round does not cause the next one to start right away.
	go n.controlTimer.Run(n.conf.SyncInterval)

	n.logger.WithField("interval", n.conf.SyncInterval).Debug("Run loop")

	for {
		select {
		case <-n.controlTimer.tickCh:
			if n.getState() == Shutdown {
				return
			}
			n.setState(Syncing)
			n.SyncWithPeers(n.ctx)
			if n.getState() == Shutdown {
				return
			}
			n.setState(Idle)
			n.resetTimer()
		case <-n.shutdownCh:
			return
		}
	}
}

func (n *Node) resetTimer() {
	if !n.controlTimer.set {
		select {
		case n.controlTimer.resetCh <- n.conf.SyncInterval:
		case <-n.shutdownCh:
		}
	}
}

// SyncPeer fetches the chain of a single peer and applies the replacement
// rule to it. It returns the terminal state of the exchange. The fetch is
// bounded by the configured Timeout. The chain is not saved.
func (n *Node) SyncPeer(ctx context.Context, peer *peers.Peer) PeerSyncState {
	logger := n.logger.WithField("peer", peer.String())

	logger.WithField("state", PeerFetching).Debug("SyncPeer")

	fetchCtx, cancel := context.WithTimeout(ctx, n.conf.Timeout)
	defer cancel()

	blocks, err := n.trans.FetchChain(fetchCtx, peer.NetAddr)

	n.statsLock.Lock()
	n.syncRequests++
	if err != nil {
		n.syncErrors++
	}
	n.statsLock.Unlock()

	if err != nil {
		logger.WithError(err).Error("Failed to fetch chain")
		return PeerFetchFailed
	}

	logger.WithFields(logrus.Fields{
		"state":  PeerFetched,
		"length": len(blocks),
	}).Debug("SyncPeer")

	if err := n.chain.TryReplace(blocks); err != nil {
		logger.WithError(err).Debug("Peer chain rejected")
		return PeerRejected
	}

	n.statsLock.Lock()
	n.adoptions++
	n.statsLock.Unlock()

	logger.WithField("length", len(blocks)).Info("Adopted peer chain")

	return PeerAdopted
}

// SyncWithPeers runs SyncPeer against every known peer, one after the other,
// and returns the number of peers whose chain was adopted. If any chain was
// adopted, the resulting chain is saved; a save failure is only logged.
func (n *Node) SyncWithPeers(ctx context.Context) int {
	peerList := n.peers.Peers

	if len(peerList) == 0 {
		n.logger.Info("No peers, nothing to sync")
		return 0
	}

	adopted := 0
	for _, p := range peerList {
		if ctx.Err() != nil {
			n.logger.WithError(ctx.Err()).Debug("Sync interrupted")
			break
		}
		if n.SyncPeer(ctx, p) == PeerAdopted {
			adopted++
		}
	}

	if adopted > 0 {
		n.save()
	}

	n.logger.WithFields(logrus.Fields{
		"peers":   len(peerList),
		"adopted": adopted,
		"length":  n.chain.Len(),
	}).Debug("SyncWithPeers")

	return adopted
}

// PushToPeers offers the local chain to every known peer and returns the
// number of peers that adopted it.
func (n *Node) PushToPeers(ctx context.Context) int {
	blocks := n.chain.Blocks()

	accepted := 0
	for _, p := range n.peers.Peers {
		logger := n.logger.WithField("peer", p.String())

		pushCtx, cancel := context.WithTimeout(ctx, n.conf.Timeout)
		ok, err := n.trans.SubmitChain(pushCtx, p.NetAddr, blocks)
		cancel()

		if err != nil {
			logger.WithError(err).Error("Failed to push chain")
			continue
		}

		logger.WithField("adopted", ok).Debug("PushToPeers")

		if ok {
			accepted++
		}
	}

	return accepted
}

// AddEntry appends a new entry to the chain and saves it. If the save fails,
// the block remains in the in-memory chain and the error is returned.
func (n *Node) AddEntry(content, location string) (chain.Block, error) {
	block, err := n.chain.Append(content, location)
	if err != nil {
		return chain.Block{}, err
	}

	n.logger.WithFields(logrus.Fields{
		"index": block.Index,
		"hash":  block.Hash,
	}).Debug("AddEntry")

	if err := n.save(); err != nil {
		return block, errors.Wrap(err, "saving chain")
	}

	return block, nil
}

// ReplaceChain applies the replacement rule to a candidate chain submitted by
// a remote node, and saves the chain if it was adopted. It implements the
// net.ChainHandler interface.
func (n *Node) ReplaceChain(candidate []chain.Block) bool {
	if err := n.chain.TryReplace(candidate); err != nil {
		n.logger.WithError(err).Debug("Submitted chain rejected")
		return false
	}

	n.statsLock.Lock()
	n.adoptions++
	n.statsLock.Unlock()

	n.logger.WithField("length", len(candidate)).Info("Adopted submitted chain")

	n.save()

	return true
}

// save writes the current chain to the store. Errors are logged and returned.
func (n *Node) save() error {
	if n.store == nil {
		return nil
	}

	n.saveMu.Lock()
	defer n.saveMu.Unlock()

	if err := n.store.Save(n.chain.Blocks()); err != nil {
		n.statsLock.Lock()
		n.saveErrors++
		n.statsLock.Unlock()

		n.logger.WithError(err).Error("Failed to save chain")
		return err
	}

	return nil
}

// Shutdown stops the sync loop, saves the chain one last time, and closes the
// transport and the store.
func (n *Node) Shutdown() {
	n.shutdownMu.Lock()
	defer n.shutdownMu.Unlock()

	if n.getState() != Shutdown {
		n.logger.Debug("Shutdown")

		//Exit any non-shutdown state immediately
		n.setState(Shutdown)

		//Abort in-flight requests and stop the Run loop
		n.cancel()
		close(n.shutdownCh)

		n.waitRoutines()

		n.controlTimer.Shutdown()

		n.trans.Close()

		n.save()

		if n.store != nil {
			n.store.Close()
		}
	}
}

// GetChain returns a copy of the local chain. It implements the
// net.ChainHandler interface.
func (n *Node) GetChain() []chain.Block {
	return n.chain.Blocks()
}

// GetBlock returns the block at the given index.
func (n *Node) GetBlock(index int) (chain.Block, error) {
	return n.chain.GetBlock(index)
}

// GetPeers returns the list of peers.
func (n *Node) GetPeers() []*peers.Peer {
	return n.peers.Peers
}

// GetStats returns information about the node.
func (n *Node) GetStats() map[string]string {
	timeElapsed := time.Since(n.start)

	blocks := n.chain.Blocks()

	lastHash := ""
	if len(blocks) > 0 {
		lastHash = blocks[len(blocks)-1].Hash
	}

	n.statsLock.Lock()
	syncRequests := n.syncRequests
	syncErrors := n.syncErrors
	adoptions := n.adoptions
	saveErrors := n.saveErrors
	n.statsLock.Unlock()

	s := map[string]string{
		"chain_length":     strconv.Itoa(len(blocks)),
		"last_block_index": strconv.Itoa(len(blocks) - 1),
		"last_block_hash":  lastHash,
		"num_peers":        strconv.Itoa(n.peers.Len()),
		"sync_requests":    strconv.Itoa(syncRequests),
		"sync_errors":      strconv.Itoa(syncErrors),
		"sync_rate":        strconv.FormatFloat(syncRate(syncRequests, syncErrors), 'f', 2, 64),
		"adopted_chains":   strconv.Itoa(adoptions),
		"save_errors":      strconv.Itoa(saveErrors),
		"uptime":           timeElapsed.Round(time.Second).String(),
		"state":            n.getState().String(),
		"moniker":          n.conf.Moniker,
	}
	return s
}

func syncRate(requests, errs int) float64 {
	var syncErrorRate float64

	if requests != 0 {
		syncErrorRate = float64(errs) / float64(requests)
	}

	return 1 - syncErrorRate
}
