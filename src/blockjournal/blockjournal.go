package blockjournal

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mosaicnetworks/blockjournal/src/chain"
	"github.com/mosaicnetworks/blockjournal/src/common"
	"github.com/mosaicnetworks/blockjournal/src/config"
	"github.com/mosaicnetworks/blockjournal/src/net"
	"github.com/mosaicnetworks/blockjournal/src/node"
	"github.com/mosaicnetworks/blockjournal/src/peers"
	"github.com/mosaicnetworks/blockjournal/src/service"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// BlockJournal is a struct containing the key parts of a blockjournal node
type BlockJournal struct {
	Config    *config.Config
	Chain     *chain.Chain
	Node      *node.Node
	Transport net.Transport
	Store     chain.Store
	Peers     *peers.PeerSet
	Service   *service.Service
	logger    *logrus.Entry

	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

// NewBlockJournal is a factory method to produce a BlockJournal instance.
func NewBlockJournal(c *config.Config) *BlockJournal {
	engine := &BlockJournal{
		Config:     c,
		logger:     c.Logger(),
		shutdownCh: make(chan struct{}),
	}

	return engine
}

// Init initialises the engine based on its configuration.
func (b *BlockJournal) Init() error {
	b.logger.WithFields(logrus.Fields{
		"datadir": b.Config.DataDir,
		"store":   b.Config.Store,
	}).Debug("Config")

	if err := b.initPeers(); err != nil {
		b.logger.WithError(err).Error("blockjournal.go:Init() initPeers")
		return err
	}

	if err := b.initStore(); err != nil {
		b.logger.WithError(err).Error("blockjournal.go:Init() initStore")
		return err
	}

	if err := b.initChain(); err != nil {
		b.logger.WithError(err).Error("blockjournal.go:Init() initChain")
		b.Store.Close()
		return err
	}

	if err := b.initTransport(); err != nil {
		b.logger.WithError(err).Error("blockjournal.go:Init() initTransport")
		return err
	}

	if err := b.initNode(); err != nil {
		b.logger.WithError(err).Error("blockjournal.go:Init() initNode")
		return err
	}

	if err := b.initService(); err != nil {
		b.logger.WithError(err).Error("blockjournal.go:Init() initService")
		return err
	}

	return nil
}

// Run starts the HTTP service, if enabled, and the periodic sync loop. It
// blocks until Shutdown has completed, final save included. If the service
// cannot serve, Run shuts the node down and returns the error.
func (b *BlockJournal) Run() error {
	serviceErrCh := make(chan error, 1)

	if b.Service != nil {
		go func() {
			if err := b.Service.Serve(); err != nil {
				serviceErrCh <- err
			}
		}()
	}

	if b.Config.NoSync {
		b.logger.Debug("Periodic sync disabled")
	} else {
		b.Node.RunAsync()
	}

	select {
	case err := <-serviceErrCh:
		b.logger.WithError(err).Error("Service stopped")
		b.Shutdown()
		return errors.Wrap(err, "serving HTTP API")
	case <-b.shutdownCh:
		return nil
	}
}

// Shutdown stops the service and the node. The node saves the chain and
// closes the store.
func (b *BlockJournal) Shutdown() {
	b.shutdownOnce.Do(func() {
		b.logger.Debug("Shutdown")

		if b.Service != nil {
			ctx, cancel := context.WithTimeout(context.Background(), b.Config.Timeout)
			if err := b.Service.Shutdown(ctx); err != nil {
				b.logger.WithError(err).Error("Shutting down service")
			}
			cancel()
		}

		if b.Node != nil {
			b.Node.Shutdown()
		}

		close(b.shutdownCh)
	})
}

func (b *BlockJournal) initPeers() error {
	if len(b.Config.Peers) > 0 {
		b.Peers = peers.NewPeerSetFromAddrs(b.Config.Peers)
		return nil
	}

	_, peerSet, err := loadPeerFile(b.Config.DataDir, b.logger)
	if err != nil {
		return err
	}

	b.Peers = peerSet

	return nil
}

func (b *BlockJournal) initStore() error {
	store, err := NewStore(b.Config, b.logger)
	if err != nil {
		return err
	}

	b.Store = store

	return nil
}

// initChain loads the chain from the store, or creates a new one containing
// only the genesis block if there is nothing to load.
func (b *BlockJournal) initChain() error {
	blocks, err := b.Store.Load()

	switch {
	case err == nil:
		c, err := chain.NewChainFromBlocks(blocks)
		if err != nil {
			return errors.Wrapf(err, "loading chain from %s", b.Store.StorePath())
		}
		b.Chain = c
		b.logger.WithFields(logrus.Fields{
			"path":   b.Store.StorePath(),
			"length": c.Len(),
		}).Debug("Loaded chain")
	case common.IsStore(err, common.KeyNotFound), common.IsStore(err, common.Empty):
		b.Chain = chain.NewChain()
		b.logger.WithField("path", b.Store.StorePath()).Debug("No chain found, created genesis block")
	default:
		return err
	}

	return nil
}

func (b *BlockJournal) initTransport() error {
	b.Transport = net.NewHTTPTransport(b.Config.Timeout, b.logger)
	return nil
}

func (b *BlockJournal) initNode() error {
	nodeConfig := node.NewConfig(
		b.Config.SyncInterval,
		b.Config.Timeout,
		b.Config.Moniker,
		b.logger.Logger,
	)

	b.logger.WithField("peers", b.Peers.NetAddrs()).Debug("PEERS")

	b.Node = node.NewNode(
		nodeConfig,
		b.Chain,
		b.Store,
		b.Transport,
		b.Peers,
	)

	return nil
}

func (b *BlockJournal) initService() error {
	if !b.Config.NoService {
		b.Service = service.NewService(b.Config.ServiceAddr, b.Node, b.logger)
	}
	return nil
}

// NewStore creates the Store selected by the configuration.
func NewStore(conf *config.Config, logger *logrus.Entry) (chain.Store, error) {
	switch conf.Store {
	case config.JSONStore:
		if err := os.MkdirAll(conf.DataDir, 0700); err != nil {
			return nil, errors.Wrap(err, "creating data directory")
		}
		logger.WithField("path", conf.ChainFile()).Debug("Using json store")
		return chain.NewJSONStore(conf.ChainFile()), nil
	case config.BadgerStore:
		logger.WithField("path", conf.DatabaseDir).Debug("Using badger store")
		store, err := chain.NewBadgerStore(conf.DatabaseDir, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.SQLiteStore:
		logger.WithField("path", conf.SQLiteFile()).Debug("Using sqlite store")
		store, err := chain.NewSQLiteStore(conf.SQLiteFile())
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.InmemStore:
		logger.Debug("Using in-mem store")
		return chain.NewInmemStore(), nil
	default:
		return nil, fmt.Errorf("unknown store %q", conf.Store)
	}
}

// Verify loads the stored chain and checks that it is valid. It returns the
// number of blocks that were checked.
func Verify(conf *config.Config, logger *logrus.Entry) (int, error) {
	store, err := NewStore(conf, logger)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	blocks, err := store.Load()
	if err != nil {
		return 0, err
	}

	start := time.Now()
	err = chain.Validate(blocks)

	logger.WithFields(logrus.Fields{
		"length":   len(blocks),
		"duration": time.Since(start),
	}).Debug("Verify")

	return len(blocks), err
}
