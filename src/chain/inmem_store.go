package chain

import (
	"sync"

	cm "github.com/mosaicnetworks/blockjournal/src/common"
)

// InmemStore keeps a copy of the last saved chain in memory.
type InmemStore struct {
	sync.Mutex

	blocks []Block
	saved  bool
}

// NewInmemStore ...
func NewInmemStore() *InmemStore {
	return &InmemStore{}
}

// Save implements the Store interface.
func (s *InmemStore) Save(blocks []Block) error {
	s.Lock()
	defer s.Unlock()

	s.blocks = copyBlocks(blocks)
	s.saved = true

	return nil
}

// Load implements the Store interface.
func (s *InmemStore) Load() ([]Block, error) {
	s.Lock()
	defer s.Unlock()

	if !s.saved {
		return nil, cm.NewStoreErr("Chain", cm.KeyNotFound, "inmem")
	}

	if len(s.blocks) == 0 {
		return nil, cm.NewStoreErr("Chain", cm.Empty, "inmem")
	}

	return copyBlocks(s.blocks), nil
}

// Close implements the Store interface.
func (s *InmemStore) Close() error {
	return nil
}

// StorePath implements the Store interface.
func (s *InmemStore) StorePath() string {
	return ""
}
