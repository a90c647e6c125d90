package chain

// Store is an interface for backend stores that persist a chain.
type Store interface {
	// Save replaces the persisted chain with the given blocks.
	Save(blocks []Block) error
	// Load returns the persisted chain. If nothing was ever saved, the error
	// is a common.StoreErr of type KeyNotFound. If the store exists but holds
	// no blocks, the error is of type Empty.
	Load() ([]Block, error)
	// Close closes the underlying database.
	Close() error
	// StorePath returns the filepath of the underlying database.
	StorePath() string
}
