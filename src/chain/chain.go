package chain

import (
	"fmt"
	"sync"

	"github.com/mosaicnetworks/blockjournal/src/common"
)

// Chain is an ordered sequence of Blocks, starting with a genesis block. It is
// safe for concurrent use: reads take a shared lock, Append and Replace take
// the exclusive lock. Blocks never leave the Chain by reference; accessors
// return copies.
type Chain struct {
	sync.RWMutex

	blocks     []Block
	forkChoice ForkChoice
}

// Option configures a Chain.
type Option func(*Chain)

// WithForkChoice overrides the default LongestChain rule.
func WithForkChoice(fc ForkChoice) Option {
	return func(c *Chain) {
		c.forkChoice = fc
	}
}

// NewChain creates a Chain containing only a genesis block.
func NewChain(opts ...Option) *Chain {
	genesis := NewBlock(0,
		NewEntry(GenesisContent, GenesisLocation),
		GenesisPreviousHash)

	return newChain([]Block{genesis}, opts)
}

// NewChainFromBlocks creates a Chain from existing blocks, typically loaded
// from a Store. The blocks must form a valid, non-empty chain.
func NewChainFromBlocks(blocks []Block, opts ...Option) (*Chain, error) {
	if len(blocks) == 0 {
		return nil, common.NewChainErr(common.ValidationRejected, "chain has no blocks", nil)
	}

	if err := Validate(blocks); err != nil {
		return nil, err
	}

	return newChain(copyBlocks(blocks), opts), nil
}

func newChain(blocks []Block, opts []Option) *Chain {
	c := &Chain{
		blocks:     blocks,
		forkChoice: LongestChain{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Append creates a new Block for the given content at the tail of the chain
// and returns a copy of it.
func (c *Chain) Append(content, location string) (Block, error) {
	c.Lock()
	defer c.Unlock()

	if len(c.blocks) == 0 {
		return Block{}, common.NewChainErr(common.InvariantViolation, "append on a chain with no blocks", nil)
	}

	tail := c.blocks[len(c.blocks)-1]

	block := NewBlock(uint64(len(c.blocks)), NewEntry(content, location), tail.Hash)

	c.blocks = append(c.blocks, block)

	return block, nil
}

// Replace instates the candidate as the new chain iff it is valid and the
// ForkChoice prefers it. Otherwise the Chain is left untouched. The result
// reports whether the candidate was adopted.
func (c *Chain) Replace(candidate []Block) bool {
	return c.TryReplace(candidate) == nil
}

// TryReplace is like Replace but explains why a candidate was rejected with a
// ValidationRejected error.
func (c *Chain) TryReplace(candidate []Block) error {
	// Candidates are private data, so validation happens outside the lock.
	if err := Validate(candidate); err != nil {
		return err
	}

	blocks := copyBlocks(candidate)

	c.Lock()
	defer c.Unlock()

	if !c.forkChoice.Prefer(c.blocks, blocks) {
		return common.NewChainErr(common.ValidationRejected,
			fmt.Sprintf("candidate of length %d not preferred over current length %d", len(blocks), len(c.blocks)),
			nil)
	}

	c.blocks = blocks

	return nil
}

// Blocks returns a copy of all the blocks.
func (c *Chain) Blocks() []Block {
	c.RLock()
	defer c.RUnlock()

	return copyBlocks(c.blocks)
}

// Len returns the number of blocks.
func (c *Chain) Len() int {
	c.RLock()
	defer c.RUnlock()

	return len(c.blocks)
}

// Tail returns the last block.
func (c *Chain) Tail() (Block, error) {
	c.RLock()
	defer c.RUnlock()

	if len(c.blocks) == 0 {
		return Block{}, common.NewChainErr(common.InvariantViolation, "chain has no blocks", nil)
	}

	return c.blocks[len(c.blocks)-1], nil
}

// GetBlock returns the block at the given index.
func (c *Chain) GetBlock(index int) (Block, error) {
	c.RLock()
	defer c.RUnlock()

	if index < 0 || index >= len(c.blocks) {
		return Block{}, common.NewStoreErr("Block", common.KeyNotFound, fmt.Sprint(index))
	}

	return c.blocks[index], nil
}

// IsValid reports whether the blocks form a valid chain.
func (c *Chain) IsValid() bool {
	c.RLock()
	defer c.RUnlock()

	return IsValid(c.blocks)
}

// IsValid reports whether the blocks form a valid chain. It has no side
// effects.
func IsValid(blocks []Block) bool {
	return Validate(blocks) == nil
}

// Validate returns nil if the blocks form a valid chain, or a
// ValidationRejected error pointing at the first offending block. Every block
// must carry its position as its index, so a chain always starts at index 0.
// Empty sequences are valid.
func Validate(blocks []Block) error {
	if len(blocks) == 0 {
		return nil
	}

	if blocks[0].Index != 0 {
		return rejected(0, "index %d should be 0", blocks[0].Index)
	}

	if h := blocks[0].CalculateHash(); h != blocks[0].Hash {
		return rejected(0, "stored hash %s does not match computed hash %s", blocks[0].Hash, h)
	}

	for i := 1; i < len(blocks); i++ {
		prev := blocks[i-1]
		cur := blocks[i]

		if h := cur.CalculateHash(); h != cur.Hash {
			return rejected(i, "stored hash %s does not match computed hash %s", cur.Hash, h)
		}

		if cur.PreviousHash != prev.Hash {
			return rejected(i, "previous hash %s does not match hash %s of block %d", cur.PreviousHash, prev.Hash, i-1)
		}

		if cur.Index != uint64(i) {
			return rejected(i, "index %d should be %d", cur.Index, i)
		}
	}

	return nil
}

func rejected(position int, format string, args ...interface{}) error {
	return common.NewChainErr(common.ValidationRejected,
		fmt.Sprintf("block %d: %s", position, fmt.Sprintf(format, args...)),
		nil)
}

func copyBlocks(blocks []Block) []Block {
	res := make([]Block, len(blocks))
	copy(res, blocks)
	return res
}
