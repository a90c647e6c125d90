package chain

// ForkChoice decides whether a valid candidate chain should replace the
// current one. Implementations must not modify either slice.
type ForkChoice interface {
	Prefer(current, candidate []Block) bool
}

// LongestChain prefers strictly longer candidates. Ties are always rejected,
// regardless of content.
type LongestChain struct{}

// Prefer implements the ForkChoice interface.
func (LongestChain) Prefer(current, candidate []Block) bool {
	return len(candidate) > len(current)
}
