package node

import (
	"sync"
	"sync/atomic"
)

// State captures the state of a blockjournal node: Idle, Syncing, or Shutdown
type State uint32

const (
	// Idle is the state in which a node serves requests and waits for the
	// next sync round.
	Idle State = iota

	// Syncing is the state in which a node fetches the chains of its peers.
	Syncing

	// Shutdown is the state in which a node stops responding to external
	// events and closes its transport and store.
	Shutdown
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Syncing:
		return "Syncing"
	case Shutdown:
		return "Shutdown"
	default:
		return "Unknown"
	}
}

type state struct {
	state State
	wg    sync.WaitGroup
}

func (b *state) getState() State {
	stateAddr := (*uint32)(&b.state)
	return State(atomic.LoadUint32(stateAddr))
}

func (b *state) setState(s State) {
	stateAddr := (*uint32)(&b.state)
	atomic.StoreUint32(stateAddr, uint32(s))
}

func (b *state) waitRoutines() {
	b.wg.Wait()
}
