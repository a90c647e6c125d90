package node

// PeerSyncState is the progress of a single peer within a sync round.
type PeerSyncState uint32

const (
	// PeerPending means the peer has not been contacted yet.
	PeerPending PeerSyncState = iota
	// PeerFetching means a chain request is in flight.
	PeerFetching
	// PeerFetchFailed means the peer was unreachable, timed out, or returned
	// something that is not a chain. Terminal.
	PeerFetchFailed
	// PeerFetched means a chain was received and is about to be evaluated.
	PeerFetched
	// PeerAdopted means the peer's chain replaced the local chain. Terminal.
	PeerAdopted
	// PeerRejected means the peer's chain was invalid or not longer. Terminal.
	PeerRejected
)

// String ...
func (s PeerSyncState) String() string {
	switch s {
	case PeerPending:
		return "Pending"
	case PeerFetching:
		return "Fetching"
	case PeerFetchFailed:
		return "FetchFailed"
	case PeerFetched:
		return "Fetched"
	case PeerAdopted:
		return "Adopted"
	case PeerRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}
