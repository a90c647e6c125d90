package peers

// Peer is a remote node that serves its chain.
type Peer struct {
	NetAddr string
	Moniker string
}

// NewPeer ...
func NewPeer(netAddr, moniker string) *Peer {
	return &Peer{
		NetAddr: netAddr,
		Moniker: moniker,
	}
}

// String returns the moniker followed by the address, or just the address if
// there is no moniker.
func (p *Peer) String() string {
	if p.Moniker == "" {
		return p.NetAddr
	}
	return p.Moniker + "@" + p.NetAddr
}

// ExcludePeer is used to exclude a single peer from a list of peers.
func ExcludePeer(peers []*Peer, netAddr string) (int, []*Peer) {
	index := -1
	otherPeers := make([]*Peer, 0, len(peers))
	for i, p := range peers {
		if p.NetAddr != netAddr {
			otherPeers = append(otherPeers, p)
		} else {
			index = i
		}
	}
	return index, otherPeers
}
