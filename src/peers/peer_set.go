package peers

import (
	"bytes"
	"encoding/json"
	"strings"
)

// PeerSet is an ordered set of Peers, without duplicate addresses.
type PeerSet struct {
	Peers     []*Peer          `json:"peers"`
	ByNetAddr map[string]*Peer `json:"-"`
}

/* Constructors */

// NewPeerSet creates a new PeerSet from a list of Peers. Later duplicates of
// an address are dropped.
func NewPeerSet(peers []*Peer) *PeerSet {
	peerSet := &PeerSet{
		Peers:     []*Peer{},
		ByNetAddr: make(map[string]*Peer),
	}

	for _, peer := range peers {
		if _, ok := peerSet.ByNetAddr[peer.NetAddr]; ok {
			continue
		}
		peerSet.ByNetAddr[peer.NetAddr] = peer
		peerSet.Peers = append(peerSet.Peers, peer)
	}

	return peerSet
}

// NewPeerSetFromAddrs creates a PeerSet from a list of host:port addresses.
// Blank addresses are ignored.
func NewPeerSetFromAddrs(addrs []string) *PeerSet {
	peers := []*Peer{}
	for _, addr := range addrs {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		peers = append(peers, NewPeer(addr, ""))
	}
	return NewPeerSet(peers)
}

// WithNewPeer returns a new PeerSet with a list of peers including the new one.
func (peerSet *PeerSet) WithNewPeer(peer *Peer) *PeerSet {
	peers := append([]*Peer{}, peerSet.Peers...)
	peers = append(peers, peer)
	return NewPeerSet(peers)
}

// WithRemovedPeer returns a new PeerSet with a list of peers excluding the
// provided address.
func (peerSet *PeerSet) WithRemovedPeer(netAddr string) *PeerSet {
	_, peers := ExcludePeer(peerSet.Peers, netAddr)
	return NewPeerSet(peers)
}

/* ToSlice Methods */

// NetAddrs returns the PeerSet's slice of addresses
func (peerSet *PeerSet) NetAddrs() []string {
	res := []string{}

	for _, peer := range peerSet.Peers {
		res = append(res, peer.NetAddr)
	}

	return res
}

/* Utilities */

// Len returns the number of Peers in the PeerSet
func (peerSet *PeerSet) Len() int {
	return len(peerSet.Peers)
}

// Marshal marshals the peerset
func (peerSet *PeerSet) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(peerSet.Peers); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
