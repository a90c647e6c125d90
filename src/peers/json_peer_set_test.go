package peers

import (
	"fmt"
	"io/ioutil"
	"os"
	"testing"
)

func TestJSONPeerSet(t *testing.T) {
	// Create a test dir
	dir, err := ioutil.TempDir("", "blockjournal")
	if err != nil {
		t.Fatalf("err: %v ", err)
	}
	defer os.RemoveAll(dir)

	// Create the store
	store := NewJSONPeerSet(dir)

	// Try a read, should get nothing
	peerSet, err := store.PeerSet()
	if err == nil {
		t.Fatalf("store.PeerSet() should generate an error")
	}
	if peerSet != nil {
		t.Fatalf("peerSet: %v", peerSet)
	}

	peers := []*Peer{}
	for i := 0; i < 3; i++ {
		peers = append(peers, NewPeer(fmt.Sprintf("127.0.0.1:%d", 8000+i), fmt.Sprintf("peer%d", i)))
	}

	newPeerSet := NewPeerSet(peers)
	newPeerSlice := newPeerSet.Peers

	if err := store.Write(newPeerSet); err != nil {
		t.Fatalf("err: %v", err)
	}

	// Try a read, should find 3 peers
	peerSet, err = store.PeerSet()
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if peerSet.Len() != 3 {
		t.Fatalf("peers: %v", peers)
	}

	peerSlice := peerSet.Peers

	for i := 0; i < 3; i++ {
		if peerSlice[i].NetAddr != newPeerSlice[i].NetAddr {
			t.Fatalf("peers[%d] NetAddr should be %s, not %s", i,
				newPeerSlice[i].NetAddr, peerSlice[i].NetAddr)
		}
		if peerSlice[i].Moniker != newPeerSlice[i].Moniker {
			t.Fatalf("peers[%d] Moniker should be %s, not %s", i,
				newPeerSlice[i].Moniker, peerSlice[i].Moniker)
		}
	}
}

func TestJSONPeerSetEmptyFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "blockjournal")
	if err != nil {
		t.Fatalf("err: %v ", err)
	}
	defer os.RemoveAll(dir)

	store := NewJSONPeerSet(dir)
	if err := ioutil.WriteFile(store.Path(), []byte{}, 0644); err != nil {
		t.Fatal(err)
	}

	peerSet, err := store.PeerSet()
	if err != nil {
		t.Fatal(err)
	}
	if peerSet.Len() != 0 {
		t.Fatalf("empty file should give an empty PeerSet, not %d peers", peerSet.Len())
	}
}
