package blockjournal

import (
	"os"
	"strings"

	"github.com/mosaicnetworks/blockjournal/src/common"
	"github.com/mosaicnetworks/blockjournal/src/config"
	"github.com/mosaicnetworks/blockjournal/src/peers"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// LoadPeers reads the peers.json file of the data directory. A missing file
// gives an empty PeerSet.
func LoadPeers(conf *config.Config) (*peers.PeerSet, error) {
	_, peerSet, err := loadPeerFile(conf.DataDir, conf.Logger())
	return peerSet, err
}

// AddPeer adds a peer to the peers.json file of the data directory, creating
// the file if necessary, and returns the resulting PeerSet. Adding an address
// that is already listed leaves the file unchanged.
func AddPeer(conf *config.Config, netAddr, moniker string) (*peers.PeerSet, error) {
	netAddr = strings.TrimSpace(netAddr)
	if netAddr == "" {
		return nil, errors.New("empty peer address")
	}

	jsonPeerSet, peerSet, err := loadPeerFile(conf.DataDir, conf.Logger())
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(conf.DataDir, 0700); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}

	peerSet = peerSet.WithNewPeer(peers.NewPeer(netAddr, moniker))

	if err := jsonPeerSet.Write(peerSet); err != nil {
		return nil, errors.Wrapf(err, "writing %s", jsonPeerSet.Path())
	}

	return peerSet, nil
}

// RemovePeer removes an address from the peers.json file of the data
// directory and returns the resulting PeerSet. It returns a KeyNotFound
// StoreErr if the address is not listed.
func RemovePeer(conf *config.Config, netAddr string) (*peers.PeerSet, error) {
	netAddr = strings.TrimSpace(netAddr)

	jsonPeerSet, peerSet, err := loadPeerFile(conf.DataDir, conf.Logger())
	if err != nil {
		return nil, err
	}

	if _, ok := peerSet.ByNetAddr[netAddr]; !ok {
		return nil, common.NewStoreErr("Peer", common.KeyNotFound, netAddr)
	}

	peerSet = peerSet.WithRemovedPeer(netAddr)

	if err := jsonPeerSet.Write(peerSet); err != nil {
		return nil, errors.Wrapf(err, "writing %s", jsonPeerSet.Path())
	}

	return peerSet, nil
}

func loadPeerFile(dataDir string, logger *logrus.Entry) (*peers.JSONPeerSet, *peers.PeerSet, error) {
	jsonPeerSet := peers.NewJSONPeerSet(dataDir)

	peerSet, err := jsonPeerSet.PeerSet()
	if err != nil {
		if os.IsNotExist(err) {
			logger.WithField("path", jsonPeerSet.Path()).Debug("No peers file")
			return jsonPeerSet, peers.NewPeerSet([]*peers.Peer{}), nil
		}
		return nil, nil, errors.Wrapf(err, "reading %s", jsonPeerSet.Path())
	}

	return jsonPeerSet, peerSet, nil
}
