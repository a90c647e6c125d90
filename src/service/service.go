package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/mosaicnetworks/blockjournal/src/chain"
	"github.com/mosaicnetworks/blockjournal/src/common"
	"github.com/mosaicnetworks/blockjournal/src/net"
	"github.com/mosaicnetworks/blockjournal/src/node"
	"github.com/mosaicnetworks/blockjournal/src/peers"
	"github.com/sirupsen/logrus"
)

// maxBodySize caps the size of a chain submitted to /sync.
const maxBodySize = 64 << 20

// Service ...
type Service struct {
	bindAddress string
	node        *node.Node
	mux         *http.ServeMux
	server      *http.Server
	logger      *logrus.Entry
}

// NewService ...
func NewService(bindAddress string, n *node.Node, logger *logrus.Entry) *Service {
	service := Service{
		bindAddress: bindAddress,
		node:        n,
		mux:         http.NewServeMux(),
		logger:      logger,
	}

	service.registerHandlers()

	service.server = &http.Server{
		Addr:              bindAddress,
		Handler:           service.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &service
}

// registerHandlers registers the API handlers with the Service's own ServeMux,
// so that several nodes can live in the same process.
func (s *Service) registerHandlers() {
	s.logger.Debug("Registering blockjournal API handlers")
	s.mux.HandleFunc(net.ChainPath, s.makeHandler(http.MethodGet, s.GetChain))
	s.mux.HandleFunc(net.SyncPath, s.makeHandler(http.MethodPost, s.Sync))
	s.mux.HandleFunc("/stats", s.makeHandler(http.MethodGet, s.GetStats))
	s.mux.HandleFunc("/block/", s.makeHandler(http.MethodGet, s.GetBlock))
	s.mux.HandleFunc("/peers", s.makeHandler(http.MethodGet, s.GetPeers))
}

func (s *Service) makeHandler(method string, fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// enable CORS
		w.Header().Set("Access-Control-Allow-Origin", "*")

		if r.Method != method {
			w.Header().Set("Allow", method)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		fn(w, r)
	}
}

// Handler returns the http.Handler serving the API.
func (s *Service) Handler() http.Handler {
	return s.mux
}

// Serve calls ListenAndServe. This is a blocking call. It returns nil after
// Shutdown.
func (s *Service) Serve() error {
	s.logger.WithField("bind_address", s.bindAddress).Debug("Serving blockjournal API")

	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		s.logger.Error(err)
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Service) Shutdown(ctx context.Context) error {
	s.logger.Debug("Shutting down blockjournal API")
	return s.server.Shutdown(ctx)
}

// GetChain ...
func (s *Service) GetChain(w http.ResponseWriter, r *http.Request) {
	// Copy under the chain's read lock, encode outside of it
	blocks := s.node.GetChain()

	writeJSON(w, chain.WireChain{Chain: blocks})
}

// Sync ...
func (s *Service) Sync(w http.ResponseWriter, r *http.Request) {
	var wire chain.WireChain

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(&wire); err != nil {
		err = common.NewChainErr(common.SerializationError, "decoding submitted chain", err)
		s.logger.WithError(err).Error("Sync")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	adopted := s.node.ReplaceChain(wire.Chain)

	s.logger.WithFields(logrus.Fields{
		"remote":  r.RemoteAddr,
		"length":  len(wire.Chain),
		"adopted": adopted,
	}).Debug("Sync")

	writeJSON(w, net.SyncStatus(adopted))
}

// GetStats ...
func (s *Service) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := s.node.GetStats()

	writeJSON(w, stats)
}

// GetBlock ...
func (s *Service) GetBlock(w http.ResponseWriter, r *http.Request) {
	param := r.URL.Path[len("/block/"):]

	blockIndex, err := strconv.Atoi(param)

	if err != nil {
		s.logger.WithError(err).Errorf("Parsing block_index parameter %s", param)

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	block, err := s.node.GetBlock(blockIndex)

	if err != nil {
		s.logger.WithError(err).Debugf("Retrieving block %d", blockIndex)

		status := http.StatusInternalServerError
		if common.IsStore(err, common.KeyNotFound) {
			status = http.StatusNotFound
		}

		http.Error(w, err.Error(), status)

		return
	}

	writeJSON(w, block)
}

// GetPeers ...
func (s *Service) GetPeers(w http.ResponseWriter, r *http.Request) {
	returnPeerSet(w, r, s.node.GetPeers())
}

func returnPeerSet(w http.ResponseWriter, r *http.Request, peers []*peers.Peer) {
	writeJSON(w, peers)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	encoder := json.NewEncoder(w)

	encoder.Encode(v)
}
