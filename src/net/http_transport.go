package net

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/mosaicnetworks/blockjournal/src/chain"
	"github.com/mosaicnetworks/blockjournal/src/common"
	"github.com/sirupsen/logrus"
)

// maxResponseSize caps the bytes read from a peer response.
const maxResponseSize = 64 << 20

// HTTPTransport implements the Transport interface with plain HTTP requests.
// Targets are host:port addresses; the scheme defaults to http.
type HTTPTransport struct {
	client *http.Client
	logger *logrus.Entry
}

// NewHTTPTransport creates an HTTPTransport whose requests are bounded by the
// given timeout. Contexts passed to FetchChain and SubmitChain may shorten it.
func NewHTTPTransport(timeout time.Duration, logger *logrus.Entry) *HTTPTransport {
	if logger == nil {
		log := logrus.New()
		log.Level = logrus.DebugLevel
		logger = logrus.NewEntry(log)
	}

	return &HTTPTransport{
		client: &http.Client{Timeout: timeout},
		logger: logger.WithField("transport", "http"),
	}
}

// FetchChain implements the Transport interface.
func (t *HTTPTransport) FetchChain(ctx context.Context, target string) ([]chain.Block, error) {
	url := targetURL(target, ChainPath)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, common.NewChainErr(common.NetworkError, url, err)
	}

	body, err := t.do(ctx, req)
	if err != nil {
		return nil, err
	}

	var wire chain.WireChain
	if err := wire.Unmarshal(body); err != nil {
		return nil, common.NewChainErr(common.SerializationError,
			fmt.Sprintf("decoding chain from %s", target), err)
	}

	t.logger.WithFields(logrus.Fields{
		"target": target,
		"blocks": len(wire.Chain),
	}).Debug("FetchChain")

	return wire.Chain, nil
}

// SubmitChain implements the Transport interface.
func (t *HTTPTransport) SubmitChain(ctx context.Context, target string, blocks []chain.Block) (bool, error) {
	url := targetURL(target, SyncPath)

	wire := chain.WireChain{Chain: blocks}
	payload, err := wire.Marshal()
	if err != nil {
		return false, common.NewChainErr(common.SerializationError, "encoding chain", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return false, common.NewChainErr(common.NetworkError, url, err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := t.do(ctx, req)
	if err != nil {
		return false, err
	}

	var status string
	if err := json.Unmarshal(body, &status); err != nil {
		return false, common.NewChainErr(common.SerializationError,
			fmt.Sprintf("decoding sync status from %s", target), err)
	}

	t.logger.WithFields(logrus.Fields{
		"target": target,
		"status": status,
	}).Debug("SubmitChain")

	switch status {
	case SyncSuccessful:
		return true, nil
	case SyncFailed:
		return false, nil
	default:
		return false, common.NewChainErr(common.SerializationError,
			fmt.Sprintf("unknown sync status %q from %s", status, target), nil)
	}
}

// Close implements the Transport interface.
func (t *HTTPTransport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}

func (t *HTTPTransport) do(ctx context.Context, req *http.Request) ([]byte, error) {
	resp, err := t.client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, common.NewChainErr(common.NetworkError, req.URL.String(), err)
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, common.NewChainErr(common.NetworkError, req.URL.String(), err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, common.NewChainErr(common.NetworkError,
			fmt.Sprintf("%s: status %d", req.URL.String(), resp.StatusCode), nil)
	}

	return body, nil
}

func targetURL(target, path string) string {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return strings.TrimRight(target, "/") + path
	}
	return "http://" + target + path
}
