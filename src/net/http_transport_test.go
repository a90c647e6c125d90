package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mosaicnetworks/blockjournal/src/chain"
	"github.com/mosaicnetworks/blockjournal/src/common"
)

type testHandler struct {
	c *chain.Chain
}

func (h *testHandler) GetChain() []chain.Block {
	return h.c.Blocks()
}

func (h *testHandler) ReplaceChain(candidate []chain.Block) bool {
	return h.c.Replace(candidate)
}

func newTestHandler(n int, t *testing.T) *testHandler {
	c := chain.NewChain()
	for i := 1; i < n; i++ {
		if _, err := c.Append(fmt.Sprintf("entry %d", i), "test"); err != nil {
			t.Fatal(err)
		}
	}
	return &testHandler{c: c}
}

// newTestServer serves the wire contract without depending on the service
// package.
func newTestServer(h ChainHandler) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc(ChainPath, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chain.WireChain{Chain: h.GetChain()})
	})
	mux.HandleFunc(SyncPath, func(w http.ResponseWriter, r *http.Request) {
		var wire chain.WireChain
		if err := json.NewDecoder(r.Body).Decode(&wire); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(SyncStatus(h.ReplaceChain(wire.Chain)))
	})
	return httptest.NewServer(mux)
}

func TestHTTPTransportFetchChain(t *testing.T) {
	remote := newTestHandler(4, t)
	server := newTestServer(remote)
	defer server.Close()

	trans := NewHTTPTransport(time.Second, common.NewTestEntry(t, common.TestLogLevel))
	defer trans.Close()

	// both a bare host:port and a full URL are accepted
	targets := []string{strings.TrimPrefix(server.URL, "http://"), server.URL}

	for _, target := range targets {
		blocks, err := trans.FetchChain(context.Background(), target)
		if err != nil {
			t.Fatalf("FetchChain(%s): %v", target, err)
		}
		if !reflect.DeepEqual(blocks, remote.GetChain()) {
			t.Fatalf("fetched chain should equal remote chain")
		}
	}
}

func TestHTTPTransportSubmitChain(t *testing.T) {
	remote := newTestHandler(3, t)
	server := newTestServer(remote)
	defer server.Close()

	trans := NewHTTPTransport(time.Second, common.NewTestEntry(t, common.TestLogLevel))

	longer := newTestHandler(5, t).GetChain()
	shorter := newTestHandler(2, t).GetChain()

	adopted, err := trans.SubmitChain(context.Background(), server.URL, shorter)
	if err != nil {
		t.Fatal(err)
	}
	if adopted {
		t.Fatalf("shorter chain should not be adopted")
	}

	adopted, err = trans.SubmitChain(context.Background(), server.URL, longer)
	if err != nil {
		t.Fatal(err)
	}
	if !adopted {
		t.Fatalf("longer chain should be adopted")
	}
	if remote.c.Len() != 5 {
		t.Fatalf("remote chain should have 5 blocks, not %d", remote.c.Len())
	}
}

func TestHTTPTransportErrors(t *testing.T) {
	trans := NewHTTPTransport(200*time.Millisecond, common.NewTestEntry(t, common.TestLogLevel))

	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer garbage.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer broken.Close()

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer slow.Close()

	// closed right away so the address refuses connections
	down := httptest.NewServer(http.NotFoundHandler())
	downURL := down.URL
	down.Close()

	testCases := []struct {
		name    string
		target  string
		errType common.ChainErrType
	}{
		{"garbage", garbage.URL, common.SerializationError},
		{"status", broken.URL, common.NetworkError},
		{"timeout", slow.URL, common.NetworkError},
		{"unreachable", downURL, common.NetworkError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			blocks, err := trans.FetchChain(context.Background(), tc.target)
			if err == nil {
				t.Fatalf("FetchChain should fail")
			}
			if blocks != nil {
				t.Fatalf("no blocks should be returned on error")
			}
			if !common.IsChain(err, tc.errType) {
				t.Fatalf("error should be %s, got %v", tc.errType, err)
			}
		})
	}
}

func TestHTTPTransportContextCancel(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer slow.Close()

	trans := NewHTTPTransport(10*time.Second, common.NewTestEntry(t, common.TestLogLevel))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := trans.FetchChain(ctx, slow.URL)
	if !common.IsChain(err, common.NetworkError) {
		t.Fatalf("error should be NetworkError, got %v", err)
	}
	if time.Since(start) > 400*time.Millisecond {
		t.Fatalf("FetchChain should return when the context expires")
	}
}
