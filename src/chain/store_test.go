package chain

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mosaicnetworks/blockjournal/src/common"
)

// testStoreRoundTrip exercises the behaviour shared by all Store
// implementations.
func testStoreRoundTrip(store Store, t *testing.T) {
	t.Run("Load before Save", func(t *testing.T) {
		_, err := store.Load()
		if !common.IsStore(err, common.KeyNotFound) {
			t.Fatalf("Load should return KeyNotFound before any Save, got %v", err)
		}
	})

	long := createTestChain(5, t).Blocks()

	t.Run("Save and Load", func(t *testing.T) {
		if err := store.Save(long); err != nil {
			t.Fatal(err)
		}

		loaded, err := store.Load()
		if err != nil {
			t.Fatal(err)
		}

		if !reflect.DeepEqual(long, loaded) {
			t.Fatalf("loaded chain should be\n%#v\nnot\n%#v", long, loaded)
		}
		if IsValid(loaded) != IsValid(long) {
			t.Fatal("validity should survive a round trip")
		}
	})

	t.Run("Save shorter chain", func(t *testing.T) {
		short := createTestChain(2, t).Blocks()

		if err := store.Save(short); err != nil {
			t.Fatal(err)
		}

		loaded, err := store.Load()
		if err != nil {
			t.Fatal(err)
		}

		if !reflect.DeepEqual(short, loaded) {
			t.Fatalf("loaded chain should be\n%#v\nnot\n%#v", short, loaded)
		}
	})

	t.Run("Invalid chain round trip", func(t *testing.T) {
		invalid := createTestChain(3, t).Blocks()
		invalid[1].Entry.Content = "forged"

		if err := store.Save(invalid); err != nil {
			t.Fatal(err)
		}

		loaded, err := store.Load()
		if err != nil {
			t.Fatal(err)
		}

		if IsValid(loaded) {
			t.Fatal("an invalid chain should still be invalid after a round trip")
		}
	})

	t.Run("Save empty chain", func(t *testing.T) {
		if err := store.Save([]Block{}); err != nil {
			t.Fatal(err)
		}

		_, err := store.Load()
		if !common.IsStore(err, common.Empty) {
			t.Fatalf("Load should return Empty, got %v", err)
		}
	})
}

func TestInmemStore(t *testing.T) {
	store := NewInmemStore()
	defer store.Close()

	testStoreRoundTrip(store, t)
}

func TestJSONStore(t *testing.T) {
	dir, err := ioutil.TempDir("", "blockjournal")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	store := NewJSONStore(filepath.Join(dir, "data", "chain.json"))
	defer store.Close()

	testStoreRoundTrip(store, t)
}

func TestJSONStoreCorrupted(t *testing.T) {
	dir, err := ioutil.TempDir("", "blockjournal")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "chain.json")
	if err := ioutil.WriteFile(path, []byte(`{"chain": [{"index": "zero"`), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(path)

	_, err = store.Load()
	if !common.IsChain(err, common.SerializationError) {
		t.Fatalf("corrupted file should return a SerializationError, got %v", err)
	}
}

func TestJSONStoreFormat(t *testing.T) {
	dir, err := ioutil.TempDir("", "blockjournal")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "chain.json")
	store := NewJSONStore(path)

	blocks := createTestChain(2, t).Blocks()
	if err := store.Save(blocks); err != nil {
		t.Fatal(err)
	}

	raw, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var wire WireChain
	if err := wire.Unmarshal(raw); err != nil {
		t.Fatal(err)
	}
	if len(wire.Chain) != 2 {
		t.Fatalf("file should contain 2 blocks, not %d", len(wire.Chain))
	}

	// No temporary files are left behind.
	files, err := ioutil.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("directory should only contain chain.json, found %d files", len(files))
	}
}

func TestBadgerStore(t *testing.T) {
	dir, err := ioutil.TempDir("", "badger")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	store, err := NewBadgerStore(dir, common.NewTestEntry(t, common.TestLogLevel))
	if err != nil {
		t.Fatal(err)
	}

	if store.StorePath() != dir {
		t.Fatalf("unexpected path %q", store.StorePath())
	}

	testStoreRoundTrip(store, t)

	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestBadgerStoreReopen(t *testing.T) {
	dir, err := ioutil.TempDir("", "badger")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	blocks := createTestChain(4, t).Blocks()

	store, err := NewBadgerStore(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save(blocks); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewBadgerStore(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	loaded, err := reopened.Load()
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(blocks, loaded) {
		t.Fatalf("reopened store should return the saved chain")
	}
}

func newTestSQLiteStore(path string, t *testing.T) *SQLiteStore {
	store, err := NewSQLiteStore(path)
	if err != nil {
		// the driver needs cgo
		if strings.Contains(err.Error(), "CGO_ENABLED") {
			t.Skip(err)
		}
		t.Fatal(err)
	}
	return store
}

func TestSQLiteStore(t *testing.T) {
	dir, err := ioutil.TempDir("", "blockjournal")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "chain.db")

	store := newTestSQLiteStore(path, t)

	if store.StorePath() != path {
		t.Fatalf("unexpected path %q", store.StorePath())
	}

	testStoreRoundTrip(store, t)

	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSQLiteStoreReopen(t *testing.T) {
	dir, err := ioutil.TempDir("", "blockjournal")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "chain.db")
	blocks := createTestChain(4, t).Blocks()

	store := newTestSQLiteStore(path, t)
	if err := store.Save(blocks); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened := newTestSQLiteStore(path, t)
	defer reopened.Close()

	loaded, err := reopened.Load()
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(blocks, loaded) {
		t.Fatalf("reopened store should return the saved chain")
	}
}
