package chain

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	cm "github.com/mosaicnetworks/blockjournal/src/common"
	"github.com/pkg/errors"
)

// JSONStore persists the chain in a single JSON file, in the same format that
// is exchanged between peers. The file is rewritten atomically on every Save.
type JSONStore struct {
	l    sync.Mutex
	path string
}

// NewJSONStore creates a JSONStore backed by the file at path. The file does
// not need to exist yet.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

// Save implements the Store interface.
func (j *JSONStore) Save(blocks []Block) error {
	j.l.Lock()
	defer j.l.Unlock()

	wire := WireChain{Chain: blocks}

	data, err := wire.Marshal()
	if err != nil {
		return cm.NewChainErr(cm.SerializationError, "encoding chain", err)
	}

	dir := filepath.Dir(j.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.Wrapf(err, "creating directory %s", dir)
	}

	tmp, err := ioutil.TempFile(dir, filepath.Base(j.path)+".tmp")
	if err != nil {
		return errors.Wrap(err, "creating temporary chain file")
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(err, "writing temporary chain file")
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "closing temporary chain file")
	}

	if err := os.Rename(tmp.Name(), j.path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "replacing %s", j.path)
	}

	return nil
}

// Load implements the Store interface.
func (j *JSONStore) Load() ([]Block, error) {
	j.l.Lock()
	defer j.l.Unlock()

	buf, err := ioutil.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cm.NewStoreErr("Chain", cm.KeyNotFound, j.path)
		}
		return nil, errors.Wrapf(err, "reading %s", j.path)
	}

	var wire WireChain
	if err := wire.Unmarshal(buf); err != nil {
		return nil, cm.NewChainErr(cm.SerializationError, "decoding "+j.path, err)
	}

	if len(wire.Chain) == 0 {
		return nil, cm.NewStoreErr("Chain", cm.Empty, j.path)
	}

	return wire.Chain, nil
}

// Close implements the Store interface.
func (j *JSONStore) Close() error {
	return nil
}

// StorePath implements the Store interface.
func (j *JSONStore) StorePath() string {
	return j.path
}
