package chain

import (
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger"
	cm "github.com/mosaicnetworks/blockjournal/src/common"
	"github.com/sirupsen/logrus"
)

const (
	blockPrefix    = "block"
	chainLengthKey = "chain_length"
)

// BadgerStore persists the chain in a Badger database, one key per block.
type BadgerStore struct {
	db   *badger.DB
	path string
}

// NewBadgerStore opens an existing database or creates a new one if nothing is
// found in path.
func NewBadgerStore(path string, logger *logrus.Entry) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).
		WithSyncWrites(false)

	if logger != nil {
		sub := logger.WithFields(logrus.Fields{"ns": "badger"})
		opts = opts.WithLogger(sub)
	}

	handle, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	store := &BadgerStore{
		db:   handle,
		path: path,
	}

	return store, nil
}

/*******************************************************************************
Keys
*******************************************************************************/

func blockKey(index int) []byte {
	return []byte(fmt.Sprintf("%s_%09d", blockPrefix, index))
}

/*******************************************************************************
Implement the Store interface
*******************************************************************************/

// Save implements the Store interface. The whole chain is written in a single
// transaction, and keys left over from a longer previous chain are deleted.
func (s *BadgerStore) Save(blocks []Block) error {
	tx := s.db.NewTransaction(true)
	defer tx.Discard()

	oldLength, err := txChainLength(tx)
	if err != nil && !cm.IsStore(err, cm.KeyNotFound) {
		return err
	}

	for i := range blocks {
		val, err := blocks[i].Marshal()
		if err != nil {
			return cm.NewChainErr(cm.SerializationError, "encoding block", err)
		}
		//insert [block_index] => [block bytes]
		if err := tx.Set(blockKey(i), val); err != nil {
			return err
		}
	}

	for i := len(blocks); i < oldLength; i++ {
		if err := tx.Delete(blockKey(i)); err != nil {
			return err
		}
	}

	if err := tx.Set([]byte(chainLengthKey), []byte(strconv.Itoa(len(blocks)))); err != nil {
		return err
	}

	return tx.Commit()
}

// Load implements the Store interface.
func (s *BadgerStore) Load() ([]Block, error) {
	var res []Block

	err := s.db.View(func(txn *badger.Txn) error {
		length, err := txChainLength(txn)
		if err != nil {
			return err
		}

		if length == 0 {
			return cm.NewStoreErr("Chain", cm.Empty, s.path)
		}

		res = make([]Block, 0, length)
		for i := 0; i < length; i++ {
			item, err := txn.Get(blockKey(i))
			if err != nil {
				return mapError(err, "Block", string(blockKey(i)))
			}

			blockBytes, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}

			var block Block
			if err := block.Unmarshal(blockBytes); err != nil {
				return cm.NewChainErr(cm.SerializationError, "decoding "+string(blockKey(i)), err)
			}

			res = append(res, block)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return res, nil
}

// Close implements the Store interface.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// StorePath implements the Store interface.
func (s *BadgerStore) StorePath() string {
	return s.path
}

/*******************************************************************************
DB Methods
*******************************************************************************/

func txChainLength(txn *badger.Txn) (int, error) {
	item, err := txn.Get([]byte(chainLengthKey))
	if err != nil {
		return 0, mapError(err, "Chain", chainLengthKey)
	}

	val, err := item.ValueCopy(nil)
	if err != nil {
		return 0, err
	}

	length, err := strconv.Atoi(string(val))
	if err != nil {
		return 0, cm.NewChainErr(cm.SerializationError, "decoding chain length", err)
	}

	return length, nil
}

func isDBKeyNotFound(err error) bool {
	return err == badger.ErrKeyNotFound
}

func mapError(err error, name, key string) error {
	if err != nil {
		if isDBKeyNotFound(err) {
			return cm.NewStoreErr(name, cm.KeyNotFound, key)
		}
	}
	return err
}
