package chain

import (
	"database/sql"
	"os"
	"path/filepath"

	cm "github.com/mosaicnetworks/blockjournal/src/common"
	// registers the sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const createTablesSQL = `
CREATE TABLE IF NOT EXISTS blocks (
	"index"       INTEGER PRIMARY KEY,
	hash          TEXT NOT NULL,
	previous_hash TEXT NOT NULL,
	data          TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);`

// SQLiteStore persists the chain in a SQLite database file. Each block is a
// row holding its JSON encoding; the hash columns are there for ad-hoc
// queries.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens or creates the database file at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrapf(err, "creating directory %s", dir)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "pinging database")
	}

	if _, err := db.Exec(createTablesSQL); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating tables")
	}

	return &SQLiteStore{
		db:   db,
		path: path,
	}, nil
}

// Save implements the Store interface. Existing rows are replaced in a single
// transaction.
func (s *SQLiteStore) Save(blocks []Block) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM blocks`); err != nil {
		return errors.Wrap(err, "deleting blocks")
	}

	stmt, err := tx.Prepare(`INSERT INTO blocks ("index", hash, previous_hash, data) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing insert")
	}
	defer stmt.Close()

	for i := range blocks {
		data, err := blocks[i].Marshal()
		if err != nil {
			return cm.NewChainErr(cm.SerializationError, "encoding block", err)
		}
		if _, err := stmt.Exec(i, blocks[i].Hash, blocks[i].PreviousHash, string(data)); err != nil {
			return errors.Wrapf(err, "inserting block %d", i)
		}
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, chainLengthKey, len(blocks)); err != nil {
		return errors.Wrap(err, "writing chain length")
	}

	return tx.Commit()
}

// Load implements the Store interface.
func (s *SQLiteStore) Load() ([]Block, error) {
	var length int
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, chainLengthKey).Scan(&length)
	if err == sql.ErrNoRows {
		return nil, cm.NewStoreErr("Chain", cm.KeyNotFound, s.path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading chain length")
	}

	if length == 0 {
		return nil, cm.NewStoreErr("Chain", cm.Empty, s.path)
	}

	rows, err := s.db.Query(`SELECT data FROM blocks ORDER BY "index"`)
	if err != nil {
		return nil, errors.Wrap(err, "querying blocks")
	}
	defer rows.Close()

	res := make([]Block, 0, length)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, errors.Wrap(err, "scanning block")
		}

		var block Block
		if err := block.Unmarshal([]byte(data)); err != nil {
			return nil, cm.NewChainErr(cm.SerializationError, "decoding block", err)
		}

		res = append(res, block)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating blocks")
	}

	if len(res) != length {
		return nil, cm.NewChainErr(cm.SerializationError, "chain length does not match the number of blocks", nil)
	}

	return res, nil
}

// Close implements the Store interface.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// StorePath implements the Store interface.
func (s *SQLiteStore) StorePath() string {
	return s.path
}
