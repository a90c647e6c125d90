package chain

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/mosaicnetworks/blockjournal/src/crypto"
)

const (
	// GenesisContent is the content of the genesis Entry.
	GenesisContent = "Genesis Block"
	// GenesisLocation is the location of the genesis Entry.
	GenesisLocation = "N/A"
	// GenesisPreviousHash is the sentinel previous-hash of the genesis Block.
	GenesisPreviousHash = "0"
)

// Block wraps one Entry with its position in the chain, the hash of the
// previous block, and its own hash.
type Block struct {
	Index        uint64    `json:"index"`
	Timestamp    time.Time `json:"timestamp"`
	Entry        Entry     `json:"entry"`
	PreviousHash string    `json:"previous_hash"`
	Hash         string    `json:"hash"`
}

// blockHashBody holds every Block field except Hash. Fields are declared in
// key order.
type blockHashBody struct {
	Entry        entryHashBody `json:"entry"`
	Index        uint64        `json:"index"`
	PreviousHash string        `json:"previous_hash"`
	Timestamp    string        `json:"timestamp"`
}

// NewBlock creates a Block stamped with the current time and computes its
// hash.
func NewBlock(index uint64, entry Entry, previousHash string) Block {
	return newBlockAt(index, time.Now().UTC(), entry, previousHash)
}

func newBlockAt(index uint64, timestamp time.Time, entry Entry, previousHash string) Block {
	block := Block{
		Index:        index,
		Timestamp:    timestamp,
		Entry:        entry,
		PreviousHash: previousHash,
	}

	block.Hash = block.CalculateHash()

	return block
}

// CalculateHash recomputes the digest of the Block from its current fields.
// The stored Hash does not take part.
func (b Block) CalculateHash() string {
	return crypto.SHA256Hex(canonicalMarshal(b.hashBody()))
}

func (b Block) hashBody() blockHashBody {
	return blockHashBody{
		Entry:        b.Entry.hashBody(),
		Index:        b.Index,
		PreviousHash: b.PreviousHash,
		Timestamp:    formatTimestamp(b.Timestamp),
	}
}

// IsGenesis ...
func (b Block) IsGenesis() bool {
	return b.Index == 0 && b.PreviousHash == GenesisPreviousHash
}

// Marshal - json encoding of Block
func (b *Block) Marshal() ([]byte, error) {
	bf := bytes.NewBuffer([]byte{})
	enc := json.NewEncoder(bf)
	if err := enc.Encode(b); err != nil {
		return nil, err
	}
	return bf.Bytes(), nil
}

// Unmarshal ...
func (b *Block) Unmarshal(data []byte) error {
	bf := bytes.NewBuffer(data)
	dec := json.NewDecoder(bf)
	if err := dec.Decode(b); err != nil {
		return err
	}
	return nil
}

// WireChain is the structured form of a chain, exchanged between peers and
// written to disk: {"chain":[...]}.
type WireChain struct {
	Chain []Block `json:"chain"`
}

// Marshal ...
func (w *WireChain) Marshal() ([]byte, error) {
	bf := bytes.NewBuffer([]byte{})
	enc := json.NewEncoder(bf)
	if err := enc.Encode(w); err != nil {
		return nil, err
	}
	return bf.Bytes(), nil
}

// Unmarshal ...
func (w *WireChain) Unmarshal(data []byte) error {
	bf := bytes.NewBuffer(data)
	dec := json.NewDecoder(bf)
	if err := dec.Decode(w); err != nil {
		return err
	}
	return nil
}
