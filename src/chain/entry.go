package chain

import (
	"bytes"
	"time"

	"github.com/mosaicnetworks/blockjournal/src/crypto"
	"github.com/ugorji/go/codec"
)

// Entry is a unit of journal content. Entries carry no identity beyond their
// fields: two Entries with identical fields hash identically.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Location  string    `json:"location"`
	Content   string    `json:"content"`
}

// NewEntry creates an Entry stamped with the current time.
func NewEntry(content, location string) Entry {
	return Entry{
		Timestamp: time.Now().UTC(),
		Location:  location,
		Content:   content,
	}
}

// Hash returns the digest of the Entry alone.
func (e Entry) Hash() string {
	return crypto.SHA256Hex(canonicalMarshal(e.hashBody()))
}

// entryHashBody is the hashed form of an Entry. Fields are declared in key
// order.
type entryHashBody struct {
	Content   string `json:"content"`
	Location  string `json:"location"`
	Timestamp string `json:"timestamp"`
}

func (e Entry) hashBody() entryHashBody {
	return entryHashBody{
		Content:   e.Content,
		Location:  e.Location,
		Timestamp: formatTimestamp(e.Timestamp),
	}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// canonicalMarshal encodes v as JSON with sorted keys. It is only used on the
// hash body types, which contain nothing but strings and integers, so
// encoding cannot fail.
func canonicalMarshal(v interface{}) []byte {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoder(b, jh)

	enc.MustEncode(v)

	return b.Bytes()
}
