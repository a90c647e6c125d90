package common

import (
	"fmt"

	"github.com/pkg/errors"
)

// StoreErrType ...
type StoreErrType uint32

const (
	// KeyNotFound is returned when the requested item does not exist. A Store
	// that has never been written to reports KeyNotFound for the chain.
	KeyNotFound StoreErrType = iota
	// Empty is returned when a Store exists but does not contain any blocks.
	Empty
)

// StoreErr ...
type StoreErr struct {
	dataType string
	errType  StoreErrType
	key      string
}

// NewStoreErr ...
func NewStoreErr(dataType string, errType StoreErrType, key string) StoreErr {
	return StoreErr{
		dataType: dataType,
		errType:  errType,
		key:      key,
	}
}

// Error ...
func (e StoreErr) Error() string {
	m := ""
	switch e.errType {
	case KeyNotFound:
		m = "Not Found"
	case Empty:
		m = "Empty"
	}

	return fmt.Sprintf("%s, %s, %s", e.dataType, e.key, m)
}

// IsStore checks that an error is of type StoreErr and that it's code matches
// the provided StoreErr code. Wrapped errors are unwrapped.
func IsStore(err error, t StoreErrType) bool {
	var storeErr StoreErr
	return errors.As(err, &storeErr) && storeErr.errType == t
}
