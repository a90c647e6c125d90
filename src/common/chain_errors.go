package common

import (
	"fmt"

	"github.com/pkg/errors"
)

// ChainErrType classifies the failures that can occur while building,
// exchanging, or validating chains.
type ChainErrType uint32

const (
	// SerializationError is a structured encoding or decoding failure, like a
	// malformed peer response or a corrupted file. No partial state is
	// applied.
	SerializationError ChainErrType = iota
	// NetworkError means a peer was unreachable, timed out, or returned a
	// non-success status. It only ever aborts the exchange with that peer.
	NetworkError
	// ValidationRejected describes why a candidate chain was not adopted. It
	// is informational; Replace reports rejection as a boolean.
	ValidationRejected
	// InvariantViolation means an internal consistency rule was broken, eg.
	// appending to a chain with no blocks. It indicates a bug and should not
	// be retried.
	InvariantViolation
)

// String ...
func (t ChainErrType) String() string {
	switch t {
	case SerializationError:
		return "SerializationError"
	case NetworkError:
		return "NetworkError"
	case ValidationRejected:
		return "ValidationRejected"
	case InvariantViolation:
		return "InvariantViolation"
	default:
		return "Unknown"
	}
}

// ChainErr ...
type ChainErr struct {
	errType ChainErrType
	msg     string
	cause   error
}

// NewChainErr ...
func NewChainErr(errType ChainErrType, msg string, cause error) ChainErr {
	return ChainErr{
		errType: errType,
		msg:     msg,
		cause:   cause,
	}
}

// Error ...
func (e ChainErr) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.errType, e.msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.errType, e.msg)
}

// Unwrap returns the underlying error, if any.
func (e ChainErr) Unwrap() error {
	return e.cause
}

// Type ...
func (e ChainErr) Type() ChainErrType {
	return e.errType
}

// IsChain checks that an error, or any error it wraps, is a ChainErr of the
// given type.
func IsChain(err error, t ChainErrType) bool {
	var chainErr ChainErr
	return errors.As(err, &chainErr) && chainErr.errType == t
}
