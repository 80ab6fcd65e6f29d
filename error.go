package bt

import "github.com/pkg/errors"

// Shared error kinds. Callers compare with errors.Cause(err) == ErrXxx.
var (
	// ErrInvalidState means the operation is not valid for the current state.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidArgument means one or more of the arguments are invalid.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfBounds means an octet access past the end of its buffer.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrInvalidUUIDSize means a UUID width other than 2, 4 or 16 octets.
	ErrInvalidUUIDSize = errors.New("invalid uuid size")

	// ErrTruncatedAdElement means an EIR/AD element whose declared length
	// runs past the end of the payload.
	ErrTruncatedAdElement = errors.New("truncated ad element")

	// ErrProtocol means the peer sent a PDU the current procedure does not allow.
	ErrProtocol = errors.New("protocol error")

	// ErrCancelled means the operation was aborted by a disconnect.
	ErrCancelled = errors.New("cancelled")
)
