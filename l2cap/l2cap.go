// Package l2cap defines the connection-oriented channel the ATT client
// runs over, and a Linux implementation of it.
package l2cap

import "github.com/pkg/errors"

// CIDAtt is the fixed channel identifier of the Attribute Protocol on an
// LE-U logical link [Vol 3, Part A, 2.1].
const CIDAtt uint16 = 0x0004

// State of a transport connection.
type State int32

const (
	StateError State = iota
	StateDisconnected
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateError:
		return "Error"
	case StateDisconnected:
		return "Disconnected"
	case StateConnecting:
		return "Connecting"
	case StateConnected:
		return "Connected"
	}
	return "Unknown"
}

var (
	// ErrReadTimeout is returned by Read when the poll timeout elapses
	// with no data. It lets the reader poll a stop flag between reads.
	ErrReadTimeout = errors.New("l2cap: read timeout")

	// ErrClosed is returned for operations on a closed channel.
	ErrClosed = errors.New("l2cap: closed")
)

// Conn is one L2CAP connection-oriented channel. Read blocks for at most
// timeoutMS milliseconds and returns ErrReadTimeout when nothing arrived.
type Conn interface {
	Connect() error
	Disconnect() error
	Read(b []byte, timeoutMS int) (int, error)
	Write(b []byte) (int, error)
	IsOpen() bool
	State() State
}
