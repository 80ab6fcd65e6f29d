//go:build linux

package l2cap

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	bt "github.com/xranby/direct-bt-1"
)

// Socket is the ATT channel of an LE-U link, backed by a raw
// AF_BLUETOOTH/BTPROTO_L2CAP seqpacket socket.
type Socket struct {
	local  bt.EUI48
	remote bt.EUI48
	typ    bt.AddressType

	state int32 // State, atomic

	rmu sync.Mutex
	wmu sync.Mutex
	fd  int
}

// NewSocket returns an unconnected ATT socket for the remote device.
// local is the adapter address; bt.AnyAddress binds to any adapter.
func NewSocket(local, remote bt.EUI48, typ bt.AddressType) *Socket {
	return &Socket{
		local:  local,
		remote: remote,
		typ:    typ,
		state:  int32(StateDisconnected),
		fd:     -1,
	}
}

func (s *Socket) setState(st State) { atomic.StoreInt32(&s.state, int32(st)) }

// State returns the channel state.
func (s *Socket) State() State { return State(atomic.LoadInt32(&s.state)) }

// IsOpen reports whether the channel is connecting or connected.
func (s *Socket) IsOpen() bool { return s.State() > StateDisconnected }

func l2AddrType(t bt.AddressType) uint8 {
	switch t {
	case bt.AddrLEPublic:
		return unix.BDADDR_LE_PUBLIC
	case bt.AddrLERandom:
		return unix.BDADDR_LE_RANDOM
	}
	return unix.BDADDR_BREDR
}

// Connect opens the socket, binds the adapter and connects the ATT
// channel of the remote device.
func (s *Socket) Connect() error {
	if s.IsOpen() {
		return nil
	}
	s.setState(StateConnecting)
	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_SEQPACKET, unix.BTPROTO_L2CAP)
	if err != nil {
		s.setState(StateDisconnected)
		return errors.Wrap(err, "l2cap: socket")
	}
	la := &unix.SockaddrL2{CID: CIDAtt, Addr: s.local, AddrType: unix.BDADDR_LE_PUBLIC}
	if err := unix.Bind(fd, la); err != nil {
		unix.Close(fd)
		s.setState(StateDisconnected)
		return errors.Wrap(err, "l2cap: bind")
	}
	ra := &unix.SockaddrL2{CID: CIDAtt, Addr: s.remote, AddrType: l2AddrType(s.typ)}
	if err := unix.Connect(fd, ra); err != nil {
		unix.Close(fd)
		s.setState(StateDisconnected)
		return errors.Wrapf(err, "l2cap: connect %s", s.remote)
	}
	s.fd = fd
	s.setState(StateConnected)
	log.Debugf("l2cap: connected %s (%s)", s.remote, s.typ)
	return nil
}

// Disconnect closes the channel. It is idempotent.
func (s *Socket) Disconnect() error {
	if !s.IsOpen() {
		s.setState(StateDisconnected)
		return nil
	}
	s.setState(StateDisconnected)
	err := unix.Close(s.fd)
	s.fd = -1
	if err != nil {
		return errors.Wrap(err, "l2cap: close")
	}
	return nil
}

// Read reads one PDU into b, waiting at most timeoutMS for data.
func (s *Socket) Read(b []byte, timeoutMS int) (int, error) {
	s.rmu.Lock()
	defer s.rmu.Unlock()
	if !s.IsOpen() {
		return 0, ErrClosed
	}
	pfd := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(pfd, timeoutMS)
	if err != nil {
		if err == unix.EINTR {
			return 0, ErrReadTimeout
		}
		return 0, errors.Wrap(err, "l2cap: poll")
	}
	if n == 0 {
		return 0, ErrReadTimeout
	}
	m, err := unix.Read(s.fd, b)
	if err != nil {
		return 0, errors.Wrap(err, "l2cap: read")
	}
	if m == 0 {
		return 0, ErrClosed
	}
	return m, nil
}

// Write writes one PDU.
func (s *Socket) Write(b []byte) (int, error) {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	if !s.IsOpen() {
		return 0, ErrClosed
	}
	n, err := unix.Write(s.fd, b)
	if err != nil {
		return 0, errors.Wrap(err, "l2cap: write")
	}
	return n, nil
}
