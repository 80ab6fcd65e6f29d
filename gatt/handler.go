// Package gatt implements the client side of the Generic Attribute
// Profile: the ATT request/response state machine over one L2CAP
// channel, the standard discovery procedures, and the well-known
// Generic Access and Device Information services.
package gatt

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	bt "github.com/xranby/direct-bt-1"
	"github.com/xranby/direct-bt-1/att"
	"github.com/xranby/direct-bt-1/l2cap"
)

// State of a Handler. Anything above StateDisconnected counts as open.
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

// Handler drives the ATT client over one transport connection. One
// background goroutine (the reader) demultiplexes incoming PDUs;
// the goroutine calling Connect, the discovery procedures, reads and
// writes is the issuer. At most one request is outstanding at a time,
// so the next queued non-notification PDU answers the last request.
type Handler struct {
	conn l2cap.Conn

	state int32 // State, atomic

	mu          sync.RWMutex
	svcs        []*Service
	notifyFn    NotificationListener
	indicateFn  IndicationListener
	autoConfirm bool
	serverMTU   int
	usedMTU     int
	ring        *pduRing
	stop        chan struct{}
	done        chan struct{}
}

// NewHandler returns a Handler bound to the transport. The connection is
// not opened until Connect.
func NewHandler(conn l2cap.Conn) *Handler {
	return &Handler{
		conn:      conn,
		state:     int32(StateDisconnected),
		serverMTU: att.DefaultMTU,
		usedMTU:   att.DefaultMTU,
	}
}

func (h *Handler) setState(s State) { atomic.StoreInt32(&h.state, int32(s)) }

// State returns the current handler state.
func (h *Handler) State() State { return State(atomic.LoadInt32(&h.state)) }

// UsedMTU returns min(ClientMaxMTU, serverMTU), the bound on every PDU
// after MTU exchange.
func (h *Handler) UsedMTU() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.usedMTU
}

// Services returns the discovered primary services. The returned tree is
// owned by the handler; it is valid until Disconnect.
func (h *Handler) Services() []*Service {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.svcs
}

// SetNotificationListener installs l, replacing any previous listener.
// It runs on the reader goroutine and must not issue requests.
func (h *Handler) SetNotificationListener(l NotificationListener) {
	h.mu.Lock()
	h.notifyFn = l
	h.mu.Unlock()
}

// SetIndicationListener installs l, replacing any previous listener.
// When sendConfirmation is set the reader transmits the Handle Value
// Confirmation before invoking l.
func (h *Handler) SetIndicationListener(l IndicationListener, sendConfirmation bool) {
	h.mu.Lock()
	h.indicateFn = l
	h.autoConfirm = sendConfirmation
	h.mu.Unlock()
}

// FindCharacteristic returns the discovered characteristic with the given
// value handle, or nil.
func (h *Handler) FindCharacteristic(handle uint16) *Characteristic {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.svcs {
		for _, c := range s.Characteristics {
			if c.ValueHandle == handle {
				return c
			}
		}
	}
	return nil
}

// Connect opens the transport, starts the reader and performs the one
// MTU exchange of the connection. Connecting an open handler is a no-op.
func (h *Handler) Connect() error {
	if h.State() > StateDisconnected {
		return nil
	}
	h.setState(StateConnecting)
	if err := h.conn.Connect(); err != nil {
		h.setState(StateDisconnected)
		return errors.Wrap(err, "gatt: connect")
	}

	h.mu.Lock()
	h.ring = newPDURing(ringCapacity)
	h.stop = make(chan struct{})
	h.done = make(chan struct{})
	h.serverMTU = att.DefaultMTU
	h.usedMTU = att.DefaultMTU
	ring, stop, done := h.ring, h.stop, h.done
	h.mu.Unlock()

	h.setState(StateConnected)
	go h.readerLoop(ring, stop, done)

	mtu, err := h.exchangeMTU(ClientMaxMTU)
	switch {
	case err != nil:
		log.Warnf("gatt: mtu exchange: %v", err)
	case mtu == 0:
		log.Warnf("gatt: ignoring zero server mtu")
	default:
		h.mu.Lock()
		h.serverMTU = int(mtu)
		h.mu.Unlock()
	}
	h.mu.Lock()
	if h.serverMTU > ClientMaxMTU {
		h.usedMTU = ClientMaxMTU
	} else {
		h.usedMTU = h.serverMTU
	}
	h.mu.Unlock()
	return nil
}

// Disconnect stops the reader, closes the transport and cancels any
// pending queue waiter. It is idempotent.
func (h *Handler) Disconnect() error {
	h.mu.Lock()
	ring, stop, done := h.ring, h.stop, h.done
	h.stop = nil
	h.mu.Unlock()

	if stop == nil {
		h.conn.Disconnect()
		h.setState(StateDisconnected)
		return nil
	}
	close(stop)
	h.conn.Disconnect()
	if ring != nil {
		ring.close()
	}
	<-done
	h.setState(StateDisconnected)
	return nil
}

// send transmits one PDU, honoring the MTU bound. A transport failure
// moves the handler to StateError.
func (h *Handler) send(p att.PDU) error {
	if h.State() <= StateDisconnected {
		return errors.Wrapf(bt.ErrInvalidState, "send in state %s", h.State())
	}
	b := p.Bytes()
	h.mu.RLock()
	mtu := h.usedMTU
	h.mu.RUnlock()
	if len(b) > mtu {
		return errors.Wrapf(bt.ErrInvalidArgument, "pdu size %d > used mtu %d", len(b), mtu)
	}
	n, err := h.conn.Write(b)
	if err != nil {
		h.setState(StateError)
		return errors.Wrap(err, "gatt: send")
	}
	if n != len(b) {
		h.setState(StateError)
		return errors.Errorf("gatt: short write: %d of %d", n, len(b))
	}
	return nil
}

// receiveNext blocks for the next queued response PDU.
func (h *Handler) receiveNext() (att.PDU, error) {
	h.mu.RLock()
	ring := h.ring
	h.mu.RUnlock()
	if ring == nil {
		return nil, errors.Wrap(bt.ErrInvalidState, "not connected")
	}
	return ring.get()
}

func (h *Handler) requireConnected() error {
	if s := h.State(); s != StateConnected {
		return errors.Wrapf(bt.ErrInvalidState, "handler %s", s)
	}
	return nil
}

// exchangeMTU performs the Exchange MTU sub-procedure [Vol 3, Part G, 4.3.1]
// and returns the server Rx MTU.
func (h *Handler) exchangeMTU(clientRx uint16) (uint16, error) {
	if clientRx > ClientMaxMTU {
		return 0, errors.Wrapf(bt.ErrInvalidArgument, "client rx mtu %d > %d", clientRx, ClientMaxMTU)
	}
	if err := h.send(att.NewExchangeMTURequest(clientRx)); err != nil {
		return 0, err
	}
	pdu, err := h.receiveNext()
	if err != nil {
		return 0, err
	}
	switch p := pdu.(type) {
	case att.ExchangeMTUResponse:
		return p.ServerRxMTU(), nil
	case att.ErrorResponse:
		return 0, p.Err()
	}
	return 0, errors.Wrapf(bt.ErrProtocol, "mtu exchange: unexpected opcode %#02x", pdu.AttributeOpcode())
}

// readerLoop demultiplexes the transport: notifications and indications
// go to the listeners, everything else to the response queue.
func (h *Handler) readerLoop(ring *pduRing, stop, done chan struct{}) {
	defer close(done)
	log.Debugf("gatt: reader started")
	buf := make([]byte, att.MaxMTU)
	for {
		select {
		case <-stop:
			h.setState(StateDisconnected)
			log.Debugf("gatt: reader stopped")
			return
		default:
		}
		n, err := h.conn.Read(buf, readPollTimeoutMS)
		if err != nil {
			if err == l2cap.ErrReadTimeout {
				continue
			}
			select {
			case <-stop:
				h.setState(StateDisconnected)
				return
			default:
			}
			if errors.Cause(err) == l2cap.ErrClosed {
				log.Errorf("gatt: reader: transport closed")
				h.setState(StateError)
				ring.close()
				return
			}
			log.Errorf("gatt: reader: %v", err)
			continue
		}
		if n == 0 {
			continue
		}
		b := make([]byte, n)
		copy(b, buf[:n])
		pdu, err := att.Decode(b)
		if err != nil {
			log.Warnf("gatt: reader: %v", err)
			continue
		}
		switch p := pdu.(type) {
		case att.HandleValueNotification:
			h.dispatchNotification(p)
		case att.HandleValueIndication:
			h.dispatchIndication(p)
		case att.MultipleHandleValueNotification:
			// accepted but not dispatched element-wise
			log.Warnf("gatt: reader: multiple handle value notification dropped (%d bytes)", len(p))
		default:
			if err := ring.put(pdu); err != nil {
				h.setState(StateDisconnected)
				return
			}
		}
	}
}

func (h *Handler) dispatchNotification(p att.HandleValueNotification) {
	h.mu.RLock()
	fn := h.notifyFn
	h.mu.RUnlock()
	handle := p.AttributeHandle()
	log.Debugf("gatt: NTF handle %#04x, %d bytes", handle, len(p.AttributeValue()))
	if fn == nil {
		return
	}
	fn(h.FindCharacteristic(handle), handle, p.AttributeValue())
}

func (h *Handler) dispatchIndication(p att.HandleValueIndication) {
	h.mu.RLock()
	fn := h.indicateFn
	confirm := h.autoConfirm
	h.mu.RUnlock()
	handle := p.AttributeHandle()
	sent := false
	if confirm {
		if err := h.send(att.NewHandleValueConfirmation()); err != nil {
			log.Errorf("gatt: indication confirm: %v", err)
		} else {
			sent = true
		}
	}
	log.Debugf("gatt: IND handle %#04x, %d bytes, confirmed %v", handle, len(p.AttributeValue()), sent)
	if fn == nil {
		return
	}
	fn(h.FindCharacteristic(handle), handle, p.AttributeValue(), sent)
}
