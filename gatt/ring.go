package gatt

import (
	"sync"

	bt "github.com/xranby/direct-bt-1"
	"github.com/xranby/direct-bt-1/att"
)

// pduRing is the bounded FIFO hand-off from the reader goroutine to the
// request issuer. Single producer, single consumer. close unblocks both
// sides with bt.ErrCancelled.
type pduRing struct {
	ch   chan att.PDU
	done chan struct{}
	once sync.Once
}

func newPDURing(capacity int) *pduRing {
	return &pduRing{
		ch:   make(chan att.PDU, capacity),
		done: make(chan struct{}),
	}
}

// put blocks while the ring is full.
func (r *pduRing) put(p att.PDU) error {
	select {
	case <-r.done:
		return bt.ErrCancelled
	default:
	}
	select {
	case r.ch <- p:
		return nil
	case <-r.done:
		return bt.ErrCancelled
	}
}

// get blocks while the ring is empty.
func (r *pduRing) get() (att.PDU, error) {
	select {
	case p := <-r.ch:
		return p, nil
	case <-r.done:
		// drain what was enqueued before the close
		select {
		case p := <-r.ch:
			return p, nil
		default:
		}
		return nil, bt.ErrCancelled
	}
}

func (r *pduRing) close() {
	r.once.Do(func() { close(r.done) })
}
