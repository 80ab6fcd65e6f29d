package gatt

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	bt "github.com/xranby/direct-bt-1"
	"github.com/xranby/direct-bt-1/att"
	"github.com/xranby/direct-bt-1/octets"
)

// ReadCharacteristicValue performs Read Characteristic Value and, when
// the value does not fit one response, Read Long Characteristic Value
// [Vol 3, Part G, 4.8.1 and 4.8.3].
//
// expectedLength > 0 reads until that many bytes were accumulated;
// expectedLength == 0 issues a single read; a negative value reads until
// the server runs out of data.
func (h *Handler) ReadCharacteristicValue(c *Characteristic, expectedLength int) ([]byte, error) {
	return h.readHandle(c.ValueHandle, expectedLength)
}

// ReadDescriptor reads the value of a discovered descriptor.
func (h *Handler) ReadDescriptor(d Descriptor) ([]byte, error) {
	return h.readHandle(d.Handle, 0)
}

func (h *Handler) readHandle(handle uint16, expectedLength int) ([]byte, error) {
	if err := h.requireConnected(); err != nil {
		return nil, err
	}
	acc, err := octets.Alloc(ClientMaxMTU, 0)
	if err != nil {
		return nil, err
	}
	// a Read-class response fills at most usedMTU-1 value bytes
	maxValue := h.UsedMTU() - 1
	offset := 0
	blobs := 0
loop:
	for {
		if expectedLength > 0 && offset >= expectedLength {
			break
		}
		if expectedLength == 0 && offset > 0 {
			break
		}
		var req att.PDU
		if offset == 0 {
			req = att.NewReadRequest(handle)
		} else {
			req = att.NewReadBlobRequest(handle, uint16(offset))
			blobs++
		}
		if err := h.send(req); err != nil {
			return nil, err
		}
		pdu, err := h.receiveNext()
		if err != nil {
			return nil, err
		}
		switch p := pdu.(type) {
		case att.ReadResponse:
			v := p.AttributeValue()
			acc.Append(v)
			offset += len(v)
			if len(v) < maxValue {
				break loop
			}
		case att.ReadBlobResponse:
			v := p.PartAttributeValue()
			if len(v) == 0 {
				break loop
			}
			acc.Append(v)
			offset += len(v)
			if len(v) < maxValue {
				break loop
			}
		case att.ErrorResponse:
			// Attribute Not Long on the first blob is the defined end of
			// a value no longer than ATT_MTU-1 [Vol 3, Part G, 4.8.3].
			if p.ErrorCode() == att.ErrorAttributeNotLong && blobs == 1 {
				break loop
			}
			return nil, p.Err()
		default:
			return nil, errors.Wrapf(bt.ErrProtocol, "read %#04x: unexpected opcode %#02x", handle, pdu.AttributeOpcode())
		}
	}
	out := make([]byte, acc.Size())
	copy(out, acc.Bytes())
	return out, nil
}

// WriteCharacteristicValue performs Write Characteristic Value
// [Vol 3, Part G, 4.9.3].
func (h *Handler) WriteCharacteristicValue(c *Characteristic, value []byte) error {
	return h.writeHandle(c.ValueHandle, value)
}

// WriteCharacteristicValueNoResponse performs Write Without Response
// [Vol 3, Part G, 4.9.1]. No acknowledgement is awaited.
func (h *Handler) WriteCharacteristicValueNoResponse(c *Characteristic, value []byte) error {
	if err := h.requireConnected(); err != nil {
		return err
	}
	return h.send(att.NewWriteCommand(c.ValueHandle, value))
}

// WriteDescriptor writes the value of a discovered descriptor.
func (h *Handler) WriteDescriptor(d Descriptor, value []byte) error {
	return h.writeHandle(d.Handle, value)
}

func (h *Handler) writeHandle(handle uint16, value []byte) error {
	if err := h.requireConnected(); err != nil {
		return err
	}
	if err := h.send(att.NewWriteRequest(handle, value)); err != nil {
		return err
	}
	pdu, err := h.receiveNext()
	if err != nil {
		return err
	}
	switch p := pdu.(type) {
	case att.WriteResponse:
		return nil
	case att.ErrorResponse:
		return p.Err()
	}
	return errors.Wrapf(bt.ErrProtocol, "write %#04x: unexpected opcode %#02x", handle, pdu.AttributeOpcode())
}

// ConfigNotificationIndication writes the characteristic's Client
// Characteristic Configuration [Vol 3, Part G, 3.3.3.3].
func (h *Handler) ConfigNotificationIndication(c *Characteristic, enableNotification, enableIndication bool) error {
	if c.CCCD == nil {
		return errors.Wrapf(bt.ErrInvalidArgument, "characteristic %s has no cccd", c.UUID)
	}
	var v uint16
	if enableNotification {
		v |= flagCCCNotify
	}
	if enableIndication {
		v |= flagCCCIndicate
	}
	ccc, err := octets.Alloc(2, 2)
	if err != nil {
		return err
	}
	if err := ccc.PutUint16(0, v); err != nil {
		return err
	}
	log.Debugf("gatt: ccc %#04x <- %#04x", c.CCCD.Handle, v)
	if err := h.writeHandle(c.CCCD.Handle, ccc.Bytes()); err != nil {
		return err
	}
	h.mu.Lock()
	c.CCCD.Value = v
	h.mu.Unlock()
	return nil
}
