package gatt

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	bt "github.com/xranby/direct-bt-1"
	"github.com/xranby/direct-bt-1/att"
	"github.com/xranby/direct-bt-1/octets"
)

// DiscoverProfile discovers all primary services, their characteristics
// and their client characteristic configurations.
func (h *Handler) DiscoverProfile() ([]*Service, error) {
	svcs, err := h.DiscoverPrimaryServices()
	if err != nil {
		return nil, err
	}
	for _, s := range svcs {
		if _, err := h.DiscoverCharacteristics(s); err != nil {
			return nil, err
		}
		if len(s.Characteristics) == 0 {
			continue
		}
		if err := h.discoverCharacteristicConfigs(s); err != nil {
			return nil, err
		}
	}
	return svcs, nil
}

// DiscoverPrimaryServices performs Discover All Primary Services
// [Vol 3, Part G, 4.4.1]. The procedure is complete when an Error
// Response with Attribute Not Found arrives, when the last End Group
// Handle is 0xFFFF, or when a page comes back empty.
func (h *Handler) DiscoverPrimaryServices() ([]*Service, error) {
	if err := h.requireConnected(); err != nil {
		return nil, err
	}
	var svcs []*Service
	start := uint16(0x0001)
loop:
	for {
		req := att.NewReadByGroupTypeRequest(start, 0xFFFF, attrPrimaryServiceUUID)
		if err := h.send(req); err != nil {
			return nil, err
		}
		pdu, err := h.receiveNext()
		if err != nil {
			return nil, err
		}
		switch p := pdu.(type) {
		case att.ReadByGroupTypeResponse:
			count := p.ElementCount()
			if count == 0 {
				break loop
			}
			esz := p.ElementTotalSize()
			pd := octets.From(p)
			var endh uint16
			for i := 0; i < count; i++ {
				off := p.ElementPDUOffset(i)
				sh, err := pd.Uint16(off)
				if err != nil {
					return nil, errors.Wrap(err, "primary service element")
				}
				endh, err = pd.Uint16(off + 2)
				if err != nil {
					return nil, errors.Wrap(err, "primary service element")
				}
				u, err := pd.UUID(off+4, esz-4)
				if err != nil {
					return nil, errors.Wrap(err, "primary service element")
				}
				svcs = append(svcs, &Service{UUID: u, Handle: sh, EndHandle: endh})
				log.Debugf("gatt: primary service %s [%#04x..%#04x]", u, sh, endh)
			}
			if endh == 0xFFFF {
				break loop
			}
			start = endh + 1
		case att.ErrorResponse:
			if p.ErrorCode() == att.ErrorAttributeNotFound {
				break loop
			}
			return nil, p.Err()
		default:
			return nil, errors.Wrapf(bt.ErrProtocol, "primary service discovery: unexpected opcode %#02x", pdu.AttributeOpcode())
		}
	}
	h.mu.Lock()
	h.svcs = svcs
	h.mu.Unlock()
	return svcs, nil
}

// DiscoverCharacteristics performs Discover All Characteristics of a
// Service [Vol 3, Part G, 4.6.1] over the handle range of s.
func (h *Handler) DiscoverCharacteristics(s *Service) ([]*Characteristic, error) {
	if err := h.requireConnected(); err != nil {
		return nil, err
	}
	var chars []*Characteristic
	start := s.Handle
loop:
	for {
		req := att.NewReadByTypeRequest(start, s.EndHandle, attrCharacteristicUUID)
		if err := h.send(req); err != nil {
			return nil, err
		}
		pdu, err := h.receiveNext()
		if err != nil {
			return nil, err
		}
		switch p := pdu.(type) {
		case att.ReadByTypeResponse:
			count := p.ElementCount()
			if count == 0 {
				break loop
			}
			esz := p.ElementTotalSize()
			pd := octets.From(p)
			var declh uint16
			for i := 0; i < count; i++ {
				off := p.ElementPDUOffset(i)
				declh, err = pd.Uint16(off)
				if err != nil {
					return nil, errors.Wrap(err, "characteristic element")
				}
				props, err := pd.Uint8(off + 2)
				if err != nil {
					return nil, errors.Wrap(err, "characteristic element")
				}
				vh, err := pd.Uint16(off + 3)
				if err != nil {
					return nil, errors.Wrap(err, "characteristic element")
				}
				u, err := pd.UUID(off+5, esz-5)
				if err != nil {
					return nil, errors.Wrap(err, "characteristic element")
				}
				chars = append(chars, &Characteristic{
					ServiceUUID:      s.UUID,
					ServiceHandle:    s.Handle,
					ServiceEndHandle: s.EndHandle,
					Property:         Property(props),
					Handle:           declh,
					ValueHandle:      vh,
					UUID:             u,
				})
				log.Debugf("gatt: characteristic %s decl %#04x value %#04x props %#02x", u, declh, vh, props)
			}
			if declh >= s.EndHandle {
				break loop
			}
			start = declh + 1
		case att.ErrorResponse:
			if p.ErrorCode() == att.ErrorAttributeNotFound {
				break loop
			}
			return nil, p.Err()
		default:
			return nil, errors.Wrapf(bt.ErrProtocol, "characteristic discovery: unexpected opcode %#02x", pdu.AttributeOpcode())
		}
	}
	h.mu.Lock()
	s.Characteristics = chars
	h.mu.Unlock()
	return chars, nil
}

// discoverCharacteristicConfigs reads the Client Characteristic
// Configuration descriptors of s [Vol 3, Part G, 3.3.3.3] and associates
// each with the characteristic whose value-handle interval contains it.
func (h *Handler) discoverCharacteristicConfigs(s *Service) error {
	if err := h.requireConnected(); err != nil {
		return err
	}
	start := s.Handle
loop:
	for {
		req := att.NewReadByTypeRequest(start, s.EndHandle, attrClientCharacteristicConfigUUID)
		if err := h.send(req); err != nil {
			return err
		}
		pdu, err := h.receiveNext()
		if err != nil {
			return err
		}
		switch p := pdu.(type) {
		case att.ReadByTypeResponse:
			count := p.ElementCount()
			if count == 0 {
				break loop
			}
			if p.ElementTotalSize() != 4 {
				log.Warnf("gatt: ccc discovery: element size %d", p.ElementTotalSize())
				break loop
			}
			pd := octets.From(p)
			var cfgh uint16
			for i := 0; i < count; i++ {
				off := p.ElementPDUOffset(i)
				cfgh, err = pd.Uint16(off)
				if err != nil {
					return errors.Wrap(err, "ccc element")
				}
				cfgv, err := pd.Uint16(off + 2)
				if err != nil {
					return errors.Wrap(err, "ccc element")
				}
				h.associateCCCD(s, cfgh, cfgv)
			}
			if cfgh >= s.EndHandle {
				break loop
			}
			start = cfgh + 1
		case att.ErrorResponse:
			if p.ErrorCode() == att.ErrorAttributeNotFound {
				break loop
			}
			return p.Err()
		default:
			return errors.Wrapf(bt.ErrProtocol, "ccc discovery: unexpected opcode %#02x", pdu.AttributeOpcode())
		}
	}
	return nil
}

// associateCCCD attaches the descriptor to the characteristic whose value
// handle is below cfgh and whose successor (or the service end) bounds it.
func (h *Handler) associateCCCD(s *Service, cfgh, cfgv uint16) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for j, c := range s.Characteristics {
		upper := s.EndHandle
		if j+1 < len(s.Characteristics) {
			upper = s.Characteristics[j+1].Handle - 1
		}
		if cfgh > c.ValueHandle && cfgh <= upper {
			c.CCCD = &CCCD{Handle: cfgh, Value: cfgv}
			log.Debugf("gatt: cccd %#04x = %#04x for characteristic %s", cfgh, cfgv, c.UUID)
			return
		}
	}
	log.Warnf("gatt: cccd %#04x matches no characteristic", cfgh)
}

// DiscoverDescriptors performs Discover All Characteristic Descriptors
// [Vol 3, Part G, 4.7.1] over [c.ValueHandle+1, c.ServiceEndHandle].
func (h *Handler) DiscoverDescriptors(c *Characteristic) ([]Descriptor, error) {
	if err := h.requireConnected(); err != nil {
		return nil, err
	}
	var descs []Descriptor
	start := c.ValueHandle + 1
	end := c.ServiceEndHandle
	if start > end {
		return nil, nil
	}
loop:
	for {
		req := att.NewFindInformationRequest(start, end)
		if err := h.send(req); err != nil {
			return nil, err
		}
		pdu, err := h.receiveNext()
		if err != nil {
			return nil, err
		}
		switch p := pdu.(type) {
		case att.FindInformationResponse:
			count := p.ElementCount()
			if count == 0 {
				break loop
			}
			usz := p.ElementTotalSize() - 2
			pd := octets.From(p)
			var dh uint16
			for i := 0; i < count; i++ {
				off := p.ElementPDUOffset(i)
				dh, err = pd.Uint16(off)
				if err != nil {
					return nil, errors.Wrap(err, "descriptor element")
				}
				u, err := pd.UUID(off+2, usz)
				if err != nil {
					return nil, errors.Wrap(err, "descriptor element")
				}
				descs = append(descs, Descriptor{Handle: dh, UUID: u})
				log.Debugf("gatt: descriptor %s at %#04x", u, dh)
			}
			if dh >= end {
				break loop
			}
			start = dh + 1
		case att.ErrorResponse:
			if p.ErrorCode() == att.ErrorAttributeNotFound {
				break loop
			}
			return nil, p.Err()
		default:
			return nil, errors.Wrapf(bt.ErrProtocol, "descriptor discovery: unexpected opcode %#02x", pdu.AttributeOpcode())
		}
	}
	h.mu.Lock()
	c.Descriptors = descs
	h.mu.Unlock()
	return descs, nil
}
