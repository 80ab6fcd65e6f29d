package adv

import (
	"github.com/xranby/direct-bt-1/uuid"
)

// Packet is an utility to craft advertisement payloads, mainly for tests
// and tooling. Element order is preserved.
type Packet []byte

// Field returns the data of the first element of the given type
// (excluding the length and type octets), or nil.
func (p Packet) Field(typ byte) []byte {
	b := p
	for len(b) > 0 {
		if len(b) < 2 {
			return nil
		}
		l, t := b[0], b[1]
		if l == 0 || len(b) < int(1+l) {
			return nil
		}
		if t == typ {
			return b[2 : 1+l]
		}
		b = b[1+l:]
	}
	return nil
}

// AppendField appends one element.
func (p Packet) AppendField(typ byte, b []byte) Packet {
	p = append(p, byte(len(b)+1))
	p = append(p, typ)
	return append(p, b...)
}

// AppendFlags appends a flags element.
func (p Packet) AppendFlags(f byte) Packet {
	return p.AppendField(Flags, []byte{f})
}

// AppendShortName appends a shortened local name element.
func (p Packet) AppendShortName(n string) Packet {
	return p.AppendField(ShortName, []byte(n))
}

// AppendCompleteName appends a complete local name element.
func (p Packet) AppendCompleteName(n string) Packet {
	return p.AppendField(CompleteName, []byte(n))
}

// AppendTxPower appends a Tx power level element.
func (p Packet) AppendTxPower(pwr int8) Packet {
	return p.AppendField(TxPower, []byte{byte(pwr)})
}

// AppendManufacturerData appends a manufacturer specific data element.
func (p Packet) AppendManufacturerData(id uint16, b []byte) Packet {
	d := append([]byte{uint8(id), uint8(id >> 8)}, b...)
	return p.AppendField(ManufacturerData, d)
}

// AppendAllUUID appends a complete service class UUID list element of
// the UUID's native width.
func (p Packet) AppendAllUUID(u uuid.UUID) Packet {
	switch u.Len() {
	case 2:
		return p.AppendField(AllUUID16, u)
	case 4:
		return p.AppendField(AllUUID32, u)
	}
	return p.AppendField(AllUUID128, u)
}

// AppendSomeUUID appends an incomplete service class UUID list element
// of the UUID's native width.
func (p Packet) AppendSomeUUID(u uuid.UUID) Packet {
	switch u.Len() {
	case 2:
		return p.AppendField(SomeUUID16, u)
	case 4:
		return p.AppendField(SomeUUID32, u)
	}
	return p.AppendField(SomeUUID128, u)
}

// Len returns the payload length.
func (p Packet) Len() int { return len(p) }
