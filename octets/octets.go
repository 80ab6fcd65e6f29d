// Package octets provides bounds-checked little-endian views over byte
// regions, the accessor layer under the ATT codec and the EIR decoder.
package octets

import (
	"encoding/binary"

	"github.com/pkg/errors"

	bt "github.com/xranby/direct-bt-1"
	"github.com/xranby/direct-bt-1/uuid"
)

// Octets is a read-only view of a contiguous byte region. A view produced
// by Slice borrows from its parent and must not outlive it.
type Octets struct {
	b []byte
}

// From wraps b without copying.
func From(b []byte) Octets { return Octets{b: b} }

// Size returns the length of the region in bytes.
func (o Octets) Size() int { return len(o.b) }

// Bytes returns the underlying region.
func (o Octets) Bytes() []byte { return o.b }

func (o Octets) check(off, n int) error {
	if off < 0 || n < 0 || off+n > len(o.b) {
		return errors.Wrapf(bt.ErrOutOfBounds, "access [%d..%d) of %d", off, off+n, len(o.b))
	}
	return nil
}

// Uint8 returns the octet at off.
func (o Octets) Uint8(off int) (uint8, error) {
	if err := o.check(off, 1); err != nil {
		return 0, err
	}
	return o.b[off], nil
}

// Uint16 returns the little-endian 16-bit integer at off.
func (o Octets) Uint16(off int) (uint16, error) {
	if err := o.check(off, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(o.b[off:]), nil
}

// Uint32 returns the little-endian 32-bit integer at off.
func (o Octets) Uint32(off int) (uint32, error) {
	if err := o.check(off, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(o.b[off:]), nil
}

// Uint64 returns the little-endian 64-bit integer at off.
func (o Octets) Uint64(off int) (uint64, error) {
	if err := o.check(off, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(o.b[off:]), nil
}

// UUID returns the UUID of the given size (2, 4 or 16) at off.
func (o Octets) UUID(off, size int) (uuid.UUID, error) {
	switch size {
	case 2, 4, 16:
	default:
		return nil, errors.Wrapf(bt.ErrInvalidUUIDSize, "size %d", size)
	}
	if err := o.check(off, size); err != nil {
		return nil, err
	}
	u, err := uuid.New(o.b[off : off+size])
	return u, err
}

// Slice returns a borrowed view of n bytes starting at off.
func (o Octets) Slice(off, n int) (Octets, error) {
	if err := o.check(off, n); err != nil {
		return Octets{}, err
	}
	return Octets{b: o.b[off : off+n]}, nil
}

// POctets is an owned, mutable octet region with a capacity and an
// explicit size. Resize grows the size up to the capacity only; Append
// reallocates as needed.
type POctets struct {
	Octets
	buf []byte
}

// Alloc returns a POctets of the given capacity and initial size.
func Alloc(capacity, size int) (*POctets, error) {
	if capacity < 0 || size < 0 || size > capacity {
		return nil, errors.Wrapf(bt.ErrInvalidArgument, "capacity %d, size %d", capacity, size)
	}
	p := &POctets{buf: make([]byte, capacity)}
	p.Octets.b = p.buf[:size]
	return p, nil
}

// Capacity returns the allocated capacity in bytes.
func (p *POctets) Capacity() int { return len(p.buf) }

// Resize sets the size to n, growing at most up to the capacity.
func (p *POctets) Resize(n int) error {
	if n < 0 || n > len(p.buf) {
		return errors.Wrapf(bt.ErrOutOfBounds, "resize %d beyond capacity %d", n, len(p.buf))
	}
	p.Octets.b = p.buf[:n]
	return nil
}

// Append grows the region by b, reallocating when the capacity is exhausted.
func (p *POctets) Append(b []byte) {
	n := len(p.Octets.b)
	if n+len(b) > len(p.buf) {
		buf := make([]byte, 2*(n+len(b)))
		copy(buf, p.Octets.b)
		p.buf = buf
	}
	p.Octets.b = p.buf[:n+len(b)]
	copy(p.Octets.b[n:], b)
}

// PutUint16 stores v little-endian at off.
func (p *POctets) PutUint16(off int, v uint16) error {
	if err := p.check(off, 2); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(p.Octets.b[off:], v)
	return nil
}

// PutUint32 stores v little-endian at off.
func (p *POctets) PutUint32(off int, v uint32) error {
	if err := p.check(off, 4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(p.Octets.b[off:], v)
	return nil
}

// PutUint64 stores v little-endian at off.
func (p *POctets) PutUint64(off int, v uint64) error {
	if err := p.check(off, 8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(p.Octets.b[off:], v)
	return nil
}

// PutUUID stores the UUID at off in its native width.
func (p *POctets) PutUUID(off int, u uuid.UUID) error {
	if err := p.check(off, u.Len()); err != nil {
		return err
	}
	copy(p.Octets.b[off:], u)
	return nil
}
