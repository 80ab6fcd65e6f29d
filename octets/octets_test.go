package octets

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"

	bt "github.com/xranby/direct-bt-1"
	"github.com/xranby/direct-bt-1/uuid"
)

func TestAccessors(t *testing.T) {
	o := From([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09})
	if v, err := o.Uint8(0); err != nil || v != 0x01 {
		t.Errorf("Uint8(0) = %#x, %v", v, err)
	}
	if v, err := o.Uint16(1); err != nil || v != 0x0302 {
		t.Errorf("Uint16(1) = %#x, %v", v, err)
	}
	if v, err := o.Uint32(1); err != nil || v != 0x05040302 {
		t.Errorf("Uint32(1) = %#x, %v", v, err)
	}
	if v, err := o.Uint64(1); err != nil || v != 0x0908070605040302 {
		t.Errorf("Uint64(1) = %#x, %v", v, err)
	}
}

func TestOutOfBounds(t *testing.T) {
	o := From([]byte{0x01, 0x02})
	cases := []struct {
		name string
		err  error
	}{
		{"Uint8", func() error { _, err := o.Uint8(2); return err }()},
		{"Uint16", func() error { _, err := o.Uint16(1); return err }()},
		{"Uint32", func() error { _, err := o.Uint32(0); return err }()},
		{"Uint64", func() error { _, err := o.Uint64(0); return err }()},
		{"negative", func() error { _, err := o.Uint8(-1); return err }()},
		{"Slice", func() error { _, err := o.Slice(1, 2); return err }()},
		{"UUID", func() error { _, err := o.UUID(1, 2); return err }()},
	}
	for _, tt := range cases {
		if errors.Cause(tt.err) != bt.ErrOutOfBounds {
			t.Errorf("%s: error %v, want ErrOutOfBounds", tt.name, tt.err)
		}
	}
}

func TestUUIDAccessor(t *testing.T) {
	o := From([]byte{0x00, 0x18, 0x0A, 0x18})
	u, err := o.UUID(0, 2)
	if err != nil || !u.Equal(uuid.UUID16(0x1800)) {
		t.Errorf("UUID(0,2) = %s, %v", u, err)
	}
	u, err = o.UUID(2, 2)
	if err != nil || !u.Equal(uuid.UUID16(0x180A)) {
		t.Errorf("UUID(2,2) = %s, %v", u, err)
	}
	if _, err = o.UUID(0, 3); errors.Cause(err) != bt.ErrInvalidUUIDSize {
		t.Errorf("UUID(0,3): error %v, want ErrInvalidUUIDSize", err)
	}
}

func TestSlice(t *testing.T) {
	o := From([]byte{0x01, 0x02, 0x03, 0x04})
	s, err := o.Slice(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if s.Size() != 2 {
		t.Errorf("Size = %d", s.Size())
	}
	if v, err := s.Uint16(0); err != nil || v != 0x0302 {
		t.Errorf("sub Uint16(0) = %#x, %v", v, err)
	}
	if _, err := s.Uint8(2); errors.Cause(err) != bt.ErrOutOfBounds {
		t.Error("sub-slice must bound its own range")
	}
}

func TestPOctetsResize(t *testing.T) {
	p, err := Alloc(4, 0)
	if err != nil {
		t.Fatal(err)
	}
	if p.Size() != 0 || p.Capacity() != 4 {
		t.Fatalf("size %d, capacity %d", p.Size(), p.Capacity())
	}
	if err := p.Resize(4); err != nil {
		t.Fatal(err)
	}
	if err := p.Resize(5); errors.Cause(err) != bt.ErrOutOfBounds {
		t.Errorf("Resize beyond capacity: %v", err)
	}
	if err := p.Resize(0); err != nil || p.Size() != 0 {
		t.Errorf("Resize(0): %v, size %d", err, p.Size())
	}
}

func TestPOctetsPut(t *testing.T) {
	p, _ := Alloc(16, 16)
	if err := p.PutUint16(0, 0x1234); err != nil {
		t.Fatal(err)
	}
	if err := p.PutUint32(2, 0xCAFEBABE); err != nil {
		t.Fatal(err)
	}
	if err := p.PutUint64(6, 0x1122334455667788); err != nil {
		t.Fatal(err)
	}
	if err := p.PutUUID(14, uuid.UUID16(0x2902)); err != nil {
		t.Fatal(err)
	}
	if v, _ := p.Uint16(0); v != 0x1234 {
		t.Errorf("Uint16(0) = %#x", v)
	}
	if v, _ := p.Uint32(2); v != 0xCAFEBABE {
		t.Errorf("Uint32(2) = %#x", v)
	}
	if v, _ := p.Uint64(6); v != 0x1122334455667788 {
		t.Errorf("Uint64(6) = %#x", v)
	}
	if u, _ := p.UUID(14, 2); !u.Equal(uuid.UUID16(0x2902)) {
		t.Errorf("UUID(14) = %s", u)
	}
	if err := p.PutUint16(15, 0); errors.Cause(err) != bt.ErrOutOfBounds {
		t.Errorf("PutUint16 past end: %v", err)
	}
}

func TestPOctetsAppend(t *testing.T) {
	p, _ := Alloc(4, 0)
	p.Append([]byte{1, 2, 3})
	p.Append([]byte{4, 5, 6})
	if !bytes.Equal(p.Bytes(), []byte{1, 2, 3, 4, 5, 6}) {
		t.Errorf("Append = %x", p.Bytes())
	}
	if p.Capacity() < 6 {
		t.Errorf("capacity %d after growth", p.Capacity())
	}
}
