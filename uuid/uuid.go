package uuid

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"

	bt "github.com/xranby/direct-bt-1"
)

// A UUID is a BLE UUID, stored little-endian.
// It is 2, 4 or 16 bytes long.
type UUID []byte

// base is the Bluetooth Base UUID 00000000-0000-1000-8000-00805F9B34FB,
// little-endian. Short UUIDs occupy octets 12..15.
var base = UUID{
	0xFB, 0x34, 0x9B, 0x5F, 0x80, 0x00, 0x00, 0x80,
	0x00, 0x10, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

// UUID16 converts a uint16 (such as 0x1800) to a UUID.
func UUID16(i uint16) UUID {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, i)
	return UUID(b)
}

// UUID32 converts a uint32 to a UUID.
func UUID32(i uint32) UUID {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, i)
	return UUID(b)
}

// New copies b into a validated UUID of 2, 4 or 16 bytes.
func New(b []byte) (UUID, error) {
	if err := lenErr(len(b)); err != nil {
		return nil, err
	}
	u := make(UUID, len(b))
	copy(u, b)
	return u, nil
}

// Parse parses a standard-format UUID string, such
// as "1800" or "34DA3AD1-7110-41A1-B1EF-4430F509CDE7".
func Parse(s string) (UUID, error) {
	s = strings.Replace(s, "-", "", -1)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(bt.ErrInvalidArgument, err.Error())
	}
	if err := lenErr(len(b)); err != nil {
		return nil, err
	}
	return UUID(Reverse(b)), nil
}

// MustParse parses a standard-format UUID string,
// like Parse, but panics in case of error.
func MustParse(s string) UUID {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// lenErr returns an error if n is an invalid UUID length.
func lenErr(n int) error {
	switch n {
	case 2, 4, 16:
		return nil
	}
	return errors.Wrapf(bt.ErrInvalidUUIDSize, "length %d", n)
}

// Len returns the length of the UUID, in bytes.
func (u UUID) Len() int { return len(u) }

// String hex-encodes a UUID, most significant byte first.
func (u UUID) String() string {
	return strings.ToUpper(hex.EncodeToString(Reverse(u)))
}

// To128 returns the canonical 128-bit expansion of u over the Bluetooth
// Base UUID. A 128-bit UUID expands to itself.
func (u UUID) To128() UUID {
	if len(u) == 16 {
		return u
	}
	b := make(UUID, 16)
	copy(b, base)
	copy(b[12:], u)
	return b
}

// Equal reports whether v represents the same UUID as u.
// UUIDs of different widths are equal iff their 128-bit expansions match.
func (u UUID) Equal(v UUID) bool {
	if len(u) == len(v) {
		return bytes.Equal(u, v)
	}
	return bytes.Equal(u.To128(), v.To128())
}

// Contains reports whether u is in the slice s. A nil slice matches any UUID.
func Contains(s []UUID, u UUID) bool {
	if s == nil {
		return true
	}
	for _, a := range s {
		if a.Equal(u) {
			return true
		}
	}
	return false
}

// Reverse returns a reversed copy of u.
func Reverse(u []byte) []byte {
	b := make([]byte, len(u))
	for i, c := range u {
		b[len(u)-i-1] = c
	}
	return b
}
