package bt

import (
	"fmt"

	"github.com/pkg/errors"
)

// EUI48 is a 48-bit extended unique identifier, the address of a Bluetooth
// device. Octets are stored in wire order (little-endian); b[5] is the
// most significant byte of the printed form.
type EUI48 [6]byte

// Predefined addresses.
var (
	AnyAddress   = EUI48{}
	AllAddress   = EUI48{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	LocalAddress = EUI48{0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF}
)

// ParseEUI48 parses an address of the form "AA:BB:CC:DD:EE:FF".
func ParseEUI48(s string) (EUI48, error) {
	var a EUI48
	if len(s) != 17 {
		return a, errors.Wrapf(ErrInvalidArgument, "address %q not of length 17", s)
	}
	n, err := fmt.Sscanf(s, "%02x:%02x:%02x:%02x:%02x:%02x",
		&a[5], &a[4], &a[3], &a[2], &a[1], &a[0])
	if err != nil || n != 6 {
		return EUI48{}, errors.Wrapf(ErrInvalidArgument, "address %q not in format 00:00:00:00:00:00", s)
	}
	return a, nil
}

func (a EUI48) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", a[5], a[4], a[3], a[2], a[1], a[0])
}

// AddressType is the type of a device address [Vol 4, Part E, 7.8.5].
type AddressType uint8

const (
	AddrBREDR     AddressType = 0x00
	AddrLEPublic  AddressType = 0x01
	AddrLERandom  AddressType = 0x02
	AddrUndefined AddressType = 0xFF
)

func (t AddressType) String() string {
	switch t {
	case AddrBREDR:
		return "BDADDR_BREDR"
	case AddrLEPublic:
		return "BDADDR_LE_PUBLIC"
	case AddrLERandom:
		return "BDADDR_LE_RANDOM"
	}
	return "BDADDR_UNDEFINED"
}
