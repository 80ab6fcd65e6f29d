package bt

import (
	"testing"

	"github.com/pkg/errors"
)

func TestParseEUI48(t *testing.T) {
	cases := []struct {
		s    string
		want EUI48
		ok   bool
	}{
		{"01:02:03:04:05:06", EUI48{0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, true},
		{"FF:FF:FF:FF:FF:FF", AllAddress, true},
		{"00:00:00:00:00:00", AnyAddress, true},
		{"00:00:00:FF:FF:FF", EUI48{0xFF, 0xFF, 0xFF, 0x00, 0x00, 0x00}, true},
		{"01:02:03:04:05", EUI48{}, false},
		{"01-02-03-04-05-06", EUI48{}, false},
		{"0g:02:03:04:05:06", EUI48{}, false},
	}
	for _, tt := range cases {
		a, err := ParseEUI48(tt.s)
		if tt.ok != (err == nil) {
			t.Errorf("ParseEUI48(%q) error = %v", tt.s, err)
			continue
		}
		if !tt.ok {
			if errors.Cause(err) != ErrInvalidArgument {
				t.Errorf("ParseEUI48(%q): cause %v, want ErrInvalidArgument", tt.s, err)
			}
			continue
		}
		if a != tt.want {
			t.Errorf("ParseEUI48(%q) = %v, want %v", tt.s, a, tt.want)
		}
	}
}

func TestEUI48String(t *testing.T) {
	a := EUI48{0x06, 0x05, 0x04, 0x03, 0x02, 0x01}
	if got := a.String(); got != "01:02:03:04:05:06" {
		t.Errorf("String = %q", got)
	}
	round, err := ParseEUI48(a.String())
	if err != nil || round != a {
		t.Errorf("round trip = %v, %v", round, err)
	}
}

func TestAddressTypeString(t *testing.T) {
	cases := []struct {
		t    AddressType
		want string
	}{
		{AddrBREDR, "BDADDR_BREDR"},
		{AddrLEPublic, "BDADDR_LE_PUBLIC"},
		{AddrLERandom, "BDADDR_LE_RANDOM"},
		{AddrUndefined, "BDADDR_UNDEFINED"},
		{AddressType(0x42), "BDADDR_UNDEFINED"},
	}
	for _, tt := range cases {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.t, got, tt.want)
		}
	}
}
