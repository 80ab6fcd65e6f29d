package uuid

import (
	"testing"

	"github.com/pkg/errors"

	bt "github.com/xranby/direct-bt-1"
)

func TestEqualAcrossWidths(t *testing.T) {
	cases := []struct {
		a, b UUID
		want bool
	}{
		{UUID16(0x1800), UUID16(0x1800), true},
		{UUID16(0x1800), UUID16(0x180A), false},
		{UUID16(0x1800), UUID32(0x00001800), true},
		{UUID32(0x00001800), MustParse("00001800-0000-1000-8000-00805F9B34FB"), true},
		{UUID16(0x1800), MustParse("00001800-0000-1000-8000-00805F9B34FB"), true},
		{UUID16(0x1800), MustParse("00001800-0000-1000-8000-00805F9B34FC"), false},
		{MustParse("34DA3AD1-7110-41A1-B1EF-4430F509CDE7"), MustParse("34DA3AD1-7110-41A1-B1EF-4430F509CDE7"), true},
	}
	for _, tt := range cases {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%s.Equal(%s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := tt.b.Equal(tt.a); got != tt.want {
			t.Errorf("%s.Equal(%s) = %v, want %v", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestTo128(t *testing.T) {
	u := UUID16(0x2902).To128()
	if u.Len() != 16 {
		t.Fatalf("To128 length = %d", u.Len())
	}
	if want := "00002902-0000-1000-8000-00805F9B34FB"; !u.Equal(MustParse(want)) {
		t.Errorf("To128 = %s, want %s", u, want)
	}
	full := MustParse("34DA3AD1-7110-41A1-B1EF-4430F509CDE7")
	if &full[0] != &full.To128()[0] {
		t.Error("To128 of a 128-bit UUID should not copy")
	}
}

func TestNewInvalidSize(t *testing.T) {
	for _, n := range []int{0, 1, 3, 5, 15, 17} {
		if _, err := New(make([]byte, n)); errors.Cause(err) != bt.ErrInvalidUUIDSize {
			t.Errorf("New(%d bytes): error %v, want ErrInvalidUUIDSize", n, err)
		}
	}
	for _, n := range []int{2, 4, 16} {
		if _, err := New(make([]byte, n)); err != nil {
			t.Errorf("New(%d bytes): %v", n, err)
		}
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		s    string
		want UUID
		ok   bool
	}{
		{"1800", UUID16(0x1800), true},
		{"12345678", UUID32(0x12345678), true},
		{"00001800-0000-1000-8000-00805F9B34FB", UUID16(0x1800), true},
		{"zz00", nil, false},
		{"180", nil, false},
	}
	for _, tt := range cases {
		u, err := Parse(tt.s)
		if tt.ok != (err == nil) {
			t.Errorf("Parse(%q) error = %v", tt.s, err)
			continue
		}
		if tt.ok && !u.Equal(tt.want) {
			t.Errorf("Parse(%q) = %s, want %s", tt.s, u, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	if got := UUID16(0x1800).String(); got != "1800" {
		t.Errorf("String = %q", got)
	}
	if got := MustParse("34DA3AD1-7110-41A1-B1EF-4430F509CDE7").String(); got != "34DA3AD1711041A1B1EF4430F509CDE7" {
		t.Errorf("String = %q", got)
	}
}

func TestContains(t *testing.T) {
	s := []UUID{UUID16(0x1800), UUID16(0x180A)}
	if !Contains(s, UUID32(0x00001800)) {
		t.Error("Contains should match across widths")
	}
	if Contains(s, UUID16(0x2902)) {
		t.Error("Contains should not match 2902")
	}
	if !Contains(nil, UUID16(0x2902)) {
		t.Error("nil filter matches any UUID")
	}
}
