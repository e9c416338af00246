package primitive

import (
	"bytes"
	"testing"
)

func TestUUIDStringRoundTrip(t *testing.T) {
	u := UUID{Most: 0x0123456789abcdef, Least: 0xfedcba9876543210}
	buf := WriteUUIDString(nil, u)
	got, err := ReadUUIDString(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("ReadUUIDString: %v", err)
	}
	if got != u {
		t.Errorf("got %+v, want %+v", got, u)
	}
}

func TestUUIDStringDashesRoundTrip(t *testing.T) {
	u := UUID{Most: 0x0123456789abcdef, Least: 0xfedcba9876543210}
	buf := WriteUUIDStringDashes(nil, u)
	got, err := ReadUUIDStringDashes(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("ReadUUIDStringDashes: %v", err)
	}
	if got != u {
		t.Errorf("got %+v, want %+v", got, u)
	}
}

func TestUUIDDashedFormat(t *testing.T) {
	u := UUID{Most: 0x0123456789abcdef, Least: 0xfedcba9876543210}
	buf := WriteUUIDStringDashes(nil, u)
	s, err := ReadStringRaw(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := "01234567-89ab-cdef-fedc-ba9876543210"
	if s != want {
		t.Errorf("got %q, want %q", s, want)
	}
}

// ReadStringRaw is a small test helper that decodes the length-prefixed
// string without going through UUID parsing.
func ReadStringRaw(buf []byte) (string, error) {
	return ReadString(bytes.NewReader(buf))
}
