package primitive

import (
	"bytes"
	"strings"
	"testing"
)

func TestStringRoundTrip(t *testing.T) {
	cases := []string{"", "hello", "éè", "a long server message of things"}
	for _, s := range cases {
		buf := WriteString(nil, s)
		got, err := ReadString(bytes.NewReader(buf))
		if err != nil {
			t.Fatalf("ReadString(%q): %v", s, err)
		}
		if got != s {
			t.Errorf("round trip %q got %q", s, got)
		}
	}
}

func TestStringTooLong(t *testing.T) {
	s := strings.Repeat("a", MaxStringBytes+1)
	buf := WriteVarInt(nil, int32(len(s)))
	buf = append(buf, s...)
	if _, err := ReadString(bytes.NewReader(buf)); err == nil {
		t.Fatal("expected error for oversized string")
	}
}

func TestStringInvalidUTF8(t *testing.T) {
	buf := WriteVarInt(nil, 1)
	buf = append(buf, 0xff)
	if _, err := ReadString(bytes.NewReader(buf)); err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
}

func TestPrefixedByteArrayRoundTrip(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5}
	buf := WritePrefixedByteArray(nil, b)
	got, err := ReadPrefixedByteArray(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("ReadPrefixedByteArray: %v", err)
	}
	if !bytes.Equal(got, b) {
		t.Errorf("got %v, want %v", got, b)
	}
}

func TestByteArrayToEnd(t *testing.T) {
	b := []byte{9, 8, 7}
	got, err := ReadByteArrayToEnd(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("ReadByteArrayToEnd: %v", err)
	}
	if !bytes.Equal(got, b) {
		t.Errorf("got %v, want %v", got, b)
	}
}
