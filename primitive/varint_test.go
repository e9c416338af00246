package primitive

import (
	"bytes"
	"testing"
)

func TestVarIntRoundTrip(t *testing.T) {
	cases := []int32{0, 1, -1, 2147483647, -2147483648, 25565, 127, 128, 255}
	for _, v := range cases {
		buf := WriteVarInt(nil, v)
		got, err := ReadVarInt(bytes.NewReader(buf))
		if err != nil {
			t.Fatalf("ReadVarInt(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d got %d", v, got)
		}
		if len(buf) != VarIntSize(v) {
			t.Errorf("VarIntSize(%d) = %d, encoded length was %d", v, VarIntSize(v), len(buf))
		}
	}
}

func TestVarIntKnownEncodings(t *testing.T) {
	cases := map[int32][]byte{
		0:          {0x00},
		1:          {0x01},
		2:          {0x02},
		127:        {0x7f},
		128:        {0x80, 0x01},
		255:        {0xff, 0x01},
		2097151:    {0xff, 0xff, 0x7f},
		-1:         {0xff, 0xff, 0xff, 0xff, 0x0f},
		-2147483648: {0x80, 0x80, 0x80, 0x80, 0x08},
	}
	for v, want := range cases {
		got := WriteVarInt(nil, v)
		if !bytes.Equal(got, want) {
			t.Errorf("WriteVarInt(%d) = % x, want % x", v, got, want)
		}
	}
}

func TestVarIntTooLong(t *testing.T) {
	buf := bytes.Repeat([]byte{0x80}, 6)
	if _, err := ReadVarInt(bytes.NewReader(buf)); err == nil {
		t.Fatal("expected error for oversized varint")
	}
}

func TestVarLongRejectsNonZeroTrailingBits(t *testing.T) {
	// 9 continuation bytes of 0xff followed by a 10th byte whose upper
	// payload bits are set: the reassembled value would overflow 64 bits,
	// so this must be rejected rather than silently truncated.
	buf := append(bytes.Repeat([]byte{0xff}, 9), 0x7f)
	if _, err := ReadVarLong(bytes.NewReader(buf)); err == nil {
		t.Fatal("expected error for varlong with nonzero trailing bits")
	}
}

func TestVarLongRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 9223372036854775807, -9223372036854775808}
	for _, v := range cases {
		buf := WriteVarLong(nil, v)
		got, err := ReadVarLong(bytes.NewReader(buf))
		if err != nil {
			t.Fatalf("ReadVarLong(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d got %d", v, got)
		}
	}
}
