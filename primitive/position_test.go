package primitive

import "testing"

func TestPositionRoundTrip(t *testing.T) {
	cases := []Position{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 1},
		{X: -1, Y: -1, Z: -1},
		{X: 18357644, Y: 831, Z: 18357644},
		{X: -33554432, Y: -2048, Z: -33554432},
		{X: 33554431, Y: 2047, Z: 33554431},
	}
	for _, p := range cases {
		v, err := EncodePosition(p)
		if err != nil {
			t.Fatalf("EncodePosition(%+v): %v", p, err)
		}
		got := DecodePosition(v)
		if got != p {
			t.Errorf("round trip %+v got %+v (wire %d)", p, got, v)
		}
	}
}

func TestPositionOutOfRange(t *testing.T) {
	cases := []Position{
		{X: 33554432, Y: 0, Z: 0},
		{X: -33554433, Y: 0, Z: 0},
		{X: 0, Y: 2048, Z: 0},
		{X: 0, Y: -2049, Z: 0},
	}
	for _, p := range cases {
		if _, err := EncodePosition(p); err == nil {
			t.Errorf("expected error encoding out-of-range position %+v", p)
		}
	}
}

func TestPositionYInLowBits(t *testing.T) {
	// Y must occupy the low 12 bits under the version-316 layout: a
	// position with only Y set must produce a wire value equal to Y
	// masked to 12 bits (no shift), distinguishing this from the legacy
	// Y-in-middle layout.
	p := Position{X: 0, Y: 5, Z: 0}
	v, err := EncodePosition(p)
	if err != nil {
		t.Fatal(err)
	}
	if v != 5 {
		t.Errorf("expected wire value 5 for Y-only position, got %d", v)
	}
}
