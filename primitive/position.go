package primitive

import (
	"io"

	"mcproto/protoerr"
)

// Position is a block coordinate packed into a single i64 on the wire.
// Version 316 packs Y into the low 12 bits, Z into the middle 26, and X
// into the high 26 — the current layout, not the legacy one where Y sat
// in the middle 12 bits.
type Position struct {
	X, Y, Z int64
}

const (
	posXBits = 26
	posZBits = 26
	posYBits = 12
)

// EncodePosition packs p into its wire i64, validating that each
// component fits its field's two's-complement range.
func EncodePosition(p Position) (int64, error) {
	if p.X < -(1<<(posXBits-1)) || p.X >= 1<<(posXBits-1) {
		return 0, protoerr.New(protoerr.KindInvalidOutbound, "position X %d out of range", p.X)
	}
	if p.Z < -(1<<(posZBits-1)) || p.Z >= 1<<(posZBits-1) {
		return 0, protoerr.New(protoerr.KindInvalidOutbound, "position Z %d out of range", p.Z)
	}
	if p.Y < -(1<<(posYBits-1)) || p.Y >= 1<<(posYBits-1) {
		return 0, protoerr.New(protoerr.KindInvalidOutbound, "position Y %d out of range", p.Y)
	}
	x := uint64(p.X) & (1<<posXBits - 1)
	z := uint64(p.Z) & (1<<posZBits - 1)
	y := uint64(p.Y) & (1<<posYBits - 1)
	return int64(x<<(posZBits+posYBits) | z<<posYBits | y), nil
}

// DecodePosition unpacks a wire i64 into its X/Y/Z components, sign
// extending each field from its packed width.
func DecodePosition(v int64) Position {
	u := uint64(v)
	x := signExtend(u>>(posZBits+posYBits), posXBits)
	z := signExtend(u>>posYBits, posZBits)
	y := signExtend(u, posYBits)
	return Position{X: x, Y: y, Z: z}
}

// ReadPosition decodes a packed position from the wire.
func ReadPosition(r io.Reader) (Position, error) {
	v, err := ReadI64(r)
	if err != nil {
		return Position{}, err
	}
	return DecodePosition(v), nil
}

// WritePosition appends the packed wire encoding of p to dst.
func WritePosition(dst []byte, p Position) ([]byte, error) {
	v, err := EncodePosition(p)
	if err != nil {
		return dst, err
	}
	return WriteI64(dst, v), nil
}

func signExtend(v uint64, bits uint) int64 {
	v &= 1<<bits - 1
	if v >= 1<<(bits-1) {
		return int64(v) - 1<<bits
	}
	return int64(v)
}
