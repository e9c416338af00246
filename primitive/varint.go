// Package primitive implements the scalar and composite wire encodings
// shared by every packet variant: booleans, fixed-width integers and
// floats, LEB128-style varint/varlong, length-prefixed strings, prefixed
// byte arrays, UUID string forms, and the packed block-position encoding.
//
// Every Read* function takes an io.Reader positioned at the start of the
// value and returns protoerr-wrapped errors on malformed input. Every
// Write* function appends to a []byte and never fails on well-formed Go
// values (invalid outbound values are the caller's responsibility to
// avoid, per the packet catalog's encode-time validation).
package primitive

import (
	"io"

	"mcproto/protoerr"
)

const (
	varintMaxBytes  = 5
	varlongMaxBytes = 10
)

// ReadVarInt decodes a protocol varint: 7 bits per byte, MSB continuation
// flag, little-endian chunk order, two's-complement sign via the top bit
// of the reassembled 32-bit value.
func ReadVarInt(r io.Reader) (int32, error) {
	var result uint64
	var numRead int
	buf := make([]byte, 1)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return 0, protoerr.Wrap(protoerr.KindIO, err, "read varint byte %d", numRead)
		}
		b := buf[0]
		result |= uint64(b&0x7f) << (7 * uint(numRead))
		numRead++
		if b&0x80 == 0 {
			break
		}
		if numRead >= varintMaxBytes {
			return 0, protoerr.New(protoerr.KindMalformed, "varint exceeds %d bytes", varintMaxBytes)
		}
	}
	if result >= 1<<32 {
		return 0, protoerr.New(protoerr.KindMalformed, "varint value %d overflows 32 bits", result)
	}
	if result > 1<<31-1 {
		return int32(int64(result) - 1<<32), nil
	}
	return int32(result), nil
}

// WriteVarInt appends the varint encoding of v to dst and returns the
// extended slice.
func WriteVarInt(dst []byte, v int32) []byte {
	u := uint32(v)
	for {
		b := byte(u & 0x7f)
		u >>= 7
		if u != 0 {
			dst = append(dst, b|0x80)
		} else {
			dst = append(dst, b)
			break
		}
	}
	return dst
}

// VarIntSize reports the encoded length of v in bytes, without allocating.
func VarIntSize(v int32) int {
	u := uint32(v)
	n := 1
	for u >= 0x80 {
		u >>= 7
		n++
	}
	return n
}

// ReadVarLong is ReadVarInt's 64-bit counterpart, capped at 10 bytes. The
// 10th byte only ever contributes the top bit of the reassembled 64-bit
// value, so its upper 6 payload bits must be zero; anything else is
// malformed input rather than silently truncated garbage.
func ReadVarLong(r io.Reader) (int64, error) {
	var result uint64
	var numRead int
	buf := make([]byte, 1)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return 0, protoerr.Wrap(protoerr.KindIO, err, "read varlong byte %d", numRead)
		}
		b := buf[0]
		if numRead == varlongMaxBytes-1 && b&0x7e != 0 {
			return 0, protoerr.New(protoerr.KindMalformed, "varlong 10th byte has nonzero upper bits")
		}
		result |= uint64(b&0x7f) << (7 * uint(numRead))
		numRead++
		if b&0x80 == 0 {
			break
		}
		if numRead >= varlongMaxBytes {
			return 0, protoerr.New(protoerr.KindMalformed, "varlong exceeds %d bytes", varlongMaxBytes)
		}
	}
	return int64(result), nil
}

// WriteVarLong appends the varlong encoding of v to dst.
func WriteVarLong(dst []byte, v int64) []byte {
	u := uint64(v)
	for {
		b := byte(u & 0x7f)
		u >>= 7
		if u != 0 {
			dst = append(dst, b|0x80)
		} else {
			dst = append(dst, b)
			break
		}
	}
	return dst
}
