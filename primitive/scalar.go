package primitive

import (
	"encoding/binary"
	"io"
	"math"

	"mcproto/protoerr"
)

// ReadBool decodes a single byte as a boolean; any value other than 0x00
// or 0x01 is malformed.
func ReadBool(r io.Reader) (bool, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return false, protoerr.Wrap(protoerr.KindIO, err, "read bool")
	}
	switch buf[0] {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, protoerr.New(protoerr.KindMalformed, "invalid bool byte 0x%02x", buf[0])
	}
}

// WriteBool appends a single 0x00/0x01 byte to dst.
func WriteBool(dst []byte, v bool) []byte {
	if v {
		return append(dst, 0x01)
	}
	return append(dst, 0x00)
}

// ReadI8 reads a signed byte.
func ReadI8(r io.Reader) (int8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, protoerr.Wrap(protoerr.KindIO, err, "read i8")
	}
	return int8(buf[0]), nil
}

// WriteI8 appends a signed byte to dst.
func WriteI8(dst []byte, v int8) []byte { return append(dst, byte(v)) }

// ReadU8 reads an unsigned byte.
func ReadU8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, protoerr.Wrap(protoerr.KindIO, err, "read u8")
	}
	return buf[0], nil
}

// WriteU8 appends an unsigned byte to dst.
func WriteU8(dst []byte, v uint8) []byte { return append(dst, v) }

// ReadI16 reads a big-endian signed 16-bit integer.
func ReadI16(r io.Reader) (int16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, protoerr.Wrap(protoerr.KindIO, err, "read i16")
	}
	return int16(binary.BigEndian.Uint16(buf[:])), nil
}

// WriteI16 appends a big-endian signed 16-bit integer to dst.
func WriteI16(dst []byte, v int16) []byte {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(v))
	return append(dst, buf[:]...)
}

// ReadU16 reads a big-endian unsigned 16-bit integer.
func ReadU16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, protoerr.Wrap(protoerr.KindIO, err, "read u16")
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

// WriteU16 appends a big-endian unsigned 16-bit integer to dst.
func WriteU16(dst []byte, v uint16) []byte {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	return append(dst, buf[:]...)
}

// ReadI32 reads a big-endian signed 32-bit integer.
func ReadI32(r io.Reader) (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, protoerr.Wrap(protoerr.KindIO, err, "read i32")
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

// WriteI32 appends a big-endian signed 32-bit integer to dst.
func WriteI32(dst []byte, v int32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	return append(dst, buf[:]...)
}

// ReadI64 reads a big-endian signed 64-bit integer.
func ReadI64(r io.Reader) (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, protoerr.Wrap(protoerr.KindIO, err, "read i64")
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

// WriteI64 appends a big-endian signed 64-bit integer to dst.
func WriteI64(dst []byte, v int64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	return append(dst, buf[:]...)
}

// ReadU64 reads a big-endian unsigned 64-bit integer, used by entity UUID
// halves and similar raw-integer fields.
func ReadU64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, protoerr.Wrap(protoerr.KindIO, err, "read u64")
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// WriteU64 appends a big-endian unsigned 64-bit integer to dst.
func WriteU64(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}

// ReadF32 reads a big-endian IEEE-754 32-bit float.
func ReadF32(r io.Reader) (float32, error) {
	bits, err := ReadI32(r)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(bits)), nil
}

// WriteF32 appends a big-endian IEEE-754 32-bit float to dst.
func WriteF32(dst []byte, v float32) []byte {
	return WriteI32(dst, int32(math.Float32bits(v)))
}

// ReadF64 reads a big-endian IEEE-754 64-bit float.
func ReadF64(r io.Reader) (float64, error) {
	bits, err := ReadI64(r)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(bits)), nil
}

// WriteF64 appends a big-endian IEEE-754 64-bit float to dst.
func WriteF64(dst []byte, v float64) []byte {
	return WriteI64(dst, int64(math.Float64bits(v)))
}
