package primitive

import (
	"io"
	"unicode/utf8"

	"mcproto/protoerr"
)

// MaxStringBytes is the largest UTF-8 byte length a protocol string may
// encode to. ReadString rejects a longer string as malformed.
const MaxStringBytes = 32768

// ReadString decodes a varint-length-prefixed UTF-8 string.
func ReadString(r io.Reader) (string, error) {
	n, err := ReadVarInt(r)
	if err != nil {
		return "", err
	}
	if n < 0 || int(n) > MaxStringBytes {
		return "", protoerr.New(protoerr.KindMalformed, "string length %d exceeds max %d", n, MaxStringBytes)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", protoerr.Wrap(protoerr.KindIO, err, "read string body (%d bytes)", n)
	}
	if !utf8.Valid(buf) {
		return "", protoerr.New(protoerr.KindMalformed, "string body is not valid UTF-8")
	}
	return string(buf), nil
}

// WriteString appends a varint-length-prefixed UTF-8 string to dst. It
// does not check s against MaxStringBytes, and the packet encoders do
// not check it either.
func WriteString(dst []byte, s string) []byte {
	dst = WriteVarInt(dst, int32(len(s)))
	return append(dst, s...)
}

// ReadByteArrayToEnd consumes the remainder of r without any length
// prefix, used by the handful of packets whose trailing field is
// "remaining bytes in the packet" (e.g. plugin messages).
func ReadByteArrayToEnd(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, protoerr.Wrap(protoerr.KindIO, err, "read trailing byte array")
	}
	return b, nil
}

// ReadPrefixedByteArray decodes a varint-length-prefixed byte array.
func ReadPrefixedByteArray(r io.Reader) ([]byte, error) {
	n, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, protoerr.New(protoerr.KindMalformed, "negative byte array length %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, protoerr.Wrap(protoerr.KindIO, err, "read byte array body (%d bytes)", n)
	}
	return buf, nil
}

// WritePrefixedByteArray appends a varint-length-prefixed byte array to dst.
func WritePrefixedByteArray(dst []byte, b []byte) []byte {
	dst = WriteVarInt(dst, int32(len(b)))
	return append(dst, b...)
}
