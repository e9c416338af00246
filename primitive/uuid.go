package primitive

import (
	"fmt"
	"io"

	"mcproto/protoerr"
)

// UUID is a 128-bit identifier split into big-endian halves, mirroring how
// the wire format and the Yggdrasil session API both represent it.
type UUID struct {
	Most  uint64
	Least uint64
}

// ReadUUIDString decodes a UUID encoded as a length-prefixed 32-character
// hex string with no dashes (the form used by most Play packets).
func ReadUUIDString(r io.Reader) (UUID, error) {
	s, err := ReadString(r)
	if err != nil {
		return UUID{}, err
	}
	return parseHexUUID(s, false)
}

// WriteUUIDString appends the 32-character undashed hex form of u to dst.
func WriteUUIDString(dst []byte, u UUID) []byte {
	return WriteString(dst, fmt.Sprintf("%016x%016x", u.Most, u.Least))
}

// ReadUUIDStringDashes decodes a UUID encoded as a length-prefixed
// dashed hex string (8-4-4-4-12), the form used by the Yggdrasil HTTP
// API and a few login-state packets.
func ReadUUIDStringDashes(r io.Reader) (UUID, error) {
	s, err := ReadString(r)
	if err != nil {
		return UUID{}, err
	}
	return parseHexUUID(s, true)
}

// WriteUUIDStringDashes appends the dashed hex form of u to dst.
func WriteUUIDStringDashes(dst []byte, u UUID) []byte {
	s := fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		uint32(u.Most>>32), uint16(u.Most>>16), uint16(u.Most),
		uint16(u.Least>>48), u.Least&0xffffffffffff)
	return WriteString(dst, s)
}

func parseHexUUID(s string, dashed bool) (UUID, error) {
	if dashed {
		if len(s) != 36 {
			return UUID{}, protoerr.New(protoerr.KindMalformed, "dashed UUID string has wrong length %d", len(s))
		}
		s = s[:8] + s[9:13] + s[14:18] + s[19:23] + s[24:]
	}
	if len(s) != 32 {
		return UUID{}, protoerr.New(protoerr.KindMalformed, "UUID hex string has wrong length %d", len(s))
	}
	var most, least uint64
	if _, err := fmt.Sscanf(s[:16], "%016x", &most); err != nil {
		return UUID{}, protoerr.Wrap(protoerr.KindMalformed, err, "parse UUID high half")
	}
	if _, err := fmt.Sscanf(s[16:], "%016x", &least); err != nil {
		return UUID{}, protoerr.Wrap(protoerr.KindMalformed, err, "parse UUID low half")
	}
	return UUID{Most: most, Least: least}, nil
}
