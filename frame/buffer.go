// Package frame implements the length-prefixed frame buffer that sits
// between the raw byte stream and the packet codec: it accumulates bytes
// as they arrive, and releases one complete frame payload at a time once
// its varint length prefix and the matching number of body bytes are
// both present.
//
// Buffer never blocks on I/O itself — callers feed it bytes as they
// arrive (from a net.Conn read, already passed through the cipher stage)
// and poll TakeFrame until it reports no frame is ready yet.
package frame

import (
	"bytes"
	"time"

	"mcproto/protoerr"
)

// IdleTimeout is how long Buffer may go without an Ingest call before
// the connection considers the peer gone.
const IdleTimeout = 30 * time.Second

// Buffer accumulates inbound bytes and slices off complete
// length-prefixed frames.
type Buffer struct {
	data     []byte
	lastSeen time.Time
}

// NewBuffer returns an empty Buffer with its idle clock started now.
func NewBuffer(now time.Time) *Buffer {
	return &Buffer{lastSeen: now}
}

// Ingest appends newly read bytes and resets the idle clock.
func (b *Buffer) Ingest(data []byte, now time.Time) {
	if len(data) > 0 {
		b.data = append(b.data, data...)
	}
	b.lastSeen = now
}

// Idle reports how long it has been since bytes were last ingested.
func (b *Buffer) Idle(now time.Time) time.Duration {
	return now.Sub(b.lastSeen)
}

// TakeFrame attempts to remove one complete frame (the raw bytes that
// follow the length prefix, not including it) from the front of the
// buffer. ok is false when fewer bytes than the frame requires have
// arrived yet — this is not an error, the caller should read more and
// retry. An error return means the length prefix itself was malformed.
func (b *Buffer) TakeFrame() (payload []byte, ok bool, err error) {
	length, prefixLen, complete, err := peekVarInt(b.data)
	if err != nil {
		return nil, false, err
	}
	if !complete {
		if prefixLen >= 5 {
			return nil, false, protoerr.New(protoerr.KindMalformed, "frame length prefix exceeds 5 bytes")
		}
		return nil, false, nil
	}
	if length < 0 {
		return nil, false, protoerr.New(protoerr.KindMalformed, "negative frame length %d", length)
	}
	total := prefixLen + int(length)
	if len(b.data) < total {
		return nil, false, nil
	}
	frame := make([]byte, length)
	copy(frame, b.data[prefixLen:total])
	b.data = b.data[total:]
	return frame, true, nil
}

// peekVarInt decodes a varint from the front of buf without requiring the
// full value to be consumed out of the buffer's backing array. It
// returns the decoded value, the number of bytes the prefix occupies
// once fully present, and whether the full prefix was actually available
// in buf. err is set when a complete 5-byte prefix was seen but its
// reassembled value overflows 32 bits, mirroring ReadVarInt's guard.
func peekVarInt(buf []byte) (value int32, prefixLen int, complete bool, err error) {
	var result uint64
	for i := 0; i < len(buf) && i < 5; i++ {
		b := buf[i]
		result |= uint64(b&0x7f) << (7 * uint(i))
		if b&0x80 == 0 {
			if result >= 1<<32 {
				return 0, i + 1, true, protoerr.New(protoerr.KindMalformed, "frame length prefix value %d overflows 32 bits", result)
			}
			if result > 1<<31-1 {
				return int32(int64(result)-1<<32), i + 1, true, nil
			}
			return int32(result), i + 1, true, nil
		}
	}
	if len(buf) >= 5 {
		return 0, 5, false, nil
	}
	return 0, len(buf), false, nil
}

// FrameReader exposes a decoded frame payload as a byte reader for
// packet decoding.
func FrameReader(payload []byte) *bytes.Reader {
	return bytes.NewReader(payload)
}
