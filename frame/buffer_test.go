package frame

import (
	"bytes"
	"testing"
	"time"

	"mcproto/primitive"
)

func TestTakeFrameWaitsForFullPayload(t *testing.T) {
	now := time.Now()
	b := NewBuffer(now)

	payload := []byte{1, 2, 3, 4, 5}
	frame := primitive.WriteVarInt(nil, int32(len(payload)))
	frame = append(frame, payload...)

	// Feed one byte at a time; TakeFrame must report ok=false until the
	// whole frame has arrived.
	for i := 0; i < len(frame)-1; i++ {
		b.Ingest(frame[i:i+1], now)
		got, ok, err := b.TakeFrame()
		if err != nil {
			t.Fatalf("unexpected error at byte %d: %v", i, err)
		}
		if ok {
			t.Fatalf("TakeFrame reported ready too early at byte %d, got %v", i, got)
		}
	}
	b.Ingest(frame[len(frame)-1:], now)
	got, ok, err := b.TakeFrame()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected frame to be ready")
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("got %v, want %v", got, payload)
	}
}

func TestTakeFrameMultipleFrames(t *testing.T) {
	now := time.Now()
	b := NewBuffer(now)

	var all []byte
	for _, payload := range [][]byte{{1}, {2, 2}, {3, 3, 3}} {
		all = append(all, primitive.WriteVarInt(nil, int32(len(payload)))...)
		all = append(all, payload...)
	}
	b.Ingest(all, now)

	for _, want := range [][]byte{{1}, {2, 2}, {3, 3, 3}} {
		got, ok, err := b.TakeFrame()
		if err != nil || !ok {
			t.Fatalf("TakeFrame() = %v, %v, %v", got, ok, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	}
	if _, ok, _ := b.TakeFrame(); ok {
		t.Fatal("expected no more frames")
	}
}

func TestIdleTimeout(t *testing.T) {
	start := time.Now()
	b := NewBuffer(start)
	later := start.Add(31 * time.Second)
	if b.Idle(later) < IdleTimeout {
		t.Fatalf("expected idle duration to exceed %v, got %v", IdleTimeout, b.Idle(later))
	}
}

func TestOversizedLengthPrefix(t *testing.T) {
	now := time.Now()
	b := NewBuffer(now)
	b.Ingest(bytes.Repeat([]byte{0x80}, 5), now)
	if _, _, err := b.TakeFrame(); err == nil {
		t.Fatal("expected error for oversized length prefix")
	}
}

func TestOverflowingLengthPrefix(t *testing.T) {
	now := time.Now()
	b := NewBuffer(now)
	// A complete 5-byte prefix whose reassembled value overflows 32 bits.
	b.Ingest([]byte{0xff, 0xff, 0xff, 0xff, 0x7f}, now)
	if _, _, err := b.TakeFrame(); err == nil {
		t.Fatal("expected error for overflowing length prefix")
	}
}
