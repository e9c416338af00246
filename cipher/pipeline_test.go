package cipher

import (
	"bytes"
	"testing"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	original := bytes.Repeat([]byte("payload data "), 200)
	compressed, err := Compress(original)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if len(compressed) >= len(original) {
		t.Errorf("expected compression to shrink repetitive input: %d >= %d", len(compressed), len(original))
	}
	decompressed, err := Decompress(compressed, len(original))
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(decompressed, original) {
		t.Error("decompressed data does not match original")
	}
}

func TestDecompressRejectsWrongLength(t *testing.T) {
	original := []byte("short payload")
	compressed, err := Compress(original)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decompress(compressed, len(original)+10); err == nil {
		t.Fatal("expected error when declared length exceeds actual inflated length")
	}
}
