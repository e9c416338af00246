package cipher

import (
	"bytes"
	"crypto/aes"
	"testing"
)

func TestCFB8RoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x2a}, 16)
	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	enc := NewCFB8Encrypter(block, key)
	plaintext := []byte("the quick brown fox jumps over the lazy dog, 0123456789")

	ciphertext := make([]byte, len(plaintext))
	enc.XORKeyStream(ciphertext, plaintext)

	block2, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	dec := NewCFB8Decrypter(block2, key)
	decrypted := make([]byte, len(ciphertext))
	dec.XORKeyStream(decrypted, ciphertext)

	if !bytes.Equal(decrypted, plaintext) {
		t.Fatalf("round trip mismatch: got %q, want %q", decrypted, plaintext)
	}
}

func TestCFB8StreamsByteAtATime(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, 16)
	plaintext := []byte("streamed byte at a time across multiple XORKeyStream calls")

	blockA, _ := aes.NewCipher(key)
	enc := NewCFB8Encrypter(blockA, key)
	ciphertext := make([]byte, len(plaintext))
	for i, p := range plaintext {
		enc.XORKeyStream(ciphertext[i:i+1], []byte{p})
	}

	blockB, _ := aes.NewCipher(key)
	dec := NewCFB8Decrypter(blockB, key)
	decrypted := make([]byte, len(ciphertext))
	for i := range ciphertext {
		dec.XORKeyStream(decrypted[i:i+1], ciphertext[i:i+1])
	}

	if !bytes.Equal(decrypted, plaintext) {
		t.Fatalf("byte-at-a-time round trip mismatch: got %q, want %q", decrypted, plaintext)
	}
}

func TestNewEncryptionPairRejectsBadKeyLength(t *testing.T) {
	if _, err := NewEncryptionPair([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for short shared secret")
	}
}
