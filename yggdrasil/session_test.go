package yggdrasil

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"testing"
)

func TestNewSharedSecretLength(t *testing.T) {
	s, err := NewSharedSecret()
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 16 {
		t.Errorf("expected 16 bytes, got %d", len(s))
	}
}

func TestEncryptPKCS1v15RoundTrip(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	plaintext := []byte("0123456789abcdef")
	ciphertext, err := EncryptPKCS1v15(der, plaintext)
	if err != nil {
		t.Fatalf("EncryptPKCS1v15: %v", err)
	}
	if len(ciphertext) != 128 {
		t.Errorf("expected 128-byte ciphertext for a 1024-bit key, got %d", len(ciphertext))
	}
	decrypted, err := rsa.DecryptPKCS1v15(rand.Reader, key, ciphertext)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if string(decrypted) != string(plaintext) {
		t.Errorf("got %q, want %q", decrypted, plaintext)
	}
}
