// Package cipher provides the two mid-stream transforms a Connection can
// enable: zlib compression (klauspost/compress/zlib, gated by a byte
// threshold) and AES-128/CFB8 stream encryption. Both toggles are
// one-shot and irreversible for the lifetime of a Connection, matching
// how the login handshake uses them.
package cipher

import (
	gocipher "crypto/cipher"

	"mcproto/protoerr"
)

// cfb8 implements crypto/cipher.Stream for 8-bit-segment CFB mode, which
// the standard library does not provide (crypto/cipher.NewCFBEncrypter
// only supports a segment size equal to the block size). The construction
// keeps a shifting register seeded with the IV: each output byte is the
// plaintext (or ciphertext, for decryption) XORed against the first byte
// of E(register), and the register then shifts left by one byte with the
// byte actually placed on the wire (the ciphertext byte, in both
// directions) appended at the end.
type cfb8 struct {
	block     gocipher.Block
	register  []byte
	tmp       []byte
	decrypt   bool
}

// NewCFB8Encrypter returns a cipher.Stream that encrypts with block in
// 8-bit CFB mode, using iv as the initial shift register. len(iv) must
// equal block.BlockSize().
func NewCFB8Encrypter(block gocipher.Block, iv []byte) gocipher.Stream {
	return newCFB8(block, iv, false)
}

// NewCFB8Decrypter returns a cipher.Stream that decrypts with block in
// 8-bit CFB mode, using iv as the initial shift register.
func NewCFB8Decrypter(block gocipher.Block, iv []byte) gocipher.Stream {
	return newCFB8(block, iv, true)
}

func newCFB8(block gocipher.Block, iv []byte, decrypt bool) *cfb8 {
	if len(iv) != block.BlockSize() {
		panic("cipher: CFB8 IV length must equal block size")
	}
	register := make([]byte, len(iv))
	copy(register, iv)
	return &cfb8{
		block:    block,
		register: register,
		tmp:      make([]byte, len(iv)),
		decrypt:  decrypt,
	}
}

// XORKeyStream implements cipher.Stream. src and dst may overlap exactly,
// matching the stdlib convention.
func (c *cfb8) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("cipher: output smaller than input")
	}
	blockSize := len(c.register)
	for i := range src {
		c.block.Encrypt(c.tmp, c.register)
		var cipherByte byte
		if c.decrypt {
			cipherByte = src[i]
			dst[i] = src[i] ^ c.tmp[0]
		} else {
			dst[i] = src[i] ^ c.tmp[0]
			cipherByte = dst[i]
		}
		copy(c.register, c.register[1:blockSize])
		c.register[blockSize-1] = cipherByte
	}
}

// checkAES128Key returns a KindCrypto error when the key is not 16 bytes.
func checkAES128Key(key []byte) error {
	if len(key) != 16 {
		return protoerr.New(protoerr.KindCrypto, "AES-128 key must be 16 bytes, got %d", len(key))
	}
	return nil
}
