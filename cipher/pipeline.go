package cipher

import (
	"bytes"
	"crypto/aes"
	gocipher "crypto/cipher"
	"io"

	"github.com/klauspost/compress/zlib"

	"mcproto/protoerr"
)

// EncryptionPair bundles the two independent CFB8 streams a connection
// needs: one for bytes going out, one for bytes coming in. The Minecraft
// handshake uses the same 16-byte shared secret as both the AES key and
// the initial IV for both directions.
type EncryptionPair struct {
	Encrypt gocipher.Stream
	Decrypt gocipher.Stream
}

// NewEncryptionPair builds the AES-128/CFB8 stream pair from a 16-byte
// shared secret, as established by the authenticated login handshake
// after the client accepts an EncryptionRequest.
func NewEncryptionPair(sharedSecret []byte) (*EncryptionPair, error) {
	if err := checkAES128Key(sharedSecret); err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(sharedSecret)
	if err != nil {
		return nil, protoerr.Wrap(protoerr.KindCrypto, err, "build AES cipher")
	}
	return &EncryptionPair{
		Encrypt: NewCFB8Encrypter(block, sharedSecret),
		Decrypt: NewCFB8Decrypter(block, sharedSecret),
	}, nil
}

// Compress zlib-compresses src at the default level. Used when an
// outbound frame's uncompressed length meets or exceeds the negotiated
// compression threshold.
func Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(src); err != nil {
		return nil, protoerr.Wrap(protoerr.KindIO, err, "zlib compress")
	}
	if err := w.Close(); err != nil {
		return nil, protoerr.Wrap(protoerr.KindIO, err, "close zlib writer")
	}
	return buf.Bytes(), nil
}

// Decompress inflates a zlib-compressed frame body to exactly
// uncompressedLen bytes, erroring if the stream produces a different
// amount.
func Decompress(src []byte, uncompressedLen int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, protoerr.Wrap(protoerr.KindMalformed, err, "open zlib reader")
	}
	defer r.Close()
	out := make([]byte, uncompressedLen)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, protoerr.Wrap(protoerr.KindMalformed, err, "inflate to %d bytes", uncompressedLen)
	}
	// Confirm the stream is fully consumed; trailing bytes would mean
	// uncompressedLen lied about the payload.
	var extra [1]byte
	if n, _ := r.Read(extra[:]); n != 0 {
		return nil, protoerr.New(protoerr.KindMalformed, "zlib stream longer than declared length %d", uncompressedLen)
	}
	return out, nil
}
