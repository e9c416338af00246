// Package yggdrasil implements the Mojang session-join collaborator: the
// server-id hash algorithm and the HTTPS POST that proves account
// ownership before the authenticated handshake enables encryption.
package yggdrasil

import (
	"crypto/sha1"
	"math/big"
)

// ServerHash computes the server-id hash used in a session-join request:
// SHA-1 of serverID||sharedSecret||serverPublicKey, rendered as a
// lowercase, two's-complement signed hex string with no leading zeros
// and a leading '-' when negative.
func ServerHash(serverID string, sharedSecret, serverPublicKey []byte) string {
	h := sha1.New()
	h.Write([]byte(serverID))
	h.Write(sharedSecret)
	h.Write(serverPublicKey)
	digest := h.Sum(nil)

	// Interpret the digest as a big-endian two's-complement signed
	// integer: negative when the top bit is set, in which case negate
	// it (invert every bit, add one) before rendering as hex.
	negative := digest[0] >= 0x80
	if negative {
		for i := range digest {
			digest[i] = ^digest[i]
		}
		n := new(big.Int).SetBytes(digest)
		n.Add(n, big.NewInt(1))
		digest = n.Bytes()
	}

	hex := new(big.Int).SetBytes(digest).Text(16)
	if negative {
		return "-" + hex
	}
	return hex
}
