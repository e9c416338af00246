package yggdrasil

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"io"
	"net/http"

	"mcproto/protoerr"
)

// SessionJoinURL is the single HTTPS endpoint this collaborator talks to.
const SessionJoinURL = "https://sessionserver.mojang.com/session/minecraft/join"

// NewSharedSecret returns 16 cryptographically-random bytes for use as
// both the AES-128 key and CFB8 IV once encryption is enabled.
func NewSharedSecret() ([]byte, error) {
	secret := make([]byte, 16)
	if _, err := rand.Read(secret); err != nil {
		return nil, protoerr.Wrap(protoerr.KindCrypto, err, "generate shared secret")
	}
	return secret, nil
}

// EncryptPKCS1v15 encrypts data under a DER-encoded RSA public key with
// PKCS#1 v1.5 padding, as required for both the shared secret and the
// verify token in EncryptionResponse.
func EncryptPKCS1v15(publicKeyDER, data []byte) ([]byte, error) {
	pub, err := x509.ParsePKIXPublicKey(publicKeyDER)
	if err != nil {
		return nil, protoerr.Wrap(protoerr.KindCrypto, err, "parse DER public key")
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, protoerr.New(protoerr.KindCrypto, "public key is not RSA")
	}
	out, err := rsa.EncryptPKCS1v15(rand.Reader, rsaPub, data)
	if err != nil {
		return nil, protoerr.Wrap(protoerr.KindCrypto, err, "RSA encrypt")
	}
	return out, nil
}

type sessionJoinRequest struct {
	AccessToken     string `json:"accessToken"`
	SelectedProfile string `json:"selectedProfile"`
	ServerID        string `json:"serverId"`
}

// Join performs the session-join HTTPS POST proving account ownership.
// serverID, sharedSecret and serverPublicKeyDER are combined via
// ServerHash to produce the request's serverId field. A non-2xx
// response or a non-empty body on success is a ProtocolViolation.
func Join(ctx context.Context, client *http.Client, accessToken, profileUUID, serverID string, sharedSecret, serverPublicKeyDER []byte) error {
	hash := ServerHash(serverID, sharedSecret, serverPublicKeyDER)
	body, err := json.Marshal(sessionJoinRequest{
		AccessToken:     accessToken,
		SelectedProfile: profileUUID,
		ServerID:        hash,
	})
	if err != nil {
		return protoerr.Wrap(protoerr.KindIO, err, "marshal session-join request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, SessionJoinURL, bytes.NewReader(body))
	if err != nil {
		return protoerr.Wrap(protoerr.KindIO, err, "build session-join request")
	}
	req.Header.Set("Content-Type", "application/json")

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return protoerr.Wrap(protoerr.KindIO, err, "session-join request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return protoerr.Wrap(protoerr.KindIO, err, "read session-join response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return protoerr.New(protoerr.KindProtocolViolation, "session-join failed: status %d: %s", resp.StatusCode, string(respBody))
	}
	if len(bytes.TrimSpace(respBody)) != 0 {
		return protoerr.New(protoerr.KindProtocolViolation, "session-join returned unexpected body: %s", respBody)
	}
	return nil
}
