package handshake

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"net/http"
	"time"

	"mcproto/conn"
	"mcproto/mojangapi"
	"mcproto/packet"
	"mcproto/primitive"
	"mcproto/protoerr"
	"mcproto/state"
	"mcproto/yggdrasil"
)

// ServerOptions configures the server-side accept driver.
type ServerOptions struct {
	// PrivateKey and PublicKeyDER authenticate this server to the
	// client during the online flow; both are required when Online is
	// true.
	PrivateKey   *rsa.PrivateKey
	PublicKeyDER []byte

	// Online, when true, requires the client to complete a session-join
	// with Mojang (verified via HasJoined) before LoginSuccess. When
	// false, the server skips straight to LoginSuccess once LoginStart
	// arrives, the offline-mode flow.
	Online bool

	ServerID              string
	CompressionThreshold  *int32
	HTTPClient            *http.Client
	WorldEntityID         int32
	WorldGamemode         uint8
	WorldDimension        int32
	WorldDifficulty       uint8
	WorldMaxPlayers       uint8
	WorldLevelType        string
	WorldReducedDebugInfo bool
}

// Accept drives the server side of the login sequence on an already
// Adopt()-ed Connection: LoginStart, optional encryption + Mojang
// verification, optional SetCompression, LoginSuccess, then JoinGame.
// It returns the player's username and UUID on success.
func Accept(c *conn.Connection, opts ServerOptions) (username string, playerUUID primitive.UUID, err error) {
	deadline := time.Now().Add(WallClockBudget)

	var hs packet.Handshake
	if hs, err = waitFor[packet.Handshake](c, deadline); err != nil {
		return "", primitive.UUID{}, err
	}
	if next, ok := state.NextFromHandshake(hs.NextState); ok {
		c.SetState(next)
	} else {
		return "", primitive.UUID{}, protoerr.New(protoerr.KindProtocolViolation, "handshake requested unknown next state %d", hs.NextState)
	}

	ls, err := waitFor[packet.LoginStart](c, deadline)
	if err != nil {
		return "", primitive.UUID{}, err
	}
	username = ls.Username

	if opts.Online {
		playerUUID, err = acceptOnline(c, opts, username, deadline)
		if err != nil {
			return "", primitive.UUID{}, err
		}
	}

	if opts.CompressionThreshold != nil {
		if _, err := c.Send(packet.SetCompression{Threshold: *opts.CompressionThreshold}); err != nil {
			return "", primitive.UUID{}, err
		}
		if err := c.EnableCompression(*opts.CompressionThreshold); err != nil {
			return "", primitive.UUID{}, err
		}
	}

	if _, err := c.Send(packet.LoginSuccess{UUID: playerUUID, Username: username}); err != nil {
		return "", primitive.UUID{}, err
	}
	c.SetState(state.Play)

	if _, err := c.Send(packet.JoinGame{
		EntityID:         opts.WorldEntityID,
		Gamemode:         opts.WorldGamemode,
		Dimension:        opts.WorldDimension,
		Difficulty:       opts.WorldDifficulty,
		MaxPlayers:       opts.WorldMaxPlayers,
		LevelType:        opts.WorldLevelType,
		ReducedDebugInfo: opts.WorldReducedDebugInfo,
	}); err != nil {
		return "", primitive.UUID{}, err
	}

	return username, playerUUID, nil
}

func acceptOnline(c *conn.Connection, opts ServerOptions, username string, deadline time.Time) (primitive.UUID, error) {
	if opts.PrivateKey == nil || opts.PublicKeyDER == nil {
		return primitive.UUID{}, protoerr.New(protoerr.KindInvalidOutbound, "online mode requires a server key pair")
	}

	verifyToken := make([]byte, 4)
	if _, err := rand.Read(verifyToken); err != nil {
		return primitive.UUID{}, protoerr.Wrap(protoerr.KindCrypto, err, "generate verify token")
	}
	if _, err := c.Send(packet.EncryptionRequest{ServerID: opts.ServerID, PublicKey: opts.PublicKeyDER, VerifyToken: verifyToken}); err != nil {
		return primitive.UUID{}, err
	}

	resp, err := waitFor[packet.EncryptionResponse](c, deadline)
	if err != nil {
		return primitive.UUID{}, err
	}

	sharedSecret, err := rsa.DecryptPKCS1v15(rand.Reader, opts.PrivateKey, resp.EncryptedSharedSecret)
	if err != nil {
		return primitive.UUID{}, protoerr.Wrap(protoerr.KindCrypto, err, "decrypt shared secret")
	}
	gotToken, err := rsa.DecryptPKCS1v15(rand.Reader, opts.PrivateKey, resp.EncryptedVerifyToken)
	if err != nil {
		return primitive.UUID{}, protoerr.Wrap(protoerr.KindCrypto, err, "decrypt verify token")
	}
	if !bytes.Equal(gotToken, verifyToken) {
		return primitive.UUID{}, protoerr.New(protoerr.KindProtocolViolation, "verify token mismatch")
	}

	serverHash := yggdrasil.ServerHash(opts.ServerID, sharedSecret, opts.PublicKeyDER)
	ctx, cancel := context.WithTimeout(context.Background(), time.Until(deadline))
	defer cancel()
	profile, err := mojangapi.HasJoined(ctx, opts.HTTPClient, username, serverHash)
	if err != nil {
		return primitive.UUID{}, fmt.Errorf("session verification failed for %s: %w", username, err)
	}

	if err := c.EnableEncryption(sharedSecret); err != nil {
		return primitive.UUID{}, err
	}

	return parseUndashedUUID(profile.ID)
}

// parseUndashedUUID decodes the 32-character undashed hex UUID string
// the Mojang profile API returns into the wire UUID representation.
func parseUndashedUUID(s string) (primitive.UUID, error) {
	if len(s) != 32 {
		return primitive.UUID{}, protoerr.New(protoerr.KindMalformed, "profile id has wrong length %d", len(s))
	}
	var most, least uint64
	if _, err := fmt.Sscanf(s[:16], "%016x", &most); err != nil {
		return primitive.UUID{}, protoerr.Wrap(protoerr.KindMalformed, err, "parse profile id high half")
	}
	if _, err := fmt.Sscanf(s[16:], "%016x", &least); err != nil {
		return primitive.UUID{}, protoerr.Wrap(protoerr.KindMalformed, err, "parse profile id low half")
	}
	return primitive.UUID{Most: most, Least: least}, nil
}

// waitFor polls c until a packet of type T arrives or deadline passes.
// Any other packet type received in the meantime is silently dropped:
// the login sequence up to JoinGame is strictly ordered, so an
// out-of-sequence packet here is not this driver's concern.
func waitFor[T packet.Packet](c *conn.Connection, deadline time.Time) (T, error) {
	var zero T
	for time.Now().Before(deadline) {
		if err := c.Ingest(); err != nil {
			return zero, err
		}
		p, err := c.NextPacket()
		if err != nil {
			return zero, err
		}
		if p == nil {
			time.Sleep(pollInterval)
			continue
		}
		if v, ok := p.(T); ok {
			return v, nil
		}
	}
	return zero, protoerr.New(protoerr.KindTimeout, "timed out waiting for %T", zero)
}
