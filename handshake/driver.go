// Package handshake drives the login sequence on top of a Connection:
// the unauthenticated flow for offline-mode servers, and the
// authenticated flow that additionally performs the Yggdrasil
// session-join and enables encryption.
package handshake

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"go.uber.org/zap"

	"mcproto/conn"
	"mcproto/packet"
	"mcproto/protoerr"
	"mcproto/state"
	"mcproto/yggdrasil"
)

// WallClockBudget is the overall time allowed for a login flow, from the
// initial dial to PlayerAbilities.
const WallClockBudget = 30 * time.Second

const pollInterval = 10 * time.Millisecond

// Options configures either handshake flow.
type Options struct {
	Host string
	Port uint16

	Username string

	// AccessToken and ProfileUUID are required by Authenticated and
	// ignored by Unauthenticated.
	AccessToken string
	ProfileUUID string

	Limiter    *rate.Limiter
	Logger     *zap.Logger
	HTTPClient *http.Client
}

// Unauthenticated drives the offline-mode login flow described in
// §4.6: handshake, LoginStart, then a poll loop ending in
// PlayerAbilities. EncryptionRequest during this flow is a protocol
// violation.
func Unauthenticated(opts Options) (*conn.Connection, error) {
	deadline := time.Now().Add(WallClockBudget)
	c, err := dialAndStartLogin(opts)
	if err != nil {
		return nil, err
	}

	for time.Now().Before(deadline) {
		p, err := pollOnce(c)
		if err != nil {
			c.Close()
			return nil, err
		}
		if p == nil {
			time.Sleep(pollInterval)
			continue
		}
		switch v := p.(type) {
		case packet.LoginDisconnect:
			c.Close()
			return nil, protoerr.New(protoerr.KindProtocolViolation, "login disconnect: %s", v.Reason)
		case packet.EncryptionRequest:
			c.Close()
			return nil, protoerr.New(protoerr.KindProtocolViolation, "offline server requested encryption")
		case packet.SetCompression:
			if err := c.EnableCompression(v.Threshold); err != nil {
				c.Close()
				return nil, err
			}
		case packet.LoginSuccess:
			c.SetState(state.Play)
		case packet.KeepAliveClientbound:
			if _, err := c.Send(packet.KeepAliveServerbound{ID: v.ID}); err != nil {
				c.Close()
				return nil, err
			}
		case packet.PlayerAbilities:
			return c, nil
		}
	}
	c.Close()
	return nil, protoerr.New(protoerr.KindTimeout, "unauthenticated handshake exceeded %s budget", WallClockBudget)
}

// loginPhase is the explicit state machine the authenticated flow runs
// through, replacing the source's loop-label-and-break control flow
// with a single transition function per phase.
type loginPhase int

const (
	phaseExpectEncryptionRequest loginPhase = iota
	phaseExpectPlayerAbilities
)

// Authenticated drives the online-mode login flow: handshake,
// LoginStart, wait for EncryptionRequest, perform the Yggdrasil
// session-join, enable encryption, then continue until PlayerAbilities.
// LoginSuccess arriving before encryption is enabled is a protocol
// violation — the server should have required it.
func Authenticated(opts Options) (*conn.Connection, error) {
	deadline := time.Now().Add(WallClockBudget)
	c, err := dialAndStartLogin(opts)
	if err != nil {
		return nil, err
	}

	phase := phaseExpectEncryptionRequest
	for time.Now().Before(deadline) {
		p, err := pollOnce(c)
		if err != nil {
			c.Close()
			return nil, err
		}
		if p == nil {
			time.Sleep(pollInterval)
			continue
		}
		if d, ok := p.(packet.LoginDisconnect); ok {
			c.Close()
			return nil, protoerr.New(protoerr.KindProtocolViolation, "login disconnect: %s", d.Reason)
		}

		switch phase {
		case phaseExpectEncryptionRequest:
			switch v := p.(type) {
			case packet.SetCompression:
				if err := c.EnableCompression(v.Threshold); err != nil {
					c.Close()
					return nil, err
				}
			case packet.LoginSuccess:
				c.Close()
				return nil, protoerr.New(protoerr.KindProtocolViolation, "logged in unauthenticated: server never sent EncryptionRequest")
			case packet.EncryptionRequest:
				if err := completeEncryption(c, opts, v); err != nil {
					c.Close()
					return nil, err
				}
				phase = phaseExpectPlayerAbilities
			}
		case phaseExpectPlayerAbilities:
			switch v := p.(type) {
			case packet.SetCompression:
				if err := c.EnableCompression(v.Threshold); err != nil {
					c.Close()
					return nil, err
				}
			case packet.LoginSuccess:
				c.SetState(state.Play)
			case packet.KeepAliveClientbound:
				if _, err := c.Send(packet.KeepAliveServerbound{ID: v.ID}); err != nil {
					c.Close()
					return nil, err
				}
			case packet.PlayerAbilities:
				return c, nil
			}
		}
	}
	c.Close()
	return nil, protoerr.New(protoerr.KindTimeout, "authenticated handshake exceeded %s budget", WallClockBudget)
}

func completeEncryption(c *conn.Connection, opts Options, req packet.EncryptionRequest) error {
	secret, err := yggdrasil.NewSharedSecret()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), WallClockBudget)
	defer cancel()
	if err := yggdrasil.Join(ctx, opts.HTTPClient, opts.AccessToken, opts.ProfileUUID, req.ServerID, secret, req.PublicKey); err != nil {
		return err
	}

	encSecret, err := yggdrasil.EncryptPKCS1v15(req.PublicKey, secret)
	if err != nil {
		return err
	}
	encToken, err := yggdrasil.EncryptPKCS1v15(req.PublicKey, req.VerifyToken)
	if err != nil {
		return err
	}
	if _, err := c.Send(packet.EncryptionResponse{EncryptedSharedSecret: encSecret, EncryptedVerifyToken: encToken}); err != nil {
		return err
	}
	return c.EnableEncryption(secret)
}

func dialAndStartLogin(opts Options) (*conn.Connection, error) {
	c, err := conn.OpenTCP(opts.Host, opts.Port, state.Serverbound, state.Clientbound, conn.Options{Limiter: opts.Limiter, Logger: opts.Logger})
	if err != nil {
		return nil, err
	}
	if _, err := c.Send(packet.Handshake{
		ProtocolVersion: packet.ProtocolVersion,
		ServerAddress:   opts.Host,
		ServerPort:      opts.Port,
		NextState:       2,
	}); err != nil {
		c.Close()
		return nil, err
	}
	c.SetState(state.Login)
	if _, err := c.Send(packet.LoginStart{Username: opts.Username}); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func pollOnce(c *conn.Connection) (packet.Packet, error) {
	if err := c.Ingest(); err != nil {
		return nil, err
	}
	return c.NextPacket()
}
