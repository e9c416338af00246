// Command mcserver runs a standalone connection engine: it listens for
// client sockets and drives the server-side login sequence on each one.
// Of the loaded mcconfig.Config it uses the rate limit (through
// GatewayOptions) and the compression threshold; the timeouts,
// auto_handle, hide_handled and capture settings are not used. Online
// mode and the server ID come from the -online and -server-id flags,
// and the world constants sent in JoinGame are fixed in this file.
package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"flag"
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"

	"mcproto/conn"
	"mcproto/diagnostics"
	"mcproto/gateway"
	"mcproto/handshake"
	"mcproto/mcconfig"
)

func main() {
	configPath := flag.String("config", "mcserver.yaml", "path to the YAML configuration file")
	addr := flag.String("addr", ":25565", "address to listen on")
	online := flag.Bool("online", false, "require Yggdrasil session verification before LoginSuccess")
	serverID := flag.String("server-id", "", "server ID sent in EncryptionRequest (empty string is valid)")
	flag.Parse()

	logger := diagnostics.New("mcserver")
	defer logger.Sync()

	cfg, err := mcconfig.Load(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	var key *rsa.PrivateKey
	var publicKeyDER []byte
	if *online {
		key, err = rsa.GenerateKey(rand.Reader, 1024)
		if err != nil {
			logger.Fatal("generate server key pair", zap.Error(err))
		}
		publicKeyDER, err = x509.MarshalPKIXPublicKey(&key.PublicKey)
		if err != nil {
			logger.Fatal("marshal server public key", zap.Error(err))
		}
	}

	ln, err := gateway.Listen("tcp", *addr, cfg.GatewayOptions(logger))
	if err != nil {
		logger.Fatal("listen", zap.Error(err))
	}
	logger.Info("listening", zap.String("addr", ln.Addr().String()))

	var sessions atomic.Int64
	serverOpts := handshake.ServerOptions{
		PrivateKey:           key,
		PublicKeyDER:         publicKeyDER,
		Online:               *online,
		ServerID:             *serverID,
		CompressionThreshold: cfg.CompressionThresholdPtr(),
		HTTPClient:           http.DefaultClient,
		WorldGamemode:        0,
		WorldDimension:       0,
		WorldDifficulty:      2,
		WorldMaxPlayers:      20,
		WorldLevelType:       "default",
	}

	if err := ln.Serve(func(c *conn.Connection) {
		serverOpts.WorldEntityID = int32(sessions.Add(1))
		username, playerUUID, err := handshake.Accept(c, serverOpts)
		if err != nil {
			logger.Warn("login failed", zap.Error(err))
			return
		}
		logger.Info("player joined", zap.String("username", username), zap.Uint64("uuid_most", playerUUID.Most))
	}); err != nil {
		logger.Fatal("serve", zap.Error(err))
	}
}
