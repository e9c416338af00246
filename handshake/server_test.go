package handshake

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"mcproto/conn"
	"mcproto/packet"
	"mcproto/state"
)

func TestAcceptOfflineSuccess(t *testing.T) {
	ln, host, port := listenLocal(t)
	defer ln.Close()

	result := make(chan error, 1)
	go func() {
		nc, err := ln.Accept()
		if err != nil {
			result <- err
			return
		}
		s := conn.Adopt(nc, state.Clientbound, state.Serverbound, conn.Options{})
		defer s.Close()
		username, _, err := Accept(s, ServerOptions{WorldGamemode: 0, WorldDimension: 0, WorldLevelType: "default"})
		if err != nil {
			result <- err
			return
		}
		if username != "tester" {
			result <- fmt.Errorf("unexpected username %q", username)
			return
		}
		result <- nil
	}()

	c, err := conn.OpenTCP(host, port, state.Serverbound, state.Clientbound, conn.Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, err := c.Send(packet.Handshake{ProtocolVersion: packet.ProtocolVersion, ServerAddress: host, ServerPort: port, NextState: 2}); err != nil {
		t.Fatal(err)
	}
	c.SetState(state.Login)
	if _, err := c.Send(packet.LoginStart{Username: "tester"}); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	var gotJoinGame bool
	for time.Now().Before(deadline) && !gotJoinGame {
		if err := c.Ingest(); err != nil {
			t.Fatal(err)
		}
		p, err := c.NextPacket()
		if err != nil {
			t.Fatal(err)
		}
		if p == nil {
			time.Sleep(pollInterval)
			continue
		}
		switch p.(type) {
		case packet.LoginSuccess:
			c.SetState(state.Play)
		case packet.JoinGame:
			gotJoinGame = true
		}
	}
	if !gotJoinGame {
		t.Fatal("never received JoinGame")
	}

	select {
	case err := <-result:
		if err != nil {
			t.Fatalf("Accept: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server goroutine never finished")
	}
}

func TestAcceptOnlineVerifiesSession(t *testing.T) {
	ln, host, port := listenLocal(t)
	defer ln.Close()

	key, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatal(err)
	}

	httpClient := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       httpBody(`{"id":"4566e69fc90748ee8d71d7ba5aa00d20","name":"tester","properties":[]}`),
			Header:     make(http.Header),
		}, nil
	})}

	result := make(chan error, 1)
	go func() {
		nc, err := ln.Accept()
		if err != nil {
			result <- err
			return
		}
		s := conn.Adopt(nc, state.Clientbound, state.Serverbound, conn.Options{})
		defer s.Close()
		_, uuid, err := Accept(s, ServerOptions{
			Online:       true,
			PrivateKey:   key,
			PublicKeyDER: der,
			HTTPClient:   httpClient,
			WorldLevelType: "default",
		})
		if err != nil {
			result <- err
			return
		}
		if uuid.Most == 0 && uuid.Least == 0 {
			result <- fmt.Errorf("expected nonzero uuid")
			return
		}
		result <- nil
	}()

	c, err := conn.OpenTCP(host, port, state.Serverbound, state.Clientbound, conn.Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, err := c.Send(packet.Handshake{ProtocolVersion: packet.ProtocolVersion, ServerAddress: host, ServerPort: port, NextState: 2}); err != nil {
		t.Fatal(err)
	}
	c.SetState(state.Login)
	if _, err := c.Send(packet.LoginStart{Username: "tester"}); err != nil {
		t.Fatal(err)
	}

	er := serverPoll(t, c, 5*time.Second, func(p packet.Packet) bool {
		_, ok := p.(packet.EncryptionRequest)
		return ok
	}).(packet.EncryptionRequest)

	secret := make([]byte, 16)
	if _, err := rand.Read(secret); err != nil {
		t.Fatal(err)
	}
	pub, err := x509.ParsePKIXPublicKey(er.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	rsaPub := pub.(*rsa.PublicKey)
	encSecret, err := rsa.EncryptPKCS1v15(rand.Reader, rsaPub, secret)
	if err != nil {
		t.Fatal(err)
	}
	encToken, err := rsa.EncryptPKCS1v15(rand.Reader, rsaPub, er.VerifyToken)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Send(packet.EncryptionResponse{EncryptedSharedSecret: encSecret, EncryptedVerifyToken: encToken}); err != nil {
		t.Fatal(err)
	}
	if err := c.EnableEncryption(secret); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	var gotJoinGame bool
	for time.Now().Before(deadline) && !gotJoinGame {
		if err := c.Ingest(); err != nil {
			t.Fatal(err)
		}
		p, err := c.NextPacket()
		if err != nil {
			t.Fatal(err)
		}
		if p == nil {
			time.Sleep(pollInterval)
			continue
		}
		switch p.(type) {
		case packet.LoginSuccess:
			c.SetState(state.Play)
		case packet.JoinGame:
			gotJoinGame = true
		}
	}
	if !gotJoinGame {
		t.Fatal("never received JoinGame")
	}

	select {
	case err := <-result:
		if err != nil {
			t.Fatalf("Accept: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server goroutine never finished")
	}
}

func httpBody(s string) io.ReadCloser { return io.NopCloser(strings.NewReader(s)) }
