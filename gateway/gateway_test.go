package gateway

import (
	"testing"
	"time"

	"mcproto/conn"
	"mcproto/lbalance"
	"mcproto/packet"
	"mcproto/registry"
)

func TestListenerServeAndShutdown(t *testing.T) {
	ln, err := Listen("tcp", "127.0.0.1:0", Options{})
	if err != nil {
		t.Fatal(err)
	}

	handled := make(chan packet.Packet, 1)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- ln.Serve(func(c *conn.Connection) {
			deadline := time.Now().Add(2 * time.Second)
			for time.Now().Before(deadline) {
				if err := c.Ingest(); err != nil {
					return
				}
				p, err := c.NextPacket()
				if err != nil {
					return
				}
				if p != nil {
					handled <- p
					return
				}
				time.Sleep(time.Millisecond)
			}
		})
	}()

	addr := ln.Addr().String()
	dialer := NewDialer(registry.NewStaticRegistry(map[string][]registry.Instance{
		"backend": {{Addr: addr, Weight: 1, Version: "316"}},
	}), &lbalance.RoundRobinBalancer{}, Options{})

	c, err := dialer.Dial("backend")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	if _, err := c.Send(packet.Handshake{ProtocolVersion: packet.ProtocolVersion, ServerAddress: "127.0.0.1", ServerPort: 25565, NextState: 1}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	select {
	case p := <-handled:
		if _, ok := p.(packet.Handshake); !ok {
			t.Fatalf("expected Handshake, got %T", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for handler to observe the handshake")
	}

	if err := ln.Shutdown(2 * time.Second); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := <-serveErr; err != nil {
		t.Fatalf("Serve returned an error after shutdown: %v", err)
	}
}

func TestDialerNoInstances(t *testing.T) {
	dialer := NewDialer(registry.NewStaticRegistry(nil), &lbalance.RoundRobinBalancer{}, Options{})
	if _, err := dialer.Dial("missing"); err == nil {
		t.Fatal("expected error dialing a service with no registered instances")
	}
}
