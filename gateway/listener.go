// Package gateway composes registry, lbalance and conn into the two
// halves of a multi-backend deployment: Listener accepts client
// sockets and hands each off to a caller-supplied Handler, and Dialer
// discovers, picks and dials a backend Instance.
package gateway

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"go.uber.org/zap"

	"mcproto/conn"
	"mcproto/state"
)

// Options configures a Listener or Dialer beyond its address/backend.
type Options struct {
	// Limiter bounds outbound packet rate on every accepted/dialed
	// Connection; nil disables limiting.
	Limiter *rate.Limiter
	// Logger receives lifecycle events; nil installs a no-op logger.
	Logger *zap.Logger
}

// Handler processes one accepted client Connection. The Connection is
// closed automatically when Handler returns.
type Handler func(c *conn.Connection)

// Listener accepts client sockets and adapts each into a Connection in
// Handshake state, outbound Clientbound / inbound Serverbound — the
// gateway's view of a client, mirroring the Connection direction pair
// a real Minecraft server holds.
type Listener struct {
	listener net.Listener
	wg       sync.WaitGroup
	shutdown atomic.Bool
	opts     Options
}

// Listen opens a TCP listener on address (network is normally "tcp").
func Listen(network, address string, opts Options) (*Listener, error) {
	ln, err := net.Listen(network, address)
	if err != nil {
		return nil, fmt.Errorf("listen %s %s: %w", network, address, err)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Listener{listener: ln, opts: opts}, nil
}

// Addr reports the listener's bound address.
func (l *Listener) Addr() net.Addr { return l.listener.Addr() }

// Serve runs the accept loop, handing each new socket to handle on its
// own goroutine. It returns nil when Shutdown closed the listener, or
// the Accept error otherwise.
func (l *Listener) Serve(handle Handler) error {
	for {
		nc, err := l.listener.Accept()
		if err != nil {
			if l.shutdown.Load() {
				return nil
			}
			return err
		}
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			c := conn.Adopt(nc, state.Clientbound, state.Serverbound, conn.Options{Limiter: l.opts.Limiter, Logger: l.opts.Logger})
			defer c.Close()
			handle(c)
		}()
	}
}

// Shutdown stops accepting new connections and waits up to timeout for
// in-flight Handler invocations to return.
func (l *Listener) Shutdown(timeout time.Duration) error {
	l.shutdown.Store(true)
	l.listener.Close()

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("timeout waiting for in-flight connections to finish")
	}
}
