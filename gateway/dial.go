package gateway

import (
	"fmt"
	"net"
	"strconv"

	"mcproto/conn"
	"mcproto/lbalance"
	"mcproto/packet"
	"mcproto/registry"
	"mcproto/state"
)

// Dialer resolves a service name to a backend Instance and opens a
// Connection to it, mirroring the discover-pick-dial flow of a
// multiplexed RPC client's Call, retargeted from invoking a remote
// method to opening a backend game connection.
type Dialer struct {
	registry registry.Registry
	balancer lbalance.Balancer
	opts     Options
}

// NewDialer builds a Dialer from a Registry and Balancer.
func NewDialer(reg registry.Registry, bal lbalance.Balancer, opts Options) *Dialer {
	return &Dialer{registry: reg, balancer: bal, opts: opts}
}

// Dial discovers the instances registered for serviceName, picks one
// via the configured Balancer, and opens a Connection to it in
// Handshake state, outbound Serverbound / inbound Clientbound — the
// gateway's view of a backend, the mirror image of Listener's client
// Connections.
func (d *Dialer) Dial(serviceName string) (*conn.Connection, error) {
	instances, err := d.registry.Discover(serviceName)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", serviceName, err)
	}
	if len(instances) == 0 {
		return nil, fmt.Errorf("no instances available for %s", serviceName)
	}

	instance, err := d.balancer.Pick(instances, fmt.Sprint(packet.ProtocolVersion))
	if err != nil {
		return nil, fmt.Errorf("pick instance for %s: %w", serviceName, err)
	}

	host, portStr, err := net.SplitHostPort(instance.Addr)
	if err != nil {
		return nil, fmt.Errorf("split instance address %q: %w", instance.Addr, err)
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("parse instance port %q: %w", portStr, err)
	}

	return conn.OpenTCP(host, uint16(port), state.Serverbound, state.Clientbound, conn.Options{
		Limiter: d.opts.Limiter,
		Logger:  d.opts.Logger,
	})
}
