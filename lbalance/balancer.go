// Package lbalance provides load balancing strategies for picking a
// backend Minecraft server instance out of a Registry's Discover
// result.
//
// Three strategies are implemented:
//   - RoundRobin:      stateless backends, equal capacity
//   - WeightedRandom:  heterogeneous backends (different player caps)
//   - ConsistentHash:  sticky routing by player UUID, so a player who
//     disconnects and reconnects within the hash ring's lifetime lands
//     back on the same backend
package lbalance

import "mcproto/registry"

// Balancer is the interface for load balancing strategies. The gateway
// calls Pick() once per incoming login, before dialing a backend.
type Balancer interface {
	// Pick selects one instance from the available list. requiredVersion,
	// when non-empty, excludes any instance whose reported protocol
	// version doesn't match — a login should never land on a backend it
	// can't actually speak the wire format with. Called on every login
	// — must be goroutine-safe.
	Pick(instances []registry.Instance, requiredVersion string) (*registry.Instance, error)

	// Name returns the strategy name (for logging/diagnostics).
	Name() string
}

// eligible filters instances down to the ones a strategy is allowed to
// pick from: version-compatible (when requiredVersion is set) and not
// already full. Every Balancer implementation runs this before applying
// its own selection logic.
func eligible(instances []registry.Instance, requiredVersion string) []registry.Instance {
	out := make([]registry.Instance, 0, len(instances))
	for _, inst := range instances {
		if requiredVersion != "" && inst.Version != requiredVersion {
			continue
		}
		if !inst.HasRoom() {
			continue
		}
		out = append(out, inst)
	}
	return out
}
