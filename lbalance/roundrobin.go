package lbalance

import (
	"fmt"
	"sync/atomic"

	"mcproto/registry"
)

// RoundRobinBalancer distributes logins evenly across all eligible
// instances in order. Uses an atomic counter for lock-free, goroutine-safe
// operation.
//
// Best for: equal-capacity backends running the same world.
type RoundRobinBalancer struct {
	counter int64 // Atomic counter, incremented on each Pick()
}

// Pick selects the next instance in round-robin order, after dropping
// version-incompatible or full instances from consideration.
func (b *RoundRobinBalancer) Pick(instances []registry.Instance, requiredVersion string) (*registry.Instance, error) {
	candidates := eligible(instances, requiredVersion)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no eligible instances available")
	}
	index := atomic.AddInt64(&b.counter, 1) % int64(len(candidates))
	inst := candidates[index]
	return &inst, nil
}

func (b *RoundRobinBalancer) Name() string {
	return "RoundRobin"
}
