package lbalance

import (
	"fmt"
	"hash/crc32"
	"sort"

	"mcproto/registry"
)

// ConsistentHashBalancer maps a key — a player UUID string — to a
// backend instance using a hash ring. The same key always maps to the
// same instance (until the ring changes), so a player who disconnects
// and reconnects lands back on the backend holding their entity state.
//
// Virtual nodes: each real instance is mapped to N virtual nodes on the
// ring. Without virtual nodes, a handful of instances might cluster
// together on the ring, causing uneven load distribution. 100 virtual
// nodes per instance keeps the distribution close to uniform.
type ConsistentHashBalancer struct {
	replicas int                           // Virtual nodes per real instance
	ring     []uint32                      // Sorted hash values on the ring
	nodes    map[uint32]*registry.Instance // Hash value -> instance mapping
}

// NewConsistentHashBalancer creates a hash ring with 100 virtual nodes per instance.
func NewConsistentHashBalancer() *ConsistentHashBalancer {
	return &ConsistentHashBalancer{
		replicas: 100,
		ring:     []uint32{},
		nodes:    make(map[uint32]*registry.Instance),
	}
}

// Add places an instance onto the hash ring with N virtual nodes.
func (b *ConsistentHashBalancer) Add(instance *registry.Instance) {
	for i := 0; i < b.replicas; i++ {
		key := fmt.Sprintf("%s#%d", instance.Addr, i)
		hash := crc32.ChecksumIEEE([]byte(key))
		b.ring = append(b.ring, hash)
		b.nodes[hash] = instance
	}
	sort.Slice(b.ring, func(i, j int) bool {
		return b.ring[i] < b.ring[j]
	})
}

// Remove ejects every virtual node belonging to addr from the ring. A
// HealthChecker that deregisters a backend from the Registry has no
// other way to pull it out of an already-built ring, since the ring
// doesn't re-derive itself from Discover on every Pick.
func (b *ConsistentHashBalancer) Remove(addr string) {
	kept := b.ring[:0]
	for _, hash := range b.ring {
		if inst, ok := b.nodes[hash]; ok && inst.Addr == addr {
			delete(b.nodes, hash)
			continue
		}
		kept = append(kept, hash)
	}
	b.ring = kept
}

// Pick finds the instance responsible for the given key (a player UUID
// string). It hashes the key, then finds the first node at or past
// that hash on the ring, wrapping around to the first node if the hash
// exceeds every node on the ring.
//
// Pick takes a string key rather than an instance list: consistent
// hashing is key-based and does not implement the Balancer interface
// directly, since the ring must be built with Add before any Pick.
func (b *ConsistentHashBalancer) Pick(key string) (*registry.Instance, error) {
	if len(b.ring) == 0 {
		return nil, fmt.Errorf("no instances on the ring")
	}
	hash := crc32.ChecksumIEEE([]byte(key))

	idx := sort.Search(len(b.ring), func(i int) bool {
		return b.ring[i] >= hash
	})
	if idx == len(b.ring) {
		idx = 0
	}

	return b.nodes[b.ring[idx]], nil
}

func (b *ConsistentHashBalancer) Name() string {
	return "ConsistentHash"
}
