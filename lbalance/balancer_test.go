package lbalance

import (
	"fmt"
	"testing"

	"mcproto/registry"
)

var testInstances = []registry.Instance{
	{Addr: ":25001", Weight: 10, Version: "316", Capacity: 20, PlayerCount: 0},
	{Addr: ":25002", Weight: 5, Version: "316", Capacity: 20, PlayerCount: 0},
	{Addr: ":25003", Weight: 10, Version: "316", Capacity: 20, PlayerCount: 0},
}

func TestRoundRobin(t *testing.T) {
	b := &RoundRobinBalancer{}

	results := make([]string, 3)
	for i := 0; i < 3; i++ {
		inst, err := b.Pick(testInstances, "")
		if err != nil {
			t.Fatal(err)
		}
		results[i] = inst.Addr
	}

	inst, _ := b.Pick(testInstances, "")
	if inst.Addr != results[0] {
		t.Fatalf("expect wrap around to %s, got %s", results[0], inst.Addr)
	}
}

func TestRoundRobinEmpty(t *testing.T) {
	b := &RoundRobinBalancer{}
	_, err := b.Pick([]registry.Instance{}, "")
	if err == nil {
		t.Fatal("expect error for empty instances")
	}
}

func TestRoundRobinFiltersIncompatibleVersion(t *testing.T) {
	b := &RoundRobinBalancer{}
	mixed := []registry.Instance{
		{Addr: ":25001", Version: "47"},
		{Addr: ":25002", Version: "316"},
	}
	for i := 0; i < 5; i++ {
		inst, err := b.Pick(mixed, "316")
		if err != nil {
			t.Fatal(err)
		}
		if inst.Addr != ":25002" {
			t.Fatalf("expected only the version-316 instance, got %s", inst.Addr)
		}
	}
}

func TestRoundRobinFiltersFullInstances(t *testing.T) {
	b := &RoundRobinBalancer{}
	full := []registry.Instance{
		{Addr: ":25001", Capacity: 1, PlayerCount: 1},
		{Addr: ":25002", Capacity: 1, PlayerCount: 0},
	}
	for i := 0; i < 5; i++ {
		inst, err := b.Pick(full, "")
		if err != nil {
			t.Fatal(err)
		}
		if inst.Addr != ":25002" {
			t.Fatalf("expected only the non-full instance, got %s", inst.Addr)
		}
	}
}

func TestWeightedRandom(t *testing.T) {
	b := &WeightedRandomBalancer{}

	counts := map[string]int{}
	n := 10000
	for i := 0; i < n; i++ {
		inst, err := b.Pick(testInstances, "")
		if err != nil {
			t.Fatal(err)
		}
		counts[inst.Addr]++
	}

	// Weight ratio is 10:5:10, so :25001 and :25003 should be ~2x of :25002
	ratio := float64(counts[":25001"]) / float64(counts[":25002"])
	if ratio < 1.5 || ratio > 2.5 {
		t.Fatalf("weight ratio :25001/:25002 = %.2f, expect ~2.0", ratio)
	}
}

func TestWeightedRandomPrefersMoreHeadroom(t *testing.T) {
	b := &WeightedRandomBalancer{}
	instances := []registry.Instance{
		{Addr: ":25001", Weight: 10, Capacity: 100, PlayerCount: 95}, // headroom 5
		{Addr: ":25002", Weight: 10, Capacity: 100, PlayerCount: 0},  // headroom 100
	}

	counts := map[string]int{}
	n := 10000
	for i := 0; i < n; i++ {
		inst, err := b.Pick(instances, "")
		if err != nil {
			t.Fatal(err)
		}
		counts[inst.Addr]++
	}
	if counts[":25002"] <= counts[":25001"] {
		t.Fatalf("expected the instance with more headroom to be picked more often, got %v", counts)
	}
}

func TestConsistentHash(t *testing.T) {
	b := NewConsistentHashBalancer()
	for i := range testInstances {
		b.Add(&testInstances[i])
	}

	// Same player UUID should always map to the same backend.
	inst1, _ := b.Pick("550e8400-e29b-41d4-a716-446655440000")
	inst2, _ := b.Pick("550e8400-e29b-41d4-a716-446655440000")
	if inst1.Addr != inst2.Addr {
		t.Fatalf("same key mapped to different instances: %s vs %s", inst1.Addr, inst2.Addr)
	}

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		inst, _ := b.Pick(fmt.Sprintf("player-%d", i))
		seen[inst.Addr] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expect at least 2 different instances, got %d", len(seen))
	}
}

func TestConsistentHashEmptyRing(t *testing.T) {
	b := NewConsistentHashBalancer()
	if _, err := b.Pick("anything"); err == nil {
		t.Fatal("expect error picking from an empty ring")
	}
}

func TestConsistentHashRemove(t *testing.T) {
	b := NewConsistentHashBalancer()
	for i := range testInstances {
		b.Add(&testInstances[i])
	}

	b.Remove(":25001")
	for i := 0; i < 100; i++ {
		inst, err := b.Pick(fmt.Sprintf("player-%d", i))
		if err != nil {
			t.Fatal(err)
		}
		if inst.Addr == ":25001" {
			t.Fatalf("removed instance %s was still picked", inst.Addr)
		}
	}
}
