package lbalance

import (
	"fmt"
	"math/rand"

	"mcproto/registry"
)

// WeightedRandomBalancer selects instances probabilistically, scaling
// each instance's operator-assigned Weight by its remaining headroom
// (Capacity - PlayerCount). A backend nearing its player cap falls out
// of rotation gracefully instead of continuing to take an equal share
// of new logins right up until it rejects one.
//
// Best for: heterogeneous backends (e.g. some hosts have a higher
// player cap than others).
type WeightedRandomBalancer struct{}

func (b *WeightedRandomBalancer) Pick(instances []registry.Instance, requiredVersion string) (*registry.Instance, error) {
	candidates := eligible(instances, requiredVersion)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no eligible instances available")
	}

	weights := make([]int, len(candidates))
	total := 0
	for i, inst := range candidates {
		w := inst.Weight
		if w <= 0 {
			w = 1
		}
		if inst.Capacity > 0 {
			headroom := inst.Capacity - inst.PlayerCount
			if headroom < 1 {
				headroom = 1
			}
			w *= headroom
		}
		weights[i] = w
		total += w
	}

	r := rand.Intn(total)
	for i, w := range weights {
		r -= w
		if r < 0 {
			inst := candidates[i]
			return &inst, nil
		}
	}

	return nil, fmt.Errorf("unexpected error in weighted random selection")
}

func (b *WeightedRandomBalancer) Name() string {
	return "WeightedRandom"
}
