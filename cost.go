// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package rebal

import (
	"fmt"
)

// Cost returns the imbalance of load relative to capacity: the sum over all
// resources r of (capacity[r] - load[r])². Under- and over-allocation by the
// same amount cost the same. Both slices must be indexed by the same dense
// resource indices; an error wrapping [ErrCapacityMismatch] is returned if
// their lengths differ.
//
// The penalty is separable and strictly convex per resource, so moving a unit
// of load onto a resource below capacity always lowers that resource's term,
// and moving it past capacity raises it again.
func Cost(load, capacity []int) (int, error) {
	if len(load) != len(capacity) {
		return 0, fmt.Errorf("%w: %d loads for %d capacities", ErrCapacityMismatch, len(load), len(capacity))
	}
	return quadraticCost(load, capacity), nil
}

func quadraticCost(load, capacity []int) int {
	cost := 0
	for r := range load {
		d := capacity[r] - load[r]
		cost += d * d
	}
	return cost
}
