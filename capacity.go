// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package rebal

import (
	"fmt"
	"slices"
)

// Capacities is the fixed target load of each resource in a [Space]. It is a
// value type whose contents cannot be changed after construction, so the same
// Capacities may back any number of rebalancing passes, including concurrent
// ones.
//
// Capacities are expected to be positive, but zero and negative values are
// accepted: they simply make every assignment to that resource more costly.
type Capacities struct {
	space *Space
	caps  []int
}

// NewCapacities binds caps to space, caps[i] being the capacity of the
// resource at dense index i. It returns an error wrapping
// [ErrCapacityMismatch] unless there is exactly one value per resource.
func NewCapacities(space *Space, caps ...int) (Capacities, error) {
	if space == nil {
		return Capacities{}, fmt.Errorf("%w: nil space", ErrInvalidSpace)
	}
	if len(caps) != space.Len() {
		return Capacities{}, fmt.Errorf("%w: %d capacities for %d resources %v",
			ErrCapacityMismatch, len(caps), space.Len(), space)
	}
	return Capacities{
		space: space,
		caps:  slices.Clone(caps),
	}, nil
}

// CapacitiesByID is like [NewCapacities] but takes capacities keyed by
// external id. Every resource of space must appear in caps and caps must not
// name any other resource.
func CapacitiesByID(space *Space, caps map[ResourceID]int) (Capacities, error) {
	if space == nil {
		return Capacities{}, fmt.Errorf("%w: nil space", ErrInvalidSpace)
	}
	dense := make([]int, space.Len())
	for id, c := range caps {
		i, err := space.Index(id)
		if err != nil {
			return Capacities{}, fmt.Errorf("%w: capacity given for resource %d not in %v",
				ErrCapacityMismatch, id, space)
		}
		dense[i] = c
	}
	for i, id := range space.ids {
		if _, ok := caps[id]; !ok {
			return Capacities{}, fmt.Errorf("%w: no capacity for resource %d (index %d)",
				ErrCapacityMismatch, id, i)
		}
	}
	return Capacities{
		space: space,
		caps:  dense,
	}, nil
}

// Space returns the resource space the capacities are bound to.
func (c Capacities) Space() *Space {
	return c.space
}

// Len returns the number of resources.
func (c Capacities) Len() int {
	return len(c.caps)
}

// At returns the capacity of the resource at dense index i.
func (c Capacities) At(i int) int {
	return c.caps[i]
}

// Of returns the capacity of the resource with external id.
func (c Capacities) Of(id ResourceID) (int, error) {
	i, err := c.space.Index(id)
	if err != nil {
		return 0, err
	}
	return c.caps[i], nil
}

// Values returns a copy of the capacities in dense index order.
func (c Capacities) Values() []int {
	return slices.Clone(c.caps)
}

// Total returns the sum of all capacities.
func (c Capacities) Total() int {
	total := 0
	for _, v := range c.caps {
		total += v
	}
	return total
}
