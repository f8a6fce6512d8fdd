// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import (
	"fmt"

	"github.com/petenewcomb/rebal-go"
	"pgregory.net/rapid"
)

// BatchConfig bounds the shape of batches drawn by [DrawGroups].
type BatchConfig struct {
	SpaceLen  BiasedIntConfig
	FirstID   BiasedIntConfig
	Capacity  BiasedIntConfig
	Groups    BiasedIntConfig
	GroupSize BiasedIntConfig
}

var DefaultBatchConfig = BatchConfig{
	SpaceLen:  BiasedIntConfig{Min: 1, Med: 3, Max: 6},
	FirstID:   BiasedIntConfig{Min: -5, Med: 2, Max: 100},
	Capacity:  BiasedIntConfig{Min: -3, Med: 10, Max: 40},
	Groups:    BiasedIntConfig{Min: 0, Med: 3, Max: 6},
	GroupSize: BiasedIntConfig{Min: 0, Med: 8, Max: 30},
}

// DrawSpace draws a contiguous resource space.
func DrawSpace(t *rapid.T, config *BatchConfig) *rebal.Space {
	n := config.SpaceLen.Draw(t, "spaceLen")
	first := config.FirstID.Draw(t, "firstID")
	space, err := rebal.ContiguousSpace(rebal.ResourceID(first), n)
	if err != nil {
		t.Fatalf("contiguous space: %v", err)
	}
	return space
}

// DrawCapacities draws one capacity per resource of space.
func DrawCapacities(t *rapid.T, config *BatchConfig, space *rebal.Space) rebal.Capacities {
	caps := make([]int, space.Len())
	for i := range caps {
		caps[i] = config.Capacity.Draw(t, fmt.Sprintf("capacity[%d]", i))
	}
	c, err := rebal.NewCapacities(space, caps...)
	if err != nil {
		t.Fatalf("capacities: %v", err)
	}
	return c
}

// DrawGroups draws groups of already-placed cloudlets, one group per user,
// each cloudlet assigned to a resource of space.
func DrawGroups(t *rapid.T, config *BatchConfig, space *rebal.Space) [][]*Cloudlet {
	ids := space.IDs()
	groupCount := config.Groups.Draw(t, "groups")
	groups := make([][]*Cloudlet, groupCount)
	for g := range groups {
		size := config.GroupSize.Draw(t, fmt.Sprintf("groupSize[%d]", g))
		group := make([]*Cloudlet, size)
		for i := range group {
			id := rapid.SampledFrom(ids).Draw(t, fmt.Sprintf("resource[%d][%d]", g, i))
			group[i] = NewPlacedCloudlet(i, g+1, id)
		}
		groups[g] = group
	}
	return groups
}

// NewBatch assembles groups into a batch in order.
func NewBatch(groups [][]*Cloudlet) *rebal.Batch {
	b := &rebal.Batch{}
	for _, g := range groups {
		b.Append(rebal.Group(g))
	}
	return b
}

// Assignments returns the current resource of every cloudlet, group by group.
func Assignments(groups [][]*Cloudlet) [][]rebal.ResourceID {
	out := make([][]rebal.ResourceID, len(groups))
	for g, group := range groups {
		out[g] = make([]rebal.ResourceID, len(group))
		for i, c := range group {
			out[g][i] = c.Resource()
		}
	}
	return out
}

// Clone deep-copies groups so that the same draw can be rebalanced twice.
func Clone(groups [][]*Cloudlet) [][]*Cloudlet {
	out := make([][]*Cloudlet, len(groups))
	for g, group := range groups {
		out[g] = make([]*Cloudlet, len(group))
		for i, c := range group {
			cc := *c
			out[g][i] = &cc
		}
	}
	return out
}
