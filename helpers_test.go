// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package rebal_test

import (
	"github.com/petenewcomb/rebal-go"
	"github.com/petenewcomb/rebal-go/internal/sim"
)

// placed returns one group of cloudlets assigned to the given resources.
func placed(ids ...rebal.ResourceID) []rebal.Task {
	g := make([]rebal.Task, len(ids))
	for i, id := range ids {
		g[i] = sim.NewPlacedCloudlet(i, 1, id)
	}
	return g
}

// repeat returns n copies of id.
func repeat(id rebal.ResourceID, n int) []rebal.ResourceID {
	ids := make([]rebal.ResourceID, n)
	for i := range ids {
		ids[i] = id
	}
	return ids
}

func assignments(b *rebal.Batch) []rebal.ResourceID {
	ids := make([]rebal.ResourceID, 0, b.Len())
	for _, t := range b.All() {
		ids = append(ids, t.Resource())
	}
	return ids
}
