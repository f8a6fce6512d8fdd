// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import (
	"fmt"

	"pgregory.net/rapid"
)

// BiasedIntConfig describes an integer range [Min, Max] whose draws cluster
// around Med.
type BiasedIntConfig struct {
	Min int
	Med int
	Max int
}

func (c *BiasedIntConfig) Draw(t *rapid.T, name string) int {
	if c.Med < c.Min || c.Max < c.Med {
		panic(fmt.Sprint("invalid BiasedIntConfig:", *c))
	}
	return rapid.Custom(func(t *rapid.T) int {
		// Drawing from [min-med, max-med] instead of [min, max] takes
		// advantage of rapid's bias toward values near zero as well as at the
		// bounds.
		return c.Med + rapid.IntRange(c.Min-c.Med, c.Max-c.Med).Draw(t, name+"(internal)")
	}).Draw(t, name)
}
