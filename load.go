// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package rebal

import (
	"fmt"
	"slices"
)

// loadVector counts the tasks currently assigned to each resource, indexed
// densely. During a pass, counts[r] always equals the number of tasks in the
// batch whose assignment is r. It changes only through move, one unit at a
// time, so a tentative move followed by its reverse leaves it exactly as it
// was.
type loadVector struct {
	counts []int
	total  int
}

func newLoad(n int) *loadVector {
	return &loadVector{counts: make([]int, n)}
}

func (l *loadVector) add(r int) {
	l.counts[r]++
	l.total++
}

// move shifts one task's worth of load from one resource to another. The
// total is unaffected.
func (l *loadVector) move(from, to int) {
	l.counts[from]--
	l.counts[to]++
}

func (l *loadVector) snapshot() []int {
	return slices.Clone(l.counts)
}

// check panics if the counts no longer sum to the total.
func (l *loadVector) check() {
	sum := 0
	for _, c := range l.counts {
		sum += c
	}
	if sum != l.total {
		panic(fmt.Sprintf("load vector %v sums to %d, expected %d", l.counts, sum, l.total))
	}
}
