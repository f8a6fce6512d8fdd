// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package rebal

import (
	"iter"
)

// A Batch is an ordered sequence of tasks assembled from one or more groups.
// Tasks are visited group by group in the order the groups were added, and
// within each group in slice order. Since each rebalancing decision depends on
// the load left behind by the previous ones, rearranging groups generally
// changes the result.
//
// A Batch refers to the caller's slices rather than copying them; the caller
// must not reorder or resize them while a pass is running. The zero value is
// an empty batch ready to use.
type Batch struct {
	groups [][]Task
	// offsets[i] is the global position of the first task of groups[i].
	offsets []int
	len     int
}

// NewBatch creates a [Batch] from groups in the given order.
func NewBatch(groups ...[]Task) *Batch {
	b := &Batch{}
	for _, g := range groups {
		b.Append(g)
	}
	return b
}

// Group converts a slice of any concrete [Task] type into a group suitable
// for [NewBatch] or [Batch.Append]. The returned slice shares the task values
// (typically pointers) but not the backing array.
func Group[T Task](tasks []T) []Task {
	g := make([]Task, len(tasks))
	for i, t := range tasks {
		g[i] = t
	}
	return g
}

// Append adds group after all groups already in the batch. Empty groups are
// kept so that group indices stay aligned with the caller's numbering.
func (b *Batch) Append(group []Task) {
	b.groups = append(b.groups, group)
	b.offsets = append(b.offsets, b.len)
	b.len += len(group)
}

// Len returns the total number of tasks across all groups.
func (b *Batch) Len() int {
	return b.len
}

// GroupCount returns the number of groups, including empty ones.
func (b *Batch) GroupCount() int {
	return len(b.groups)
}

// Group returns the i'th group as added.
func (b *Batch) Group(i int) []Task {
	return b.groups[i]
}

// At returns the task at global position i, locating its group by the
// recorded offsets.
func (b *Batch) At(i int) Task {
	if i < 0 || i >= b.len {
		panic("batch position out of range")
	}
	g := b.groupOf(i)
	return b.groups[g][i-b.offsets[g]]
}

// groupOf returns the index of the group containing global position i: the
// last group whose offset does not exceed i. An empty group shares its offset
// with the next group, so it is never the last such group.
func (b *Batch) groupOf(i int) int {
	lo, hi := 0, len(b.offsets)
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if b.offsets[mid] <= i {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// All yields every task with its global position, group by group.
func (b *Batch) All() iter.Seq2[int, Task] {
	return func(yield func(int, Task) bool) {
		for g, group := range b.groups {
			for j, t := range group {
				if !yield(b.offsets[g]+j, t) {
					return
				}
			}
		}
	}
}

// Groups yields each group index with its tasks.
func (b *Batch) Groups() iter.Seq2[int, []Task] {
	return func(yield func(int, []Task) bool) {
		for g, group := range b.groups {
			if !yield(g, group) {
				return
			}
		}
	}
}
