// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package rebal

import (
	"fmt"
	"slices"
)

// ResourceID identifies a resource the way the surrounding platform does. The
// values need not be dense or start at zero.
type ResourceID int

// A Space is a fixed set of resources together with a bijection between their
// external [ResourceID] values and dense indices in the range [0, Len()).
// Capacities and loads are indexed by the dense index.
//
// A Space is immutable once created and may be shared freely.
type Space struct {
	ids   []ResourceID
	index map[ResourceID]int
}

// NewSpace creates a [Space] whose dense index i corresponds to ids[i]. It
// returns an error wrapping [ErrInvalidSpace] if ids is empty or contains
// duplicates.
func NewSpace(ids ...ResourceID) (*Space, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no resources", ErrInvalidSpace)
	}
	s := &Space{
		ids:   slices.Clone(ids),
		index: make(map[ResourceID]int, len(ids)),
	}
	for i, id := range ids {
		if j, ok := s.index[id]; ok {
			return nil, fmt.Errorf("%w: resource %d appears at indices %d and %d", ErrInvalidSpace, id, j, i)
		}
		s.index[id] = i
	}
	return s, nil
}

// ContiguousSpace creates a [Space] of n resources numbered first, first+1,
// ..., first+n-1.
func ContiguousSpace(first ResourceID, n int) (*Space, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: resource count %d", ErrInvalidSpace, n)
	}
	ids := make([]ResourceID, n)
	for i := range n {
		ids[i] = first + ResourceID(i)
	}
	return NewSpace(ids...)
}

// Len returns the number of resources in the space.
func (s *Space) Len() int {
	return len(s.ids)
}

// Index returns the dense index of id, or an error wrapping
// [ErrInvalidResource] if id is not part of the space.
func (s *Space) Index(id ResourceID) (int, error) {
	i, ok := s.index[id]
	if !ok {
		return -1, fmt.Errorf("%w: resource %d not in %v", ErrInvalidResource, id, s.ids)
	}
	return i, nil
}

// ID returns the external id at dense index i, or an error wrapping
// [ErrInvalidResource] if i is out of range.
func (s *Space) ID(i int) (ResourceID, error) {
	if i < 0 || i >= len(s.ids) {
		return 0, fmt.Errorf("%w: index %d out of range [0, %d)", ErrInvalidResource, i, len(s.ids))
	}
	return s.ids[i], nil
}

// IDs returns a copy of the external ids in dense index order.
func (s *Space) IDs() []ResourceID {
	return slices.Clone(s.ids)
}

// Contains reports whether id is part of the space.
func (s *Space) Contains(id ResourceID) bool {
	_, ok := s.index[id]
	return ok
}

// ring returns the dense index offset positions after i, wrapping around the
// end of the space.
func (s *Space) ring(i, offset int) int {
	n := len(s.ids)
	return ((i+offset)%n + n) % n
}

// mustID is ID for indices already known to be in range.
func (s *Space) mustID(i int) ResourceID {
	id, err := s.ID(i)
	if err != nil {
		panic(err)
	}
	return id
}

func (s *Space) String() string {
	return fmt.Sprint(s.ids)
}
