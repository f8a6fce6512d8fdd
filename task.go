// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package rebal

// A Task is a unit of work that has already been placed on exactly one
// resource. The rebalancer reads and writes the assignment through Resource
// and SetResource and uses ID only for logging and reporting; anything else a
// task carries (status, timing, the worker it ran on) is passed through
// untouched.
//
// SetResource is called only with ids belonging to the [Space] the rebalancer
// was configured with. Implementations must not reject or transform the
// value, since the rebalancer relies on Resource returning exactly what was
// last set.
type Task interface {
	ID() int
	Resource() ResourceID
	SetResource(ResourceID)
}
