// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package rebal

type constError string

func (e constError) Error() string {
	return string(e)
}

// ErrInvalidResource reports a resource id or index outside the [Space].
const ErrInvalidResource = constError("invalid resource")

// ErrCapacityMismatch reports a capacity or load vector that does not cover
// exactly the resources of the [Space].
const ErrCapacityMismatch = constError("capacity mismatch")

const ErrInvalidSpace = constError("invalid resource space")
const ErrInvalidConfig = constError("invalid rebalancer config")
