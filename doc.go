// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package rebal provides a post-hoc load rebalancer for batches of tasks that
// have already been placed on a small, fixed set of resources (for instance
// the datacenters of a simulated cloud). Each task carries exactly one
// resource assignment; [Rebalancer.Rebalance] walks the batch once and, for
// each task in turn, tentatively moves it to a single candidate resource,
// keeping the move only if the imbalance [Cost] does not get worse.
//
// The pass is greedy and local. It never revisits an earlier decision and it
// does not search the full neighborhood of a task, so the result is balanced
// only approximately. What it does guarantee is that every individual step is
// non-worsening, that the per-resource load stays consistent with the task
// assignments throughout, and that the same input always produces the same
// output.
//
// Resources are identified externally by [ResourceID] values and internally by
// dense zero-based indices. A [Space] maps between the two so that callers can
// keep whatever numbering their platform hands out (CloudSim, for example,
// starts datacenter ids at 2) without leaking offset arithmetic into the
// balancing logic.
//
// The order in which tasks are visited affects the outcome. Callers that
// collect tasks from several independent sources (one list per requester, say)
// assemble them into a [Batch], whose group order is preserved exactly.
package rebal
