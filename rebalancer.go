// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package rebal

import (
	"fmt"

	"go.uber.org/zap"
)

// DefaultConfig is used by [New] when given a nil config.
var DefaultConfig = Config{}

// Config adjusts the behavior of a [Rebalancer]. The zero value is valid.
type Config struct {
	// Logger receives a debug record per step and an info record per pass.
	// If nil, the global logger returned by [zap.L] at the time of the call
	// to [New] is used.
	Logger *zap.Logger

	// OnStep, if not nil, is called synchronously after each step has been
	// decided and, if necessary, reverted.
	OnStep func(Step)

	// CandidateOffset is how many positions ahead in the resource ring the
	// candidate resource lies. Zero selects the default of Len()-1, i.e. the
	// resource immediately preceding the current one. Otherwise it must lie
	// in [1, Len()-1].
	CandidateOffset int

	// CheckInvariants makes every step verify that the load vector still
	// accounts for every task, panicking otherwise.
	CheckInvariants bool
}

// A Step describes one task's visit during a pass.
type Step struct {
	// Position is the task's global position in the [Batch].
	Position int
	Task     Task

	// From is the task's assignment on arrival and To the candidate it was
	// tried against. They are equal only when the space has one resource and
	// there is nothing to try.
	From ResourceID
	To   ResourceID

	CostBefore int
	CostAfter  int

	// Accepted reports whether the task was left on To.
	Accepted bool

	// Load is a copy of the load vector once the step was settled.
	Load []int
}

// A Move records an accepted step.
type Move struct {
	Position   int
	TaskID     int
	From       ResourceID
	To         ResourceID
	CostBefore int
	CostAfter  int
}

// Summary reports the outcome of a pass.
type Summary struct {
	Tasks    int
	Accepted int
	// Reverted counts rejected moves. Accepted+Reverted equals Tasks unless
	// the space has a single resource, in which case both are zero.
	Reverted    int
	InitialCost int
	FinalCost   int
	InitialLoad []int
	FinalLoad   []int
	// Moves lists the accepted steps in visiting order.
	Moves []Move
}

// A Rebalancer performs single greedy passes over task batches against a fixed
// set of [Capacities]. A Rebalancer holds no state between passes; each call
// to [Rebalancer.Rebalance] works on its own load vector, so one Rebalancer
// may serve concurrent calls on disjoint batches as long as any OnStep
// callback tolerates that.
type Rebalancer struct {
	space    *Space
	capacity Capacities
	offset   int
	onStep   func(Step)
	check    bool
	logger   *zap.Logger
}

// New creates a [Rebalancer] for the given capacities. It returns an error
// wrapping [ErrInvalidConfig] if capacity was not built by [NewCapacities] or
// [CapacitiesByID], or if config.CandidateOffset is out of range.
func New(capacity Capacities, config *Config) (*Rebalancer, error) {
	if config == nil {
		config = &DefaultConfig
	}
	space := capacity.Space()
	if space == nil {
		return nil, fmt.Errorf("%w: capacities not bound to a resource space", ErrInvalidConfig)
	}
	n := space.Len()
	offset := config.CandidateOffset
	if offset == 0 {
		offset = n - 1
	} else if offset < 1 || offset >= n {
		return nil, fmt.Errorf("%w: candidate offset %d outside [1, %d]", ErrInvalidConfig, offset, n-1)
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.L()
	}
	return &Rebalancer{
		space:    space,
		capacity: capacity,
		offset:   offset,
		onStep:   config.OnStep,
		check:    config.CheckInvariants,
		logger:   logger.With(zap.String("component", "rebal")),
	}, nil
}

// Rebalance creates a [Rebalancer] with [DefaultConfig] and runs one pass.
func Rebalance(batch *Batch, capacity Capacities) (*Summary, error) {
	r, err := New(capacity, nil)
	if err != nil {
		return nil, err
	}
	return r.Rebalance(batch)
}

// Space returns the resource space the rebalancer operates on.
func (r *Rebalancer) Space() *Space {
	return r.space
}

// Candidate returns the single resource a task currently assigned to id would
// be tried against.
func (r *Rebalancer) Candidate(id ResourceID) (ResourceID, error) {
	i, err := r.space.Index(id)
	if err != nil {
		return 0, err
	}
	return r.space.mustID(r.candidate(i)), nil
}

func (r *Rebalancer) candidate(i int) int {
	return r.space.ring(i, r.offset)
}

// Rebalance visits every task of batch once, in order, and for each one
//
//  1. computes the cost of the current load,
//  2. moves the task to its candidate resource,
//  3. computes the cost again, and
//  4. moves the task back if the cost went up.
//
// A move that leaves the cost unchanged is kept.
//
// Every task's assignment is validated before anything is modified. If any
// task is assigned to a resource outside the space, Rebalance returns an error
// wrapping [ErrInvalidResource] and leaves every task as it was. Otherwise it
// cannot fail. Each task must appear in the batch at most once.
//
// A nil or empty batch yields a zero-cost summary of all-zero loads.
func (r *Rebalancer) Rebalance(batch *Batch) (*Summary, error) {
	if batch == nil {
		batch = &Batch{}
	}

	// Resolve every assignment up front so that a bad one is reported before
	// the first move.
	from := make([]int, batch.Len())
	for pos, t := range batch.All() {
		i, err := r.space.Index(t.Resource())
		if err != nil {
			return nil, fmt.Errorf("task %d at position %d: %w", t.ID(), pos, err)
		}
		from[pos] = i
	}

	load := newLoad(r.space.Len())
	for _, i := range from {
		load.add(i)
	}
	caps := r.capacity.caps

	s := &Summary{
		Tasks:       load.total,
		InitialLoad: load.snapshot(),
		InitialCost: quadraticCost(load.counts, caps),
	}

	for pos, t := range batch.All() {
		cur := from[pos]
		to := r.candidate(cur)

		before := quadraticCost(load.counts, caps)
		after := before
		accepted := false
		if to != cur {
			load.move(cur, to)
			t.SetResource(r.space.mustID(to))
			after = quadraticCost(load.counts, caps)
			accepted = after <= before
			if !accepted {
				load.move(to, cur)
				t.SetResource(r.space.mustID(cur))
			}
		}
		if r.check {
			load.check()
		}

		fromID, toID := r.space.mustID(cur), r.space.mustID(to)
		if accepted {
			s.Accepted++
			s.Moves = append(s.Moves, Move{
				Position:   pos,
				TaskID:     t.ID(),
				From:       fromID,
				To:         toID,
				CostBefore: before,
				CostAfter:  after,
			})
			r.logger.Debug("task moved",
				zap.Int("task", t.ID()),
				zap.Int("position", pos),
				zap.Int("from", int(fromID)),
				zap.Int("to", int(toID)),
				zap.Int("cost_before", before),
				zap.Int("cost_after", after))
		} else if to != cur {
			s.Reverted++
			r.logger.Debug("move reverted",
				zap.Int("task", t.ID()),
				zap.Int("position", pos),
				zap.Int("resource", int(fromID)),
				zap.Int("candidate", int(toID)),
				zap.Int("cost_before", before),
				zap.Int("cost_after", after))
		}

		if r.onStep != nil {
			r.onStep(Step{
				Position:   pos,
				Task:       t,
				From:       fromID,
				To:         toID,
				CostBefore: before,
				CostAfter:  after,
				Accepted:   accepted,
				Load:       load.snapshot(),
			})
		}
	}

	s.FinalLoad = load.snapshot()
	s.FinalCost = quadraticCost(load.counts, caps)

	r.logger.Info("rebalance pass complete",
		zap.Int("tasks", s.Tasks),
		zap.Int("accepted", s.Accepted),
		zap.Int("reverted", s.Reverted),
		zap.Int("initial_cost", s.InitialCost),
		zap.Int("final_cost", s.FinalCost),
		zap.Ints("initial_load", s.InitialLoad),
		zap.Ints("final_load", s.FinalLoad))

	return s, nil
}
