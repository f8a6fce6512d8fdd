// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package rebal_test

import (
	"slices"
	"testing"

	"github.com/petenewcomb/rebal-go"
	"github.com/petenewcomb/rebal-go/internal/sim"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestRebalanceProperties checks, for random spaces, capacities and grouped
// batches, that every step conserves load, never raises the cost when
// accepted, restores the prior state exactly when rejected, and moves tasks
// only to their candidate.
func TestRebalanceProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		chk := require.New(t)
		config := sim.DefaultBatchConfig
		space := sim.DrawSpace(t, &config)
		caps := sim.DrawCapacities(t, &config, space)
		groups := sim.DrawGroups(t, &config, space)
		batch := sim.NewBatch(groups)
		initial := assignments(batch)

		n := space.Len()
		offset := 0
		if n > 1 {
			offset = rapid.IntRange(0, n-1).Draw(t, "offset")
		}

		// prev tracks the load vector as seen before each step, starting
		// from a scan of the initial assignments.
		prev := make([]int, n)
		for _, id := range initial {
			i, err := space.Index(id)
			chk.NoError(err)
			prev[i]++
		}
		start := slices.Clone(prev)

		var steps []rebal.Step
		r, err := rebal.New(caps, &rebal.Config{
			CandidateOffset: offset,
			CheckInvariants: true,
			OnStep: func(s rebal.Step) {
				steps = append(steps, s)

				// Conservation at every step.
				total := 0
				for _, c := range s.Load {
					total += c
				}
				chk.Equal(len(initial), total)

				before, err := rebal.Cost(prev, caps.Values())
				chk.NoError(err)
				chk.Equal(before, s.CostBefore)
				after, err := rebal.Cost(s.Load, caps.Values())
				chk.NoError(err)

				chk.Equal(initial[s.Position], s.From)
				if s.Accepted {
					chk.LessOrEqual(s.CostAfter, s.CostBefore)
					chk.Equal(s.CostAfter, after)
					chk.Equal(s.To, s.Task.Resource())
					fi, _ := space.Index(s.From)
					ti, _ := space.Index(s.To)
					expected := slices.Clone(prev)
					expected[fi]--
					expected[ti]++
					chk.Equal(expected, s.Load)
				} else {
					// A rejected move leaves no trace.
					chk.Equal(prev, s.Load)
					chk.Equal(s.From, s.Task.Resource())
					chk.Equal(before, after)
					if s.From != s.To {
						chk.Greater(s.CostAfter, s.CostBefore)
					}
				}
				prev = slices.Clone(s.Load)
			},
		})
		chk.NoError(err)

		summary, err := r.Rebalance(batch)
		chk.NoError(err)
		chk.Len(steps, batch.Len())
		chk.Equal(start, summary.InitialLoad)
		chk.Equal(prev, summary.FinalLoad)
		chk.Equal(len(summary.Moves), summary.Accepted)

		final := assignments(batch)
		for i := range final {
			if final[i] == initial[i] {
				continue
			}
			expected, err := r.Candidate(initial[i])
			chk.NoError(err)
			chk.Equal(expected, final[i], "task at position %d moved to a non-candidate", i)
		}

		// Recounting from the final assignments agrees with the maintained
		// load vector.
		recount := make([]int, n)
		for _, id := range final {
			i, err := space.Index(id)
			chk.NoError(err)
			recount[i]++
		}
		chk.Equal(recount, summary.FinalLoad)
		finalCost, err := rebal.Cost(recount, caps.Values())
		chk.NoError(err)
		chk.Equal(finalCost, summary.FinalCost)
	})
}

func TestRebalanceDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		chk := require.New(t)
		config := sim.DefaultBatchConfig
		space := sim.DrawSpace(t, &config)
		caps := sim.DrawCapacities(t, &config, space)
		groups := sim.DrawGroups(t, &config, space)
		twin := sim.Clone(groups)

		s1, err := rebal.Rebalance(sim.NewBatch(groups), caps)
		chk.NoError(err)
		s2, err := rebal.Rebalance(sim.NewBatch(twin), caps)
		chk.NoError(err)

		chk.Equal(sim.Assignments(groups), sim.Assignments(twin))
		chk.Equal(s1, s2)
	})
}

func TestRebalanceRejectsForeignResource(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		chk := require.New(t)
		config := sim.DefaultBatchConfig
		space := sim.DrawSpace(t, &config)
		caps := sim.DrawCapacities(t, &config, space)
		groups := sim.DrawGroups(t, &config, space)
		if len(groups) == 0 {
			groups = append(groups, nil)
		}

		// Plant one cloudlet assigned just past the end of the space.
		ids := space.IDs()
		foreign := ids[len(ids)-1] + 1
		g := rapid.IntRange(0, len(groups)-1).Draw(t, "group")
		at := rapid.IntRange(0, len(groups[g])).Draw(t, "at")
		groups[g] = slices.Insert(groups[g], at, sim.NewPlacedCloudlet(len(groups[g]), g+1, foreign))

		before := sim.Assignments(groups)
		s, err := rebal.Rebalance(sim.NewBatch(groups), caps)
		chk.ErrorIs(err, rebal.ErrInvalidResource)
		chk.Nil(s)
		chk.Equal(before, sim.Assignments(groups))
	})
}
