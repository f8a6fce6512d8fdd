// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otrebal_test

import (
	"testing"

	"github.com/petenewcomb/rebal-go"
	"github.com/petenewcomb/rebal-go/internal/sim"
	"github.com/petenewcomb/rebal-go/otrebal"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPromMetrics(t *testing.T) {
	chk := require.New(t)

	m := otrebal.NewPromMetrics("test")
	registry := prometheus.NewRegistry()
	for _, c := range m.Collectors() {
		registry.MustRegister(c)
	}

	res, err := sim.Run(nil)
	chk.NoError(err)
	caps, err := rebal.NewCapacities(res.Space, 10, 10, 10)
	chk.NoError(err)
	r, err := rebal.New(caps, &rebal.Config{OnStep: m.Step()})
	chk.NoError(err)
	_, err = r.Rebalance(res.Batch())
	chk.NoError(err)

	chk.Equal(7.0, testutil.ToFloat64(m.Steps.WithLabelValues("accepted")))
	chk.Equal(12.0, testutil.ToFloat64(m.Steps.WithLabelValues("reverted")))
	chk.Equal(2, testutil.CollectAndCount(m.Steps))

	families, err := registry.Gather()
	chk.NoError(err)
	chk.Len(families, 2)
	for _, mf := range families {
		if mf.GetName() == "test_rebalance_step_cost" {
			chk.Equal(uint64(19), mf.GetMetric()[0].GetHistogram().GetSampleCount())
		}
	}
}

func TestPromMetricsSingleResource(t *testing.T) {
	chk := require.New(t)

	space, err := rebal.ContiguousSpace(1, 1)
	chk.NoError(err)
	caps, err := rebal.NewCapacities(space, 1)
	chk.NoError(err)

	m := otrebal.NewPromMetrics("test")
	r, err := rebal.New(caps, &rebal.Config{OnStep: m.Step()})
	chk.NoError(err)
	_, err = r.Rebalance(rebal.NewBatch([]rebal.Task{sim.NewPlacedCloudlet(0, 1, 1)}))
	chk.NoError(err)
	chk.Equal(1.0, testutil.ToFloat64(m.Steps.WithLabelValues("skipped")))
}
