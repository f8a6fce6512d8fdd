// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otrebal

import (
	"github.com/petenewcomb/rebal-go"
	"github.com/prometheus/client_golang/prometheus"
)

// PromMetrics holds Prometheus instruments for rebalancing steps. Register
// the result of Collectors with a registry and install Step as an observer.
type PromMetrics struct {
	// Steps counts visited tasks by outcome: "accepted", "reverted", or
	// "skipped" when the space has a single resource.
	Steps *prometheus.CounterVec

	// Cost observes the cost once each step is settled.
	Cost prometheus.Histogram
}

// NewPromMetrics creates unregistered instruments named under namespace.
func NewPromMetrics(namespace string) *PromMetrics {
	return &PromMetrics{
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rebalance_steps_total",
				Help:      "Tasks visited by rebalancing passes, by outcome.",
			},
			[]string{"outcome"},
		),
		Cost: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rebalance_step_cost",
				Help:      "Imbalance cost after each rebalancing step.",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
	}
}

func (m *PromMetrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Steps, m.Cost}
}

// Step returns an observer feeding m.
func (m *PromMetrics) Step() func(rebal.Step) {
	return func(s rebal.Step) {
		cost := s.CostBefore
		switch {
		case s.Accepted:
			m.Steps.WithLabelValues("accepted").Inc()
			cost = s.CostAfter
		case s.From != s.To:
			m.Steps.WithLabelValues("reverted").Inc()
		default:
			m.Steps.WithLabelValues("skipped").Inc()
		}
		m.Cost.Observe(float64(cost))
	}
}
