// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otrebal

import (
	"context"

	"github.com/petenewcomb/rebal-go"
	"go.opentelemetry.io/otel"
)

// MetricsStep returns a step observer that counts accepted and reverted moves
// as metricName+".accepted" and metricName+".reverted", and records the cost
// after each step in the metricName+".cost" histogram. Instruments come from
// the global meter provider at the time of the call.
func MetricsStep(metricName string) func(rebal.Step) {
	meter := otel.GetMeterProvider().Meter(instrumentationName)

	accepted, _ := meter.Int64Counter(metricName + ".accepted")
	reverted, _ := meter.Int64Counter(metricName + ".reverted")
	cost, _ := meter.Int64Histogram(metricName + ".cost")

	return func(s rebal.Step) {
		ctx := context.Background()
		switch {
		case s.Accepted:
			accepted.Add(ctx, 1)
			cost.Record(ctx, int64(s.CostAfter))
		case s.From != s.To:
			reverted.Add(ctx, 1)
			cost.Record(ctx, int64(s.CostBefore))
		default:
			cost.Record(ctx, int64(s.CostBefore))
		}
	}
}
