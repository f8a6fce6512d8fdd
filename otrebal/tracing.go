// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otrebal

import (
	"context"

	"github.com/petenewcomb/rebal-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/petenewcomb/rebal-go/otrebal"

// Traced runs one pass of r over batch inside a span named "rebal.pass". The
// span carries the pass summary as attributes, or the error if the pass was
// rejected.
func Traced(ctx context.Context, r *rebal.Rebalancer, batch *rebal.Batch) (*rebal.Summary, error) {
	tracer := otel.Tracer(instrumentationName)
	_, span := tracer.Start(ctx, "rebal.pass",
		trace.WithAttributes(
			attribute.Int("rebal.resources", r.Space().Len()),
			attribute.Int("rebal.tasks", batch.Len()),
			attribute.Int("rebal.groups", batch.GroupCount()),
		))
	defer span.End()

	s, err := r.Rebalance(batch)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("rebal.accepted", s.Accepted),
		attribute.Int("rebal.reverted", s.Reverted),
		attribute.Int("rebal.cost.initial", s.InitialCost),
		attribute.Int("rebal.cost.final", s.FinalCost),
		attribute.IntSlice("rebal.load.initial", s.InitialLoad),
		attribute.IntSlice("rebal.load.final", s.FinalLoad),
	)
	return s, nil
}

// StepEvents returns a step observer that adds an event for every accepted
// move to the span found in ctx. Rejected steps are not recorded.
func StepEvents(ctx context.Context) func(rebal.Step) {
	span := trace.SpanFromContext(ctx)
	return func(s rebal.Step) {
		if !s.Accepted || !span.IsRecording() {
			return
		}
		span.AddEvent("rebal.move", trace.WithAttributes(
			attribute.Int("rebal.position", s.Position),
			attribute.Int("rebal.task", s.Task.ID()),
			attribute.Int("rebal.from", int(s.From)),
			attribute.Int("rebal.to", int(s.To)),
			attribute.Int("rebal.cost", s.CostAfter),
		))
	}
}
