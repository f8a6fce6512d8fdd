// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otrebal_test

import (
	"context"
	"testing"

	"github.com/petenewcomb/rebal-go"
	"github.com/petenewcomb/rebal-go/internal/sim"
	"github.com/petenewcomb/rebal-go/otrebal"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

// tieCaps makes a lone task on resource 0 tie with its default candidate 2.
func tieCaps(t *testing.T) rebal.Capacities {
	space, err := rebal.ContiguousSpace(0, 3)
	require.NoError(t, err)
	caps, err := rebal.NewCapacities(space, 1, 0, 1)
	require.NoError(t, err)
	return caps
}

func attrs(kvs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(kvs))
	for _, kv := range kvs {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestTraced(t *testing.T) {
	chk := require.New(t)
	sr := withRecorder(t)

	ctx, root := otel.Tracer("test").Start(context.Background(), "root")
	r, err := rebal.New(tieCaps(t), &rebal.Config{OnStep: otrebal.StepEvents(ctx)})
	chk.NoError(err)

	batch := rebal.NewBatch([]rebal.Task{sim.NewPlacedCloudlet(0, 1, 0)})
	s, err := otrebal.Traced(ctx, r, batch)
	chk.NoError(err)
	chk.Equal(1, s.Accepted)
	root.End()

	spans := sr.Ended()
	chk.Len(spans, 2)
	pass := spans[0]
	chk.Equal("rebal.pass", pass.Name())
	chk.Equal(root.SpanContext().SpanID(), pass.Parent().SpanID())
	a := attrs(pass.Attributes())
	chk.Equal(int64(1), a["rebal.tasks"].AsInt64())
	chk.Equal(int64(1), a["rebal.accepted"].AsInt64())
	chk.Equal(int64(0), a["rebal.reverted"].AsInt64())
	chk.Equal(int64(1), a["rebal.cost.final"].AsInt64())
	chk.Equal([]int64{0, 0, 1}, a["rebal.load.final"].AsInt64Slice())

	events := spans[1].Events()
	chk.Len(events, 1)
	chk.Equal("rebal.move", events[0].Name)
	chk.Equal(int64(2), attrs(events[0].Attributes)["rebal.to"].AsInt64())
}

func TestTracedError(t *testing.T) {
	chk := require.New(t)
	sr := withRecorder(t)

	r, err := rebal.New(tieCaps(t), nil)
	chk.NoError(err)
	batch := rebal.NewBatch([]rebal.Task{sim.NewPlacedCloudlet(0, 1, 9)})
	s, err := otrebal.Traced(context.Background(), r, batch)
	chk.ErrorIs(err, rebal.ErrInvalidResource)
	chk.Nil(s)

	spans := sr.Ended()
	chk.Len(spans, 1)
	chk.Equal(codes.Error, spans[0].Status().Code)
	chk.Len(spans[0].Events(), 1)
	chk.Equal("exception", spans[0].Events()[0].Name)
}

func TestStepEventsWithoutSpan(t *testing.T) {
	chk := require.New(t)

	// No span in the context; the observer must be a no-op.
	r, err := rebal.New(tieCaps(t), &rebal.Config{OnStep: otrebal.StepEvents(context.Background())})
	chk.NoError(err)
	_, err = r.Rebalance(rebal.NewBatch([]rebal.Task{sim.NewPlacedCloudlet(0, 1, 0)}))
	chk.NoError(err)
}

func TestChain(t *testing.T) {
	chk := require.New(t)

	var order []string
	fn := otrebal.Chain(
		func(rebal.Step) { order = append(order, "a") },
		nil,
		func(rebal.Step) { order = append(order, "b") },
	)
	fn(rebal.Step{})
	fn(rebal.Step{})
	chk.Equal([]string{"a", "b", "a", "b"}, order)

	otrebal.Chain()(rebal.Step{})
}

func TestInstrument(t *testing.T) {
	chk := require.New(t)

	core, logs := observer.New(zap.DebugLevel)
	steps := 0
	base := &rebal.Config{OnStep: func(rebal.Step) { steps++ }, CandidateOffset: 1}
	config := otrebal.Instrument(base, "rebal.test", zap.New(core))
	chk.Equal(1, config.CandidateOffset)

	r, err := rebal.New(tieCaps(t), config)
	chk.NoError(err)
	batch := rebal.NewBatch([]rebal.Task{
		sim.NewPlacedCloudlet(0, 1, 0),
		sim.NewPlacedCloudlet(1, 1, 2),
	})
	_, err = r.Rebalance(batch)
	chk.NoError(err)

	chk.Equal(2, steps)
	records := logs.FilterMessage("step").All()
	chk.Len(records, 2)
	first := records[0].ContextMap()
	chk.Equal("otrebal", first["component"])
	chk.Equal(int64(0), first["from"])
	chk.Equal(int64(1), first["to"])

	// The base observer is left alone.
	base.OnStep(rebal.Step{})
	chk.Equal(3, steps)
	chk.Equal(2, logs.Len())

	chk.NotNil(otrebal.Instrument(nil, "rebal.test", nil).OnStep)
}
