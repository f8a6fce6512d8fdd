// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package otrebal instruments rebalancing passes with OpenTelemetry traces
// and metrics, Prometheus collectors and zap logging.
//
// The step observers returned by [MetricsStep], [LoggedStep], [StepEvents]
// and [PromMetrics.Step] plug into [rebal.Config.OnStep], alone or combined
// with [Chain]. [Traced] wraps a whole pass in a span.
package otrebal
