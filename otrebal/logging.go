// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otrebal

import (
	"github.com/petenewcomb/rebal-go"
	"go.uber.org/zap"
)

// LoggedStep returns a step observer that writes a debug record for every
// step, including the load vector once the step was settled. If logger is
// nil, the global logger returned by [zap.L] is used.
func LoggedStep(logger *zap.Logger) func(rebal.Step) {
	if logger == nil {
		logger = zap.L()
	}
	logger = logger.With(zap.String("component", "otrebal"))
	return func(s rebal.Step) {
		logger.Debug("step",
			zap.Int("position", s.Position),
			zap.Int("task", s.Task.ID()),
			zap.Int("from", int(s.From)),
			zap.Int("to", int(s.To)),
			zap.Bool("accepted", s.Accepted),
			zap.Int("cost_before", s.CostBefore),
			zap.Int("cost_after", s.CostAfter),
			zap.Ints("load", s.Load))
	}
}
