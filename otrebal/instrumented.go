// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otrebal

import (
	"github.com/petenewcomb/rebal-go"
	"go.uber.org/zap"
)

// Chain returns a step observer that calls each non-nil fn in order.
func Chain(fns ...func(rebal.Step)) func(rebal.Step) {
	var live []func(rebal.Step)
	for _, fn := range fns {
		if fn != nil {
			live = append(live, fn)
		}
	}
	return func(s rebal.Step) {
		for _, fn := range live {
			fn(s)
		}
	}
}

// Instrument returns a copy of config whose OnStep first calls the original
// observer, if any, then logs the step and records its metrics under
// metricName. A nil config is treated as [rebal.DefaultConfig].
func Instrument(config *rebal.Config, metricName string, logger *zap.Logger) *rebal.Config {
	if config == nil {
		config = &rebal.DefaultConfig
	}
	c := *config
	if logger == nil {
		logger = c.Logger
	}
	c.OnStep = Chain(config.OnStep, LoggedStep(logger), MetricsStep(metricName))
	return &c
}
