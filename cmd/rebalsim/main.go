// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command rebalsim runs a simulated datacenter scenario, rebalances the
// resulting cloudlet assignments in a single greedy pass, and reports the
// outcome.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/petenewcomb/rebal-go"
	"github.com/petenewcomb/rebal-go/internal/report"
	"github.com/petenewcomb/rebal-go/internal/scenario"
	"github.com/petenewcomb/rebal-go/internal/sim"
	"github.com/petenewcomb/rebal-go/otrebal"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Version is set during build.
var Version = "dev"

type options struct {
	scenario string
	chart    string
	trace    bool
	metrics  bool
	verbose  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	rootCmd := &cobra.Command{
		Use:   "rebalsim",
		Short: "Simulate a datacenter scenario and rebalance its cloudlets",
		Long: `rebalsim runs a discrete-event simulation of brokers submitting cloudlets
to datacenters, then moves cloudlets between datacenters in one greedy pass
that minimizes the squared distance of every datacenter from its capacity.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), &opts)
		},
	}
	rootCmd.Flags().StringVarP(&opts.scenario, "scenario", "s", "", "YAML scenario file (default: built-in three-datacenter scenario)")
	rootCmd.Flags().StringVar(&opts.chart, "chart", "", "write a load chart to this file (.png, .svg or .pdf)")
	rootCmd.Flags().BoolVar(&opts.trace, "trace", false, "print OpenTelemetry spans to stdout")
	rootCmd.Flags().BoolVar(&opts.metrics, "metrics", false, "print Prometheus metrics for the pass after the report")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every rebalancing step to stderr")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "scenario",
		Short: "Print the built-in scenario as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(scenario.Default()); err != nil {
				return err
			}
			return enc.Close()
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rebalsim %s\n", Version)
		},
	})
	return rootCmd
}

func run(ctx context.Context, stdout, stderr io.Writer, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	runID := uuid.NewString()
	logger := zap.NewNop()
	if opts.verbose {
		logger = newLogger(stderr)
	}
	logger = logger.With(zap.String("run", runID))
	defer logger.Sync()

	if opts.trace {
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(stdout), stdouttrace.WithPrettyPrint())
		if err != nil {
			return err
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
			sdktrace.WithSyncer(exporter),
		)
		prev := otel.GetTracerProvider()
		otel.SetTracerProvider(tp)
		defer func() {
			_ = tp.Shutdown(context.Background())
			otel.SetTracerProvider(prev)
		}()
	}

	sc := scenario.Default()
	if opts.scenario != "" {
		var err error
		sc, err = scenario.LoadFile(opts.scenario)
		if err != nil {
			return err
		}
	}

	ctx, span := otel.Tracer("rebalsim").Start(ctx, "rebalsim",
		trace.WithAttributes(attribute.String("rebalsim.run", runID)))
	defer span.End()

	res, err := sim.Run(&sc.Simulation)
	if err != nil {
		return err
	}
	logger.Info("simulation complete",
		zap.Int("datacenters", len(res.Datacenters)),
		zap.Int("brokers", len(res.Brokers)),
		zap.Duration("duration", res.Duration))
	for _, br := range res.Brokers {
		if br.Unplaced > 0 {
			logger.Warn("broker has unplaced VMs",
				zap.String("broker", br.Name),
				zap.Int("unplaced", br.Unplaced))
		}
	}

	caps, err := sc.Bind(res.Space)
	if err != nil {
		return err
	}
	config := otrebal.Instrument(sc.Config(&rebal.Config{Logger: logger}), "rebalsim", logger)
	prom := otrebal.NewPromMetrics("rebalsim")
	registry := prometheus.NewRegistry()
	for _, c := range prom.Collectors() {
		registry.MustRegister(c)
	}
	config.OnStep = otrebal.Chain(config.OnStep, otrebal.StepEvents(ctx), prom.Step())
	r, err := rebal.New(caps, config)
	if err != nil {
		return err
	}

	summary, err := otrebal.Traced(ctx, r, res.Batch())
	if err != nil {
		return err
	}

	for _, br := range res.Brokers {
		if err := report.WriteTable(stdout, br.User, br.Received); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(stdout, "\n"); err != nil {
		return err
	}
	if err := report.WriteSummary(stdout, res.Space, summary); err != nil {
		return err
	}

	if opts.metrics {
		if err := writeMetrics(stdout, registry); err != nil {
			return err
		}
	}

	if opts.chart != "" {
		if err := report.WriteLoadChart(opts.chart, caps, summary.InitialLoad, summary.FinalLoad); err != nil {
			return err
		}
		logger.Info("chart written", zap.String("path", opts.chart))
	}
	return nil
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// newLogger returns a development logger writing to w.
func newLogger(w io.Writer) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return zap.New(core, zap.Development())
}
