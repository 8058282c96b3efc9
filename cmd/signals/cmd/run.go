package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/signals/catalog"
	"github.com/rustyeddy/signals/pkg/id"
	"github.com/rustyeddy/signals/pricing"
	"github.com/rustyeddy/signals/stream"
	"github.com/rustyeddy/signals/telemetry"
)

type runOptions struct {
	sourceOptions
	output  string
	trace   bool
	metrics bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	o := &runOptions{}
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run indicators over a bar file",
		Long: `Feed CSV bars through one or more indicators and print one row per result:

  time,indicator,field=value[,field=value...]

Indicators come from a config file or from --indicator flags.

Examples:
  signals run -f signals.yaml
  signals run --bars eurusd.csv -i RSI -i ATR --interval 14
  cat eurusd.csv | signals run --bars - -i MACD --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, root, o)
		},
	}

	o.addFlags(runCmd)
	runCmd.Flags().StringVarP(&o.output, "output", "o", "", "write rows to this file instead of stdout")
	runCmd.Flags().BoolVar(&o.trace, "trace", false, "log every bar at debug level")
	runCmd.Flags().BoolVar(&o.metrics, "metrics", false, "print pipeline metrics to stderr when done")
	return runCmd
}

func runRun(cmd *cobra.Command, root *rootOptions, o *runOptions) error {
	cfg, err := o.load(cmd, root)
	if err != nil {
		return err
	}
	if o.output != "" {
		cfg.Output.Path = o.output
	}
	if o.metrics {
		cfg.Output.Metrics = true
	}
	if o.trace {
		cfg.Logging.Trace = true
		if root.logLevel == "" {
			cfg.Logging.Level = "debug"
		}
	}

	logger, err := telemetry.NewLogger(cmd.ErrOrStderr(), cfg.Logging.Level)
	if err != nil {
		return err
	}
	logger = logger.With().Str("run", id.New()).Logger()

	pipeline, err := catalog.BuildAll(cfg.Indicators)
	if err != nil {
		return err
	}

	r, err := openBars(cmd, cfg)
	if err != nil {
		return err
	}
	defer r.Close()

	bars := r.Stream()
	if cfg.Input.Instrument != "" {
		instrument := cfg.Input.Instrument
		bars = stream.Map(func(c pricing.Candle) pricing.Candle {
			c.Instrument = instrument
			return c
		})(bars)
	}

	var reg *prometheus.Registry
	var metrics *telemetry.Metrics
	if cfg.Output.Metrics {
		reg = prometheus.NewRegistry()
		metrics = telemetry.NewMetrics(reg)
		bars = telemetry.Count[pricing.Candle](metrics, "bars")(bars)
	}
	if cfg.Logging.Trace {
		bars = telemetry.Log[pricing.Candle](logger, "bars")(bars)
	}

	rows := pipeline(bars)
	if metrics != nil {
		rows = telemetry.Count[catalog.Row](metrics, "rows")(rows)
	}

	var out io.Writer = cmd.OutOrStdout()
	if cfg.Output.Path != "" {
		f, err := os.Create(cfg.Output.Path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	w := bufio.NewWriter(out)

	logger.Info().
		Str("bars", cfg.Input.Bars).
		Int("indicators", len(cfg.Indicators)).
		Msg("run started")

	count := 0
	err = stream.ForEach(rows, func(row catalog.Row) error {
		count++
		_, err := fmt.Fprintln(w, row.Format(cfg.Output.Precision))
		return err
	})
	if flushErr := w.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		logger.Error().Err(err).Int("rows", count).Msg("run failed")
		return fmt.Errorf("run: %w", err)
	}

	logger.Info().Int("rows", count).Msg("run complete")

	if reg != nil {
		return telemetry.WriteText(cmd.ErrOrStderr(), reg)
	}
	return nil
}
