package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/signals/catalog"
	"github.com/rustyeddy/signals/indicators"
	"github.com/rustyeddy/signals/pricing"
	"github.com/rustyeddy/signals/telemetry"
)

func newLastCmd(root *rootOptions) *cobra.Command {
	o := &sourceOptions{}
	lastCmd := &cobra.Command{
		Use:   "last",
		Short: "Print the latest value of each indicator",
		Long: `Update every indicator bar by bar and print its final value, or how many
bars it still needs.

Example:
  signals last --bars eurusd.csv -i RSI -i ADX`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLast(cmd, root, o)
		},
	}
	o.addFlags(lastCmd)
	return lastCmd
}

func runLast(cmd *cobra.Command, root *rootOptions, o *sourceOptions) error {
	cfg, err := o.load(cmd, root)
	if err != nil {
		return err
	}
	logger, err := telemetry.NewLogger(cmd.ErrOrStderr(), cfg.Logging.Level)
	if err != nil {
		return err
	}

	trackers := make([]*indicators.Tracker[pricing.Candle, catalog.Row], 0, len(cfg.Indicators))
	for _, spec := range cfg.Indicators {
		tr, err := catalog.Track(spec)
		if err != nil {
			return err
		}
		trackers = append(trackers, tr)
	}

	r, err := openBars(cmd, cfg)
	if err != nil {
		return err
	}
	defer r.Close()

	bars := 0
	for {
		c, ok, err := r.Next()
		if err != nil {
			return fmt.Errorf("read bars: %w", err)
		}
		if !ok {
			break
		}
		bars++
		for _, tr := range trackers {
			tr.Update(c)
		}
	}
	logger.Debug().Int("bars", bars).Msg("bars read")

	out := cmd.OutOrStdout()
	for _, tr := range trackers {
		tr.Close()
		if err := tr.Err(); err != nil {
			return err
		}
		if !tr.Ready() {
			fmt.Fprintf(out, "%s: not ready after %d bars (warmup %d)\n", tr.Name(), bars, tr.Warmup())
			continue
		}
		fmt.Fprintln(out, tr.Value().Format(cfg.Output.Precision))
	}
	return nil
}
