package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/signals/config"
	"github.com/rustyeddy/signals/pricing"
)

// sourceOptions are the flags shared by commands that read bars.
type sourceOptions struct {
	configPath string
	bars       string
	indicators []string
	interval   int
	precision  int32
}

func (o *sourceOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.configPath, "config", "f", "", "path to config file (YAML or JSON)")
	cmd.Flags().StringVarP(&o.bars, "bars", "b", "", "bars CSV file, - for stdin")
	cmd.Flags().StringSliceVarP(&o.indicators, "indicator", "i", nil, "indicator name, repeatable (see 'signals list')")
	cmd.Flags().IntVar(&o.interval, "interval", 0, "interval for every --indicator (0 for defaults)")
	cmd.Flags().Int32Var(&o.precision, "precision", 5, "decimal places in output (0 for exact)")
}

// load builds the configuration: config file or flags first, then
// environment overrides, then explicit flags.
func (o *sourceOptions) load(cmd *cobra.Command, root *rootOptions) (*config.Config, error) {
	var cfg *config.Config
	if o.configPath != "" {
		loaded, err := config.LoadFromFile(o.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	} else {
		if len(o.indicators) == 0 {
			return nil, fmt.Errorf("either --config or --indicator is required")
		}
		cfg = &config.Config{
			Output:  config.OutputConfig{Precision: o.precision},
			Logging: config.LoggingConfig{Level: "info"},
		}
		for _, name := range o.indicators {
			cfg.Indicators = append(cfg.Indicators, config.IndicatorSpec{Name: name, Interval: o.interval})
		}
	}

	if err := cfg.ApplyEnv(root.envFile); err != nil {
		return nil, err
	}

	if o.bars != "" {
		cfg.Input.Bars = o.bars
	}
	if cmd.Flags().Changed("precision") {
		cfg.Output.Precision = o.precision
	}
	if root.logLevel != "" {
		cfg.Logging.Level = root.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openBars opens the configured bar source.
func openBars(cmd *cobra.Command, cfg *config.Config) (*pricing.CSVReader, error) {
	if cfg.Input.Bars == "-" {
		return pricing.NewCSVReader(cmd.InOrStdin()), nil
	}
	r, err := pricing.OpenCSV(cfg.Input.Bars)
	if err != nil {
		return nil, fmt.Errorf("open bars: %w", err)
	}
	return r, nil
}
