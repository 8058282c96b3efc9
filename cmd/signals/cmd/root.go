package cmd

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel string
	envFile  string
}

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "signals",
		Short: "Streaming technical indicators over price bars",
		Long: `Signals computes technical indicators over OHLCV bars with exact decimal
arithmetic.

It provides tools for:
  - Running indicators over CSV bar files
  - Reading the latest value of indicators
  - Generating and validating run configurations

Bars are CSV rows: time,open,high,low,close[,volume]`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file with SIGNALS_* overrides")

	rootCmd.AddCommand(
		newRunCmd(opts),
		newLastCmd(opts),
		newListCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}
