package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Consolidation-pattern breakout scanner and backtester",
	Long: `Breakout scans OHLC(V) bar series for geometric consolidation patterns
(triangles, flags, pennants, volatility contractions, high-tight flags,
flat bases) and backtests risk-sized breakout trades against them.

It provides tools for:
  - Detecting pattern instances with trendline-quality scoring
  - Backtesting multi-profile breakout strategies over CSV bar data
  - Regime and relative-strength filtering against a benchmark series
  - Journaling trades and equity to SQLite or CSV`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env next to the binary may carry overrides; missing is fine.
		_ = godotenv.Load()

		lvl, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(lvl).
			With().Timestamp().Logger()
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
}
