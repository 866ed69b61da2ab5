package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/quantrail/breakout/backtest"
	"github.com/quantrail/breakout/config"
	"github.com/quantrail/breakout/journal"
	"github.com/quantrail/breakout/market"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a pattern-breakout backtest over a CSV bar series",
	Long: `Backtest loads a bar CSV (time,open,high,low,close[,volume]), an optional
benchmark CSV for regime and relative-strength context, and a YAML/JSON
strategy configuration, then runs the detection/breakout/sizing pipeline
bar by bar.

Example:
  breakout backtest --bars data/nvda_daily.csv --benchmark data/spy_daily.csv --config strategy.yaml`,
	RunE: runBacktest,
}

var (
	btBarsPath   string
	btBenchPath  string
	btConfigPath string
	btSymbol     string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btBarsPath, "bars", "b", "", "path to bar CSV (time,open,high,low,close[,volume]) (required)")
	backtestCmd.Flags().StringVar(&btBenchPath, "benchmark", "", "path to benchmark bar CSV (optional, enables regime/RS filters)")
	backtestCmd.Flags().StringVarP(&btConfigPath, "config", "c", "", "path to strategy config (YAML or JSON); defaults apply if omitted")
	backtestCmd.Flags().StringVarP(&btSymbol, "symbol", "s", "SYM", "symbol tag used in the journal")

	backtestCmd.MarkFlagRequired("bars")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if btConfigPath != "" {
		var err error
		cfg, err = config.LoadFromFile(btConfigPath)
		if err != nil {
			return err
		}
	}

	series, err := market.LoadCSV(btBarsPath, btSymbol)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	var bench *market.Series
	if btBenchPath != "" {
		bench, err = market.LoadCSV(btBenchPath, "BENCH")
		if err != nil {
			return fmt.Errorf("load benchmark: %w", err)
		}
	}

	profiles, err := cfg.PatternProfiles()
	if err != nil {
		return err
	}

	engine, err := backtest.New(series, bench, profiles, cfg.BacktestConfig())
	if err != nil {
		return err
	}
	engine.SetLogger(log.Logger)

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return err
	}
	if j != nil {
		defer j.Close()
		engine.SetJournal(j)
	}

	log.Info().
		Int("bars", series.Len()).
		Int("profiles", len(profiles)).
		Str("bars_file", btBarsPath).
		Msg("starting backtest")

	result, err := engine.Run()
	if err != nil {
		return err
	}

	fmt.Printf("\nBacktest Complete!\n")
	fmt.Printf("  Capital:       $%.2f -> $%.2f\n", result.InitialCapital, result.EndingCapital)
	fmt.Printf("  Trades:        %d (%d wins / %d losses)\n", len(result.Trades), result.Wins, result.Losses)
	fmt.Printf("  Win Rate:      %.1f%%\n", 100*result.WinRate)
	fmt.Printf("  Profit Factor: %.2f\n", result.ProfitFactor)
	fmt.Printf("  Max Drawdown:  %.1f%%\n", 100*result.MaxDrawdown)

	return nil
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "", "none":
		return nil, nil
	case "sqlite":
		j, err := journal.NewSQLite(jc.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open journal db: %w", err)
		}
		return j, nil
	case "csv":
		j, err := journal.NewCSV(jc.TradesFile, jc.EquityFile)
		if err != nil {
			return nil, fmt.Errorf("open journal csv: %w", err)
		}
		return j, nil
	}
	return nil, fmt.Errorf("unknown journal type %q", jc.Type)
}
