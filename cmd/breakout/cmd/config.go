package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantrail/breakout/config"
)

var configOut string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write the default strategy configuration to a file",
	Long: `Config emits the default multi-profile strategy configuration so it can
be edited and fed back to the backtest command with --config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if err := cfg.SaveToFile(configOut); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", configOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringVarP(&configOut, "out", "o", "strategy.yaml", "output path (.yaml/.yml or .json)")
}
