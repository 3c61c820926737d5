package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradereplay/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print performance statistics for an archived backtest",
	Long: `Stats runs the reconciliation pipeline and prints the summary metrics
without writing the replay page.

Examples:
  tradereplay stats
  tradereplay stats --data replay/data`,
	RunE: runStats,
}

var statsDataDir string

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsDataDir, "data", "d", "", "directory with portfolio_state/trade_history files")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if statsDataDir != "" {
		cfg.Data.Dir = statsDataDir
	}

	result, err := runPipeline(cfg)
	if err != nil {
		return err
	}
	s := result.Summary

	fmt.Printf("Backtest replay: %s\n\n", result.Label)
	fmt.Printf("  %-22s %s\n", "Start equity", stats.Currency(s.StartEquity))
	fmt.Printf("  %-22s %s\n", "Final equity", stats.Currency(s.EndEquity))
	fmt.Printf("  %-22s %s\n", "Net return", stats.Percent(s.NetReturnPct, true))
	fmt.Printf("  %-22s %s\n", "HODL benchmark", stats.Currency(s.HodlEnd))
	fmt.Printf("  %-22s %s\n", "HODL return", stats.Percent(s.HodlReturnPct, true))
	fmt.Printf("  %-22s %s\n", "Alpha vs HODL", stats.Percent(s.AlphaVsHodl, true))
	fmt.Printf("  %-22s %s\n", "Max drawdown", stats.Percent(s.MaxDrawdownPct, false))
	fmt.Printf("  %-22s %d\n", "Trades", s.TotalTrades)
	fmt.Printf("  %-22s %s\n", "Win rate", stats.Percent(s.WinRatePct, false))
	fmt.Printf("  %-22s %s\n", "Session", stats.Runtime(s.RuntimeHours))
	return nil
}
