package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradereplay/journal"
	"github.com/rustyeddy/tradereplay/stats"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Persist and query reconciled trade data",
	Long: `Query and maintain the SQLite journal of reconciled round-trips.

Subcommands:
  import - Run the pipeline and store the results
  trade  - Get details of a specific trade by ID
  day    - List trades closed on a specific day
  open   - List positions that never closed

Examples:
  tradereplay journal import --data replay/data
  tradereplay journal day 2024-01-15
  tradereplay journal open`,
}

var journalImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Run the pipeline and store snapshots and trades",
	Args:  cobra.NoArgs,
	RunE:  runJournalImport,
}

var journalTradeCmd = &cobra.Command{
	Use:   "trade <trade-id>",
	Short: "Get details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrade,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List trades closed on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalOpenCmd = &cobra.Command{
	Use:   "open",
	Short: "List positions that never closed",
	Args:  cobra.NoArgs,
	RunE:  runJournalOpen,
}

var (
	journalDBPath  string
	journalDataDir string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalImportCmd)
	journalCmd.AddCommand(journalTradeCmd)
	journalCmd.AddCommand(journalDayCmd)
	journalCmd.AddCommand(journalOpenCmd)

	journalCmd.PersistentFlags().StringVar(&journalDBPath, "db", "./tradereplay.sqlite", "path to SQLite journal DB")
	journalImportCmd.Flags().StringVarP(&journalDataDir, "data", "d", "", "directory with portfolio_state/trade_history files")
}

func runJournalImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if journalDataDir != "" {
		cfg.Data.Dir = journalDataDir
	}

	result, err := runPipeline(cfg)
	if err != nil {
		return err
	}

	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	if err := journal.RecordRun(j, result.Points, result.Rounds); err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	fmt.Printf("Journaled %d snapshots and %d trades to %s\n",
		len(result.Points), len(result.Rounds), journalDBPath)
	return nil
}

func runJournalTrade(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	rec, err := j.GetTrade(args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	printTrade(rec)
	return nil
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	start, end, err := dayBounds(time.Local, args[0])
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	recs, err := j.ListTradesClosedBetween(start, end)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	if len(recs) == 0 {
		fmt.Println("No trades closed on", args[0])
		return nil
	}
	for _, rec := range recs {
		printTrade(rec)
	}
	return nil
}

func runJournalOpen(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	recs, err := j.ListOpenTrades()
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	if len(recs) == 0 {
		fmt.Println("No open positions")
		return nil
	}
	for _, rec := range recs {
		printTrade(rec)
	}
	return nil
}

func printTrade(rec journal.TradeRecord) {
	exit := "open"
	if rec.ExitTime != nil {
		exit = rec.ExitTime.Format(time.RFC3339)
	}
	fmt.Printf("%s  %s %s  entry %s @ %s  exit %s @ %s  pnl %s  %s\n",
		rec.TradeID,
		rec.Coin,
		rec.Side,
		rec.EntryTime.Format(time.RFC3339),
		stats.Currency(rec.EntryPrice),
		exit,
		stats.Currency(rec.ExitPrice),
		stats.Currency(rec.PnL),
		rec.ExitReason,
	)
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)
	return start, end, nil
}
