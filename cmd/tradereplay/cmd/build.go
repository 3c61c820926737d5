package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradereplay/config"
	"github.com/rustyeddy/tradereplay/journal"
	"github.com/rustyeddy/tradereplay/notify"
	"github.com/rustyeddy/tradereplay/portfolio"
	"github.com/rustyeddy/tradereplay/records"
	"github.com/rustyeddy/tradereplay/site"
	"github.com/rustyeddy/tradereplay/stats"
	"github.com/rustyeddy/tradereplay/trades"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the animated replay page from archived backtest data",
	Long: `Build loads the portfolio_state and trade_history datasets, reconciles
them into a time-ordered replay, and writes a standalone HTML page.

Examples:
  tradereplay build
  tradereplay build --data replay/data --output replay/index.html
  tradereplay build -f replay.yaml --notify`,
	RunE: runBuild,
}

var (
	buildDataDir string
	buildOutput  string
	buildLabel   string
	buildNotify  bool
)

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildDataDir, "data", "d", "", "directory with portfolio_state/trade_history files")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "path to write the HTML file")
	buildCmd.Flags().StringVar(&buildLabel, "label", "", "data label shown on the page (default: data dir name)")
	buildCmd.Flags().BoolVar(&buildNotify, "notify", false, "send a run summary to the configured webhook")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if buildDataDir != "" {
		cfg.Data.Dir = buildDataDir
	}
	if buildOutput != "" {
		cfg.Site.Output = buildOutput
	}
	if buildLabel != "" {
		cfg.Site.Label = buildLabel
	}

	result, err := runPipeline(cfg)
	if err != nil {
		return err
	}

	page := site.Page{
		DataLabel: result.Label,
		Points:    result.Points,
		Events:    result.Events,
		Rounds:    result.Rounds,
		Summary:   result.Summary,
	}
	if err := site.WriteFile(cfg.Site.Output, page); err != nil {
		return fmt.Errorf("write site: %w", err)
	}

	if cfg.Journal.Type != "" {
		if err := writeJournal(cfg, result); err != nil {
			return fmt.Errorf("journal: %w", err)
		}
	}

	if buildNotify {
		if err := sendSummary(cmd.Context(), cfg, result); err != nil {
			return err
		}
	}

	fmt.Printf("Trade replay written to %s\n", cfg.Site.Output)
	return nil
}

// pipelineResult bundles the immutable outputs of one reconciliation run.
type pipelineResult struct {
	Label   string
	Points  []portfolio.Point
	Events  []trades.Event
	Rounds  []trades.Completed
	Summary stats.Summary
}

// runPipeline loads both datasets and runs the four pipeline stages.
func runPipeline(cfg *config.Config) (pipelineResult, error) {
	dataDir := cfg.Data.Dir

	portfolioRows, err := records.Load(filepath.Join(dataDir, "portfolio_state"))
	if err != nil {
		return pipelineResult{}, fmt.Errorf("load portfolio_state: %w", err)
	}
	tradeRows, err := records.Load(filepath.Join(dataDir, "trade_history"))
	if err != nil {
		return pipelineResult{}, fmt.Errorf("load trade_history: %w", err)
	}
	log.Debug().
		Int("portfolio_rows", len(portfolioRows)).
		Int("trade_rows", len(tradeRows)).
		Str("dir", dataDir).
		Msg("datasets loaded")

	points, err := portfolio.BuildPoints(portfolioRows)
	if err != nil {
		return pipelineResult{}, err
	}
	events, err := trades.BuildEvents(tradeRows, points)
	if err != nil {
		return pipelineResult{}, err
	}
	rounds := trades.Pair(events)
	summary := stats.Compute(points, rounds)

	log.Info().
		Int("points", len(points)).
		Int("events", len(events)).
		Int("trades", len(rounds)).
		Msg("replay reconstructed")

	label := cfg.Site.Label
	if label == "" {
		label = filepath.Base(dataDir)
	}

	return pipelineResult{
		Label:   label,
		Points:  points,
		Events:  events,
		Rounds:  rounds,
		Summary: summary,
	}, nil
}

// writeJournal persists the run through the configured journal backend.
func writeJournal(cfg *config.Config, result pipelineResult) error {
	var (
		j   journal.Journal
		err error
	)
	switch cfg.Journal.Type {
	case "sqlite":
		j, err = journal.NewSQLite(cfg.Journal.DBPath)
	case "csv":
		j, err = journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.SnapshotsFile)
	default:
		return fmt.Errorf("unknown journal type %q", cfg.Journal.Type)
	}
	if err != nil {
		return err
	}
	defer j.Close()

	if err := journal.RecordRun(j, result.Points, result.Rounds); err != nil {
		return err
	}
	log.Info().Str("type", cfg.Journal.Type).Msg("run journaled")
	return nil
}

func sendSummary(ctx context.Context, cfg *config.Config, result pipelineResult) error {
	if cfg.Notify.Webhook == "" {
		return fmt.Errorf("notify: no webhook configured")
	}
	secret := ""
	if cfg.Notify.SecretEnv != "" {
		secret = os.Getenv(cfg.Notify.SecretEnv)
	}

	bot := notify.New(cfg.Notify.Webhook, secret)
	if err := bot.SendText(ctx, summaryMessage(result)); err != nil {
		return err
	}
	log.Info().Msg("summary sent")
	return nil
}

func summaryMessage(result pipelineResult) string {
	s := result.Summary
	lines := []string{
		fmt.Sprintf("Backtest replay: %s", result.Label),
		fmt.Sprintf("Final equity %s (net %s)", stats.Currency(s.EndEquity), stats.Percent(s.NetReturnPct, true)),
		fmt.Sprintf("HODL %s, alpha %s", stats.Percent(s.HodlReturnPct, true), stats.Percent(s.AlphaVsHodl, true)),
		fmt.Sprintf("%d trades, win rate %s, max drawdown %s", s.TotalTrades, stats.Percent(s.WinRatePct, false), stats.Percent(s.MaxDrawdownPct, false)),
		fmt.Sprintf("Session %s", stats.Runtime(s.RuntimeHours)),
	}
	return strings.Join(lines, "\n")
}
