package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradereplay/config"
)

var rootCmd = &cobra.Command{
	Use:   "tradereplay",
	Short: "Rebuild and visualize a trading backtest from its archived logs",
	Long: `Tradereplay reconstructs a coherent, time-ordered narrative of a trading
backtest from two independently produced logs: periodic portfolio snapshots
and discrete trade events.

It provides tools for:
  - Building an animated replay page from archived CSV/JSON data
  - Reconciling entry/exit trade events into completed round-trips
  - Computing performance statistics against a BTC buy-and-hold benchmark
  - Journaling reconciled trades to SQLite or CSV for later queries
  - Pushing run summaries to a DingTalk-style webhook`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A local .env may carry the webhook secret; absence is fine.
		_ = godotenv.Load()
		setupLogger()
	},
}

var (
	cfgPath   string
	logLevel  string
	logFormat string

	log zerolog.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "f", "", "path to YAML/JSON config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console or json)")
}

func setupLogger() {
	level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}

	if logFormat == "json" {
		log = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
		return
	}
	log = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).Level(level).With().Timestamp().Logger()
}

// loadConfig returns the file config when -f was given, defaults otherwise.
func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cfgPath)
}
