package cmd

import (
	"fmt"
	"io"
	"os"

	"itproger-bot/config"
	"itproger-bot/fetcher"
	"itproger-bot/scraper"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagEnvFile string
)

var rootCmd = &cobra.Command{
	Use:   "itproger-bot",
	Short: "Telegram bot for itproger.com news",
	Long: `itproger-bot scrapes the itproger.com news section and serves it to
Telegram users as paginated article lists, article cards and full texts.

Run without a subcommand to start the bot.`,
	SilenceUsage: true,
	RunE:         runBot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "config.yaml", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "path to .env file with secrets")

	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(articleCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads and validates the config file named by --config
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger: human readable on a terminal, JSON otherwise
func newLogger(out io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// newScraper wires the colly fetcher into the scraper facade
func newScraper(cfg *config.Config, logger zerolog.Logger) (*scraper.Client, error) {
	f := fetcher.NewCollyFetcher(cfg.Site.UserAgent, cfg.Site.Timeout, logger.With().Str("component", "fetcher").Logger())
	return scraper.NewClient(cfg, f, logger.With().Str("component", "scraper").Logger())
}
