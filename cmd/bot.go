package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"itproger-bot/bot"
	"itproger-bot/config"
	"itproger-bot/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
)

// pollTimeout is the long polling timeout in seconds
const pollTimeout = 60

var errNoToken = errors.New(config.BotTokenEnv + " is not set")

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot (default)",
	RunE:  runBot,
}

func runBot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.LoadEnv(flagEnvFile); err != nil {
		return err
	}
	if cfg.BotToken == "" {
		return errNoToken
	}

	logger := newLogger(os.Stderr, cfg.Log.Level)

	client, err := newScraper(cfg, logger)
	if err != nil {
		return err
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return fmt.Errorf("failed to initialize bot: %w", err)
	}
	logger.Info().Str("account", api.Self.UserName).Msg("authorized")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout
	updates := api.GetUpdatesChan(u)

	b := bot.New(api, client, session.NewStore(), cfg.Limits.ArticlesPerPage, logger.With().Str("component", "bot").Logger())

	go func() {
		<-ctx.Done()
		api.StopReceivingUpdates()
	}()

	logger.Info().Msg("bot started")
	b.Run(ctx, updates)

	if errors.Is(ctx.Err(), context.Canceled) {
		logger.Info().Msg("shutting down")
	}
	return nil
}
