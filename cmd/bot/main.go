package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/eliseohh/qrcrafterbot/internal/bot"
	"github.com/eliseohh/qrcrafterbot/internal/config"
	"github.com/eliseohh/qrcrafterbot/internal/logging"
	"github.com/eliseohh/qrcrafterbot/internal/router"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:           "qrcrafterbot",
		Short:         "Telegram bot for the QRCrafter Mini App",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), checkOnly)
		},
	}
	cmd.Flags().BoolVar(&checkOnly, "check-config", false, "validate the configuration and exit")
	return cmd
}

func run(ctx context.Context, checkOnly bool) error {
	cfg, err := config.Load()
	if err != nil {
		log := logging.New(os.Stderr, slog.LevelInfo, "text")
		if errors.Is(err, config.ErrMissingToken) {
			log.Error("FATAL: the TELEGRAM_BOT_TOKEN environment variable is not set. Cannot start bot.")
		} else {
			log.Error("FATAL: invalid configuration", "err", err)
		}
		return err
	}

	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	r := router.New(router.Links{WebApp: cfg.WebAppURL, Rating: cfg.RatingURL})
	if checkOnly {
		log.Info("configuration ok", "web_app_url", cfg.WebAppURL, "rating_url", cfg.RatingURL)
		return nil
	}

	b, err := bot.New(cfg, r, log)
	if err != nil {
		log.Error("bot init failed", "err", err)
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("QRCrafter Bot is starting polling...")
	b.Start(ctx)
	return nil
}
