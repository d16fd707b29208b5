// Package main is the entry point for the Bexly Telegram bot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bexly/bexly-bot/internal/ai"
	"github.com/bexly/bexly-bot/internal/bot"
	"github.com/bexly/bexly-bot/internal/config"
	"github.com/bexly/bexly-bot/internal/database"
	"github.com/bexly/bexly-bot/internal/exchange"
	"github.com/bexly/bexly-bot/internal/logger"
	"github.com/bexly/bexly-bot/internal/telemetry"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("bexly-bot %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	if cfg.LogFormat == config.LogFormatJSON {
		logger.SetJSON()
	}
	logger.SetLevel(cfg.LogLevel)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, version)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to set up tracing")
	}
	defer func() {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Log.Warn().Err(err).Msg("Tracer shutdown failed")
		}
	}()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Log.Info().Msg("Database initialized successfully")

	provider, err := ai.New(cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to create AI provider")
	}
	logger.Log.Info().Str("provider", provider.Name()).Msg("AI provider configured")

	rates := exchange.NewCachedSource(
		exchange.NewClient(cfg.ExchangeRateURL, 10*time.Second),
		12*time.Hour,
	)
	converter := exchange.NewConverter(rates)

	telegramBot, err := bot.New(cfg, pool, provider, converter)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to create bot")
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Log.Info().Msg("Shutting down...")
		cancel()
	}()

	telegramBot.Start(ctx)
}
