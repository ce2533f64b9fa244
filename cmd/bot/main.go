package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"calorie-coach-bot/internal/common/config"
	"calorie-coach-bot/internal/common/logger"
	"calorie-coach-bot/internal/features/chat"
	"calorie-coach-bot/internal/features/profile/repository"
	filerepo "calorie-coach-bot/internal/features/profile/repository/file"
	memoryrepo "calorie-coach-bot/internal/features/profile/repository/memory"
	redisrepo "calorie-coach-bot/internal/features/profile/repository/redis"
	httpserver "calorie-coach-bot/internal/http"
	"calorie-coach-bot/internal/platform/gemini"
	"calorie-coach-bot/internal/platform/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet; a missing credential must still leave a
		// diagnostic and a non-zero exit.
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger.Init("calorie-coach-bot", cfg.Debug)
	logger.Info().Bool("debug", cfg.Debug).Str("store", cfg.Store.Backend).Msg("Starting calorie coach bot")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := buildStore(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize profile store")
	}

	// Surface a corrupt persisted document at startup instead of on the
	// first turn.
	if db, err := store.Load(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to load profile database")
	} else {
		logger.Info().Int("users", len(db.Users)).Msg("Profile database loaded")
	}

	classifier, err := gemini.NewClassifier(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize Gemini classifier")
	}

	tg := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.PollTimeout)
	me, err := tg.GetMe(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to validate bot token")
	}
	logger.Info().Str("bot", me.Username).Msg("Connected to Telegram")

	dispatcher := chat.NewDispatcher(store, tg, classifier)

	statusServer := httpserver.NewServer(store, cfg.Server.Port, cfg.Debug)
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Status server listening")
		if err := statusServer.Start(); err != nil {
			logger.Error().Err(err).Msg("Status server stopped")
		}
	}()

	poller := telegram.NewPoller(tg, cfg.Telegram.PollTimeout, func(ctx context.Context, ev telegram.Inbound) {
		dispatcher.HandleMessage(ctx, ev)
	})
	poller.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := statusServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Status server shutdown failed")
	}

	logger.Info().Msg("Shutdown complete")
}

func buildStore(cfg *config.Config) (repository.Repository, error) {
	switch cfg.Store.Backend {
	case "file":
		return filerepo.NewRepository(cfg.Store.Path), nil
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisrepo.NewRepository(client), nil
	case "memory":
		return memoryrepo.NewRepository(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}
