package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"jobmatch-engine/internal/config"
	"jobmatch-engine/internal/ingest"
	"jobmatch-engine/internal/ingest/boardapi"
	"jobmatch-engine/internal/logger"
	"jobmatch-engine/internal/notify"
	"jobmatch-engine/internal/recommend"
	"jobmatch-engine/internal/scheduler"
	"jobmatch-engine/internal/storage/postgres"
	"jobmatch-engine/internal/storage/redis"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting job matcher",
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("refresh_interval", cfg.RefreshInterval),
		zap.Int("match_limit", cfg.MatchLimit),
	)

	log.Info("connecting to PostgreSQL...")
	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer store.Close()

	log.Info("PostgreSQL connected successfully")

	log.Info("connecting to Redis...")
	cache, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer cache.Close()

	log.Info("Redis connected successfully")

	var channels []notify.Channel
	if cfg.TelegramToken != "" {
		telegram, err := notify.NewTelegramChannel(cfg.TelegramToken, log)
		if err != nil {
			log.Fatal("failed to create telegram channel", zap.Error(err))
		}
		channels = append(channels, telegram)
		log.Info("telegram delivery channel enabled")
	} else {
		log.Warn("TELEGRAM_TOKEN not set, telegram notifications disabled")
	}

	router := notify.NewRouter(store, cache, log, channels...)
	maintainer := recommend.New(store, router, cache, cache, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	matchScheduler := scheduler.New(store, maintainer, cfg.RefreshInterval, cfg.MatchLimit, log)
	matchScheduler.WithDigests(router)

	if cfg.JobBoardURL != "" {
		boardClient := boardapi.NewClient(cfg.JobBoardURL, cfg.JobBoardTimeout, log)
		source := boardapi.NewSource("board", boardClient, boardapi.SearchParams{
			Text: cfg.JobBoardQuery,
		}, log)
		ingestor := ingest.New(store, cfg.JobStaleAfter, log)
		matchScheduler.WithIngest(ingestor, source, cfg.IngestInterval)
		log.Info("job board ingest enabled",
			zap.String("url", cfg.JobBoardURL),
			zap.Duration("interval", cfg.IngestInterval),
		)
	} else {
		log.Warn("JOB_BOARD_URL not set, job ingest disabled")
	}

	if err := matchScheduler.Start(ctx); err != nil {
		log.Fatal("failed to start scheduler", zap.Error(err))
	}

	log.Info("matcher is running...")
	log.Info("press Ctrl+C to stop")

	sig := <-sigChan
	log.Info("received shutdown signal", zap.String("signal", sig.String()))
	cancel()

	log.Info("shutting down gracefully...")
	matchScheduler.Stop()

	log.Info("matcher stopped")
}
