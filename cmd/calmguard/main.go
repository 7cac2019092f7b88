package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/couchcryptid/calm-guard-drill/internal/adapter/gemini"
	httpadapter "github.com/couchcryptid/calm-guard-drill/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/calm-guard-drill/internal/adapter/kafka"
	"github.com/couchcryptid/calm-guard-drill/internal/config"
	"github.com/couchcryptid/calm-guard-drill/internal/domain"
	"github.com/couchcryptid/calm-guard-drill/internal/observability"
	"github.com/couchcryptid/calm-guard-drill/internal/pipeline"
	"github.com/couchcryptid/calm-guard-drill/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	rules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		logger.Error("failed to load rules", "path", cfg.RulesFile, "error", err)
		os.Exit(1)
	}
	classifier, err := domain.NewNarrativeClassifier(rules.Narrative)
	if err != nil {
		logger.Error("invalid narrative rules", "error", err)
		os.Exit(1)
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	scanner := domain.NewScanner(domain.DefaultRegistry(), domain.NewSeededRand(seed),
		domain.WithRelevanceRules(rules.Relevance))
	logger.Info("radar scanner ready", "seed", seed, "cities", scanner.Registry().Len())

	var ready readinessGroup

	// Session store (SESSION_BACKEND: memory | redis).
	var store session.Store
	var redisClient *redis.Client
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		redisStore := session.NewRedisStore(redisClient, cfg.SessionTTL)
		store = redisStore
		ready = append(ready, redisStore)
		logger.Info("redis session store", "addr", cfg.RedisAddr, "db", cfg.RedisDB, "ttl", cfg.SessionTTL)
	default:
		store = session.NewMemoryStore(cfg.SessionCacheSize, cfg.SessionTTL, nil)
		logger.Info("in-memory session store", "max_entries", cfg.SessionCacheSize, "ttl", cfg.SessionTTL)
	}
	sessions := session.NewManager(store, domain.DefaultQuestionBank(), logger, metrics)

	// Narrative generator (feature-flagged via GEMINI_ENABLED / GEMINI_API_KEY).
	var generator domain.NarrativeGenerator
	if cfg.GeminiEnabled {
		generator = gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, cfg.GeminiTimeout, logger, metrics)
		metrics.GenerationEnabled.Set(1)
		logger.Info("gemini narrative generation enabled", "model", cfg.GeminiModel, "timeout", cfg.GeminiTimeout)
	} else {
		logger.Info("gemini narrative generation disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Narrative classification pipeline (enabled via KAFKA_BROKERS / PIPELINE_ENABLED).
	var reader *kafkaadapter.Reader
	var writer *kafkaadapter.Writer
	if cfg.PipelineEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		writer = kafkaadapter.NewWriter(cfg, logger)
		transformer := pipeline.NewTransformer(classifier, nil, logger)
		p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)
		ready = append(ready, p)

		go func() {
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
	} else {
		logger.Info("narrative pipeline disabled")
	}

	api := httpadapter.NewAPI(scanner, classifier, generator, sessions, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, cfg.CORSOrigins, api, ready, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
