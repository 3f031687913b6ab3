package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Cabral137/monitor-precos/config"
	"github.com/Cabral137/monitor-precos/internal/scraper"
	"github.com/Cabral137/monitor-precos/internal/store"
	"github.com/Cabral137/monitor-precos/internal/tracker"
	"github.com/Cabral137/monitor-precos/logger"
	"github.com/Cabral137/monitor-precos/services/cache"
	"github.com/Cabral137/monitor-precos/services/history"
	"github.com/Cabral137/monitor-precos/services/products"
	"github.com/Cabral137/monitor-precos/services/publisher"
	"github.com/Cabral137/monitor-precos/services/worker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	if cfg.ScrapeAPIKey == "" {
		log.Warn().Msg("No render API key configured, falling back to direct fetches")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Dur("check_interval", cfg.CheckInterval).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize services
	services := initializeServices(ctx, cfg)
	defer services.Cleanup()

	// Build the store profile registry
	registry := store.NewRegistry(store.DefaultProfiles()...)
	log.Info().
		Int("store_count", registry.Len()).
		Msg("Loaded store profiles")

	// Assemble the check pipeline
	fetcher := scraper.NewRenderClient(
		cfg.ScrapeAPIURL,
		cfg.ScrapeAPIKey,
		cfg.ScrapeCountry,
		services.Cache,
		cfg.FetchBlockTime,
	)
	checker := tracker.New(registry, fetcher, services.History, services.Publisher)

	// Create and start worker
	w := worker.NewWorker(
		ctx,
		products.NewFileSource(cfg.ProductsFile),
		checker,
		logger.ForWorker(),
		cfg.CheckInterval,
	)

	// Start worker in a goroutine
	workerDone := make(chan error, 1)
	go func() {
		log.Info().Msg("Starting price tracker worker")
		workerDone <- w.Start()
	}()

	// Wait for shutdown signal or worker error
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	case err := <-workerDone:
		if err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("Worker exited with error")
		} else {
			log.Info().Msg("Worker exited normally")
		}
	}

	// Graceful shutdown
	log.Info().Msg("Shutting down gracefully...")
}

// Services holds all the initialized services
type Services struct {
	Cache     cache.CacheService
	History   history.Store
	Publisher publisher.Publisher
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		s.Publisher.Close()
	}
	if s.History != nil {
		s.History.Close()
	}
}

// initializeServices initializes all required services
func initializeServices(ctx context.Context, cfg *config.Config) *Services {
	cacheService := cache.NewMemcacheService(cfg.MemcacheAddr)
	logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)

	historyStore := history.NewRedisStore(cfg.RedisAddr, cfg.RedisDB, cfg.RedisHistoryPrefix)
	logger.Info("Connected to Redis at %s (DB: %d, history prefix: %s)",
		cfg.RedisAddr, cfg.RedisDB, cfg.RedisHistoryPrefix)

	redisPublisher := publisher.NewRedisPublisher(
		ctx,
		cfg.RedisAddr,
		cfg.RedisDB,
		cfg.RedisStream,
		cfg.RedisStreamMaxLength,
	)
	logger.Info("Publishing alerts to stream %s", cfg.RedisStream)

	return &Services{
		Cache:     cacheService,
		History:   historyStore,
		Publisher: redisPublisher,
	}
}
