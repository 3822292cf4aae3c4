package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samali323/carbonemissioncalc-sub000/internal/config"
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain/repository"
	"github.com/samali323/carbonemissioncalc-sub000/internal/infrastructure/routing"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/logger"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/tracing"
	"github.com/samali323/carbonemissioncalc-sub000/internal/repository/cache"
	"github.com/samali323/carbonemissioncalc-sub000/internal/repository/postgres"
	redisRepo "github.com/samali323/carbonemissioncalc-sub000/internal/repository/redis"
	"github.com/samali323/carbonemissioncalc-sub000/internal/usecase"
	"github.com/samali323/carbonemissioncalc-sub000/internal/worker"
	"github.com/samali323/carbonemissioncalc-sub000/internal/worker/routewarm"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "route-warm-worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting route warm worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.String("cache_backend", cfg.Cache.Backend))

	shutdownTracing, err := tracing.Init(context.Background(), cfg.Tracing, cfg.Server.Env, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	// 3. Connect to Redis, which carries the warm stream in every setup
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Route cache backend
	var routeRepo repository.RouteCacheRepository
	switch cfg.Cache.Backend {
	case "postgres":
		db, err := postgres.New(cfg, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()
		routeRepo = postgres.NewRouteCacheRepository(db)
	case "redis":
		routeRepo = cache.NewRouteCacheRepository(redisClient, 2*cfg.Cache.RouteTTL)
	default:
		log.Fatal("Unknown route cache backend", zap.String("backend", cfg.Cache.Backend))
	}

	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), redisRepo.StreamOptions{
		Count: int64(cfg.Worker.BatchSize),
		Block: cfg.Worker.StreamReadTimeout,
	}, log)

	// 5. Use cases
	router, err := routing.NewFromConfig(cfg, log)
	if err != nil {
		log.Fatal("Failed to configure routing providers", zap.Error(err))
	}

	routeDurationUC, err := usecase.NewRouteDurationUseCase(routeRepo, router, usecase.RouteDurationOptions{
		TTL:           cfg.Cache.RouteTTL,
		LookupTimeout: cfg.Routing.LookupTimeout,
		MemoryEntries: cfg.Cache.MemoryEntries,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize route cache", zap.Error(err))
	}

	// 6. Workers
	warmWorker := routewarm.NewWorker(streamRepo, routeDurationUC, routewarm.Options{
		ConsumerGroup: cfg.Worker.ConsumerGroup,
		MaxRetries:    cfg.Worker.MaxRetries,
	}, log)

	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(warmWorker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Error("Failed to flush traces", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
