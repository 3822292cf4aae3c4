package main

// @title Carbon Emission Calculator API
// @version 1.0.0
// @description Flight emissions per the ICAO methodology, surface mode comparison and a cached route duration service.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/samali323/carbonemissioncalc-sub000/docs"
	"github.com/samali323/carbonemissioncalc-sub000/internal/config"
	httpDelivery "github.com/samali323/carbonemissioncalc-sub000/internal/delivery/http"
	"github.com/samali323/carbonemissioncalc-sub000/internal/delivery/http/handler"
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain/repository"
	"github.com/samali323/carbonemissioncalc-sub000/internal/infrastructure/routing"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/logger"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/tracing"
	"github.com/samali323/carbonemissioncalc-sub000/internal/refdata"
	"github.com/samali323/carbonemissioncalc-sub000/internal/repository/cache"
	"github.com/samali323/carbonemissioncalc-sub000/internal/repository/postgres"
	redisRepo "github.com/samali323/carbonemissioncalc-sub000/internal/repository/redis"
	"github.com/samali323/carbonemissioncalc-sub000/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Carbon Emission Calculator")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.Duration("route_ttl", cfg.Cache.RouteTTL),
	)

	shutdownTracing, err := tracing.Init(context.Background(), cfg.Tracing, cfg.Server.Env, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	// 3. Reference data
	ref, err := refdata.Load(cfg.ReferenceDataPath)
	if err != nil {
		log.Fatal("Failed to load reference data", zap.Error(err))
	}
	log.Info("Reference data loaded",
		zap.String("path", cfg.ReferenceDataPath),
		zap.Strings("aircraft", ref.Aircraft()))

	// 4. Storage
	checks := make(map[string]handler.HealthChecker)
	var (
		db          *postgres.DB
		redisClient *cache.Redis
		routeRepo   repository.RouteCacheRepository
		streamRepo  repository.StreamRepository
	)

	if cfg.Cache.Backend == "redis" || cfg.Worker.Enabled {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		checks["redis"] = redisClient
	}

	switch cfg.Cache.Backend {
	case "postgres":
		db, err = postgres.New(cfg, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		checks["postgres"] = db
		routeRepo = postgres.NewRouteCacheRepository(db)
	case "redis":
		routeRepo = cache.NewRouteCacheRepository(redisClient, 2*cfg.Cache.RouteTTL)
	default:
		log.Fatal("Unknown route cache backend", zap.String("backend", cfg.Cache.Backend))
	}

	// Warm requests go to the worker when it runs, otherwise they are
	// resolved inline.
	if cfg.Worker.Enabled {
		streamRepo = redisRepo.NewStreamRepository(redisClient.Client(), redisRepo.StreamOptions{
			Count: int64(cfg.Worker.BatchSize),
			Block: cfg.Worker.StreamReadTimeout,
		}, log)
	}

	log.Info("Repositories initialized")

	// 5. Routing providers
	router, err := routing.NewFromConfig(cfg, log)
	if err != nil {
		log.Fatal("Failed to configure routing providers", zap.Error(err))
	}

	// 6. Use cases
	routeDurationUC, err := usecase.NewRouteDurationUseCase(routeRepo, router, usecase.RouteDurationOptions{
		TTL:           cfg.Cache.RouteTTL,
		LookupTimeout: cfg.Routing.LookupTimeout,
		MemoryEntries: cfg.Cache.MemoryEntries,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize route cache", zap.Error(err))
	}

	emissionsUC := usecase.NewEmissionsUseCase(ref, routeDurationUC, log)
	routeUC := usecase.NewRouteUseCase(ref, routeDurationUC, streamRepo, log)

	log.Info("Use cases initialized")

	// 7. HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewEmissionsHandler(emissionsUC, log),
		handler.NewRouteHandler(routeUC, log),
		handler.NewHealthHandler(checks, log),
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if db != nil {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL", zap.Error(err))
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	if err := shutdownTracing(ctx); err != nil {
		log.Error("Failed to flush traces", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
