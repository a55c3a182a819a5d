package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SanyamBinayake/SIH-Demo/internal/adapters/cache"
	"github.com/SanyamBinayake/SIH-Demo/internal/adapters/database"
	"github.com/SanyamBinayake/SIH-Demo/internal/adapters/search"
	"github.com/SanyamBinayake/SIH-Demo/internal/api/handlers"
	"github.com/SanyamBinayake/SIH-Demo/internal/api/middleware"
	"github.com/SanyamBinayake/SIH-Demo/internal/api/routes"
	"github.com/SanyamBinayake/SIH-Demo/internal/application/services"
	"github.com/SanyamBinayake/SIH-Demo/internal/domain/providers"
	"github.com/SanyamBinayake/SIH-Demo/internal/domain/repositories"
	"github.com/SanyamBinayake/SIH-Demo/internal/infrastructure/clients/icd"
	"github.com/SanyamBinayake/SIH-Demo/internal/infrastructure/clients/postgres"
	"github.com/SanyamBinayake/SIH-Demo/internal/infrastructure/clients/redis"
	"github.com/SanyamBinayake/SIH-Demo/internal/infrastructure/clients/typesense"
	"github.com/SanyamBinayake/SIH-Demo/internal/infrastructure/observability"
	"github.com/SanyamBinayake/SIH-Demo/internal/mapping"
	"github.com/SanyamBinayake/SIH-Demo/internal/terminology"
	"github.com/SanyamBinayake/SIH-Demo/pkg/config"
)

func main() {

	// Load configuration

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)
	logger := observability.GetLogger()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Load the NAMASTE terminology into memory. The service cannot do
	// anything useful without it.
	store := terminology.NewStore()
	loaded, err := store.LoadCSV(cfg.Namaste.CSVPath)
	if err != nil {
		log.Fatalf("Failed to load NAMASTE terminology from %s: %v", cfg.Namaste.CSVPath, err)
	}
	logger.Info().Int("concepts", loaded).Str("path", cfg.Namaste.CSVPath).Msg("NAMASTE terminology loaded")

	// Initialize database client. The API degrades to mapping-only mode
	// without Postgres: bundle persistence is disabled.
	var pgClient *postgres.Client
	pgClient, err = postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize PostgreSQL client, bundle storage disabled")
		pgClient = nil
	} else {
		defer pgClient.Close()
		if err := pgClient.InitSchema(ctx); err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize database schema")
		}
		logger.Info().Msg("PostgreSQL client initialized successfully")
	}

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize Redis client, continuing without caching")
		redisClient = nil
	} else {
		defer redisClient.Close()
		logger.Info().Msg("Redis client initialized successfully")
	}

	// Initialize Typesense client
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize Typesense client, autocomplete uses the in-memory store")
		typesenseClient = nil
	} else {
		logger.Info().Msg("Typesense client initialized successfully")
	}

	// Initialize the ICD-11 API client
	var lookup providers.ConceptLookup
	icdClient, err := icd.NewClient(&cfg.ICD)
	if err != nil {
		logger.Warn().Err(err).Msg("ICD-11 client unavailable, mapping will produce no candidates")
	} else {
		lookup = icdClient
	}

	// Initialize adapters

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var searchRepo repositories.ConceptSearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)

		// Ensure schema exists

		if err := adapter.InitSchema(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("Failed to init Typesense schema")
		}
		searchRepo = adapter
	}

	// Initialize the mapping engine

	mapper := mapping.NewMapper(lookup, mapping.NewTokenizer(), *logger)

	// Initialize services

	mappingService := services.NewMappingService(store, mapper)
	if cacheProvider != nil {
		mappingService.SetCache(cacheProvider)
		logger.Info().Msg("Mapping result cache enabled")
	}
	mappingService.SetMetrics(metrics)

	conceptService := services.NewConceptService(store, searchRepo, lookup)

	var bundleService *services.BundleService
	if pgClient != nil {
		bundleService = services.NewBundleService(database.NewBundleAdapter(pgClient))
	}

	// Initialize handlers

	conceptHandler := handlers.NewConceptHandler(conceptService)
	mappingHandler := handlers.NewMappingHandler(mappingService, conceptService)

	var bundleHandler *handlers.BundleHandler
	if bundleService != nil {
		bundleHandler = handlers.NewBundleHandler(bundleService)
	}

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		logger.Info().Msg("Cache middleware initialized successfully")
	}

	// Set up router

	router := routes.NewRouter(
		conceptHandler,
		mappingHandler,
		bundleHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error during server shutdown")
	}

	logger.Info().Msg("Server stopped")
}
