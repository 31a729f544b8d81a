package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sound-rewind/internal/adapter"
	"sound-rewind/internal/analytics"
	"sound-rewind/internal/cache"
	"sound-rewind/internal/config"
	"sound-rewind/internal/handler"
	"sound-rewind/internal/metrics"
	"sound-rewind/internal/repository/sqlite"
	"sound-rewind/internal/seed"
	"sound-rewind/internal/service"
	"sound-rewind/internal/task"
)

func main() {
	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.LogConfiguration()

	// Initialize SQLite database with WAL mode and connection pooling
	db, err := sqlite.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations to ensure schema is up to date
	if err := sqlite.Migrate(db.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize data access layer (repositories)
	accountRepo := sqlite.NewAccountRepository(db)
	trackRepo := sqlite.NewTrackRepository(db)
	activityRepo := sqlite.NewActivityEventRepository(db)
	followRepo := sqlite.NewFollowedAccountRepository(db)
	summaryRepo := sqlite.NewSummaryRepository(db)

	// Initialize the upstream platform adapter
	platformAdapter := adapter.NewSoundwaveAdapter(adapter.Options{
		BaseURL:      cfg.PlatformAPIBaseURL,
		ClientID:     cfg.PlatformClientID,
		ClientSecret: cfg.PlatformClientSecret,
		TokenURL:     cfg.PlatformTokenURL,
		RateLimit:    cfg.PlatformRateLimit,
		RateBurst:    cfg.PlatformRateBurst,
	})

	// Initialize the analytics engine and orchestration layer
	aggregator, err := analytics.NewAggregator(cfg.Engine)
	if err != nil {
		log.Fatalf("Failed to build analytics engine: %v", err)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	summaryCache := cache.New(cfg.SummaryCacheTTL)

	accountService := service.NewAccountService(accountRepo)
	syncService := service.NewSyncService(accountRepo, trackRepo, activityRepo, followRepo, platformAdapter, m)
	wrappedService := service.NewWrappedService(
		accountRepo, trackRepo, activityRepo, followRepo, summaryRepo,
		aggregator, summaryCache, m,
	)

	// Seed demo data so the API is usable without upstream credentials
	if os.Getenv("SEED_DEMO_DATA") == "true" {
		seeder := seed.NewSeeder(accountRepo, trackRepo, activityRepo, followRepo)
		if _, err := seeder.SeedDemoAccount(context.Background()); err != nil {
			log.Printf("Failed to seed demo data: %v", err)
		}
	}

	// Start the background summary refresher
	refresher := task.NewSummaryRefresher(accountRepo, syncService, wrappedService, summaryCache, cfg.RefreshInterval)
	refresherCtx, cancelRefresher := context.WithCancel(context.Background())
	refresher.Start(refresherCtx)
	defer cancelRefresher()

	// Set up HTTP routing
	mux := http.NewServeMux()
	apiHandler := handler.NewAPIHandler(wrappedService, accountService, syncService)
	apiHandler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Configure HTTP server with timeouts to prevent resource exhaustion
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background goroutine
	go func() {
		log.Printf("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	refresher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
