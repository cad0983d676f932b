package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/patrickmn/go-cache"

	"github.com/natpakans-stack/carpark-live-dashboard/config"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/api"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/db"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/notification"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/observability"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/refresh"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/sheet"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "carpark-backend ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	metrics := observability.NewMetrics()

	// Push is optional: without VAPID keys the worker pool never starts and
	// the subscription endpoints answer 503.
	var webpushOptions *webpush.Options
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
	} else {
		logger.Println("VAPID keys not configured; push notifications are disabled")
	}

	// Initialize the subscription database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	events := store.NewEvents()

	// The response cache is shared between the API middleware and the
	// refresh loop, which flushes it after every applied snapshot.
	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	respCache := cache.New(cacheTTL, 2*cacheTTL)

	var pool *notification.WorkerPool
	if webpushOptions != nil {
		pool = notification.NewWorkerPool(cfg.WorkerPool.Size, appStore, webpushOptions, metrics)
	}

	// Start the refresh loop in the background
	fetcher := sheet.NewFetcher(&cfg.Source)
	scheduler := refresh.NewScheduler(cfg, fetcher, events, respCache, pool, metrics)
	go scheduler.Run(ctx)

	// Initialize router
	handler := api.NewHandler(events, appStore, scheduler, webpushOptions, cfg.Refresh.Location)
	router := api.NewRouter(handler, &cfg.Server, respCache)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
