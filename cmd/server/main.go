// Command main is the entry point for the trendsmith backend server.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trendsmith/internal/config"
	"trendsmith/internal/middleware"
	"trendsmith/internal/observability"
	"trendsmith/internal/server"
)

// @title trendsmith API
// @version 1.0
// @description Trend-driven content pipeline: scrape Bluesky, derive a style card, compose drafts and publish to X
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@trendsmith.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8375
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and an operator token.

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := middleware.NewLogger(cfg.Env, os.Getenv("LOG_LEVEL"))
	middleware.Logger = logger
	observability.SetLogger(logger)
	slog.SetDefault(logger)

	shutdownTracing := func(context.Context) error { return nil }
	if cfg.TracingEnabled {
		shutdownTracing, err = observability.InitTracing(observability.TracingConfig{
			ServiceName:    "trendsmith-api",
			ServiceVersion: "1.0",
			Environment:    cfg.Env,
			Enabled:        true,
			Exporter:       cfg.TracingExporter,
			OTLPEndpoint:   cfg.OTLPEndpoint,
			SamplerRatio:   cfg.TracingSampleRatio,
		})
		if err != nil {
			log.Fatalf("Failed to initialize tracing: %v", err)
		}
	}

	// Create server with dependency injection
	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", slog.String("error", err.Error()))
		}
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("tracing shutdown error", slog.String("error", err.Error()))
		}
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
