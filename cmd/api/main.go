package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/eventdesk/internal/config"
	"github.com/joshua-takyi/eventdesk/internal/connect"
	"github.com/joshua-takyi/eventdesk/internal/container"
	"github.com/joshua-takyi/eventdesk/internal/models"
	"github.com/joshua-takyi/eventdesk/internal/routes"
)

func main() {
	// Load environment variables; .env.local wins over .env
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

// run starts the API and blocks until ctx is cancelled or the server fails.
// Any startup failure is returned so main can exit non-zero.
func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Setup logger
	logger := setupLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("Starting eventdesk API server", "environment", cfg.Environment)

	mongoClient, err := connect.MongoDBConnect(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	defer func() {
		if err := connect.MongoDBDisconnect(mongoClient); err != nil {
			logger.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	indexCtx, cancelIndex := context.WithTimeout(ctx, 30*time.Second)
	err = models.MongodbNewRepo(mongoClient, cfg.MongoDBDatabase).EnsureMediaIndexes(indexCtx)
	cancelIndex()
	if err != nil {
		return fmt.Errorf("create media indexes: %w", err)
	}

	// Initialize dependency container
	appContainer, err := container.NewContainer(cfg, logger, mongoClient)
	if err != nil {
		return fmt.Errorf("build container: %w", err)
	}

	// Setup routes
	router := routes.SetupRoutes(appContainer)

	// Uploads can be large, so there is no WriteTimeout; ReadHeaderTimeout
	// still bounds slow clients.
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			runErr = fmt.Errorf("server failed: %w", err)
		}
	}

	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
	return runErr
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		// Human-readable logging for development
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
