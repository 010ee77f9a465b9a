// Package main provides the entry point for the LocalPulse server.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/localpulse/localpulse/internal/api"
	"github.com/localpulse/localpulse/internal/kvstore"
	"github.com/localpulse/localpulse/internal/sources"
	"github.com/localpulse/localpulse/internal/store"
	"github.com/localpulse/localpulse/pkg/logging"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	logConfig := logging.DefaultLogConfig()
	logConfig.Level = getEnv("LOG_LEVEL", logConfig.Level)
	logConfig.Format = getEnv("LOG_FORMAT", logConfig.Format)
	if err := logging.SetupLogger(logConfig); err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}
	logger := logging.GetLogger("server")

	var kv kvstore.Store
	if dir := getEnv("LOCALPULSE_DATA_DIR", ""); dir != "" {
		fileKV, err := kvstore.NewFileStore(dir)
		if err != nil {
			logger.Fatal().Err(err).Str("dir", dir).Msg("Failed to open data directory")
		}
		kv = fileKV
	} else {
		logger.Warn().Msg("LOCALPULSE_DATA_DIR not set, state will not survive restarts")
		kv = kvstore.NewMemoryStore()
	}

	registry := sources.Default()
	if path := getEnv("LOCALPULSE_SOURCES", ""); path != "" {
		loaded, err := sources.Load(path)
		if err != nil {
			logger.Fatal().Err(err).Str("path", path).Msg("Failed to load sources config")
		}
		registry = loaded
	}

	adminSecret := getEnv("LOCALPULSE_ADMIN_SECRET", "")
	if adminSecret == "" {
		logger.Warn().Msg("LOCALPULSE_ADMIN_SECRET not set, admin routes are disabled")
	}

	h := api.NewHandlers(
		store.New(kv),
		registry,
		sources.NewClient(sources.DefaultFetchConfig()),
		adminSecret,
	)
	app := api.NewApp(h, api.Config{
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info().Msg("Shutting down server")
		if err := app.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("Server shutdown error")
		}
	}()

	port := getEnv("PORT", "8080")
	logger.Info().Str("port", port).Int("sources", len(registry.All())).Msg("Starting LocalPulse server")
	if err := app.Listen(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}

// getEnv retrieves an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
