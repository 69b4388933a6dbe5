package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"frvn-service/internal/app"
	"frvn-service/internal/config"
	"frvn-service/internal/platform/obs"

	"go.uber.org/zap"
)

// main is the application composition root.
// It loads settings, builds the logger and runs the HTTP server until SIGINT/SIGTERM.
func main() {
	loaded, err := config.LoadDotEnv()
	if err != nil {
		log.Fatal(err)
	}

	settings, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := obs.NewLogger(settings.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if !loaded {
		logger.Info("no .env file found (using environment variables)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := app.BuildServer(ctx, settings, logger)
	if err != nil {
		logger.Fatal("build server failed", zap.Error(err))
	}
	defer srv.Close()

	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}
