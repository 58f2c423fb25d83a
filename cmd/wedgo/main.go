package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/kirinyoku/wedgo/docs"
	"github.com/kirinyoku/wedgo/internal/app"
	"github.com/kirinyoku/wedgo/internal/config"
	"github.com/kirinyoku/wedgo/internal/logging"
)

// @title WedGo API
// @version 1.0
// @description Wedding vendor catalog and booking service.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, sync, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		slog.Error("failed to create logger", "error", err)
		os.Exit(1)
	}
	defer func() { _ = sync() }()

	ctx := context.Background()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to create application", "error", err)
		_ = sync()
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("application finished with error", "error", err)
		_ = sync()
		os.Exit(1)
	}
}
