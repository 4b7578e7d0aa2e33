package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/nrjt/eduplatform/internal/config"
	"github.com/nrjt/eduplatform/internal/logging"
	"github.com/nrjt/eduplatform/sdk"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "eduplatform: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration from %q: %w", configPath, err)
	}

	if err := logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()

	logger := logging.L()
	logger.Info("starting EduPlatform",
		zap.String("config", configPath),
		zap.String("db_path", cfg.Store.DBPath),
		zap.Bool("seed", cfg.Seed.Enabled))

	// Initialize portal
	portal, err := sdk.NewWithConfig(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := portal.Close(); err != nil {
			logger.Error("failed to close resource store", zap.Error(err))
		}
	}()

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// I am here to serve.
	if err := portal.NewServer().Run(ctx); err != nil {
		return err
	}

	logger.Info("server shutdown complete")
	return nil
}

// getConfigPath returns the first argument, else configs/default.json when it
// exists, else "" for the built-in defaults.
func getConfigPath() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	if _, err := os.Stat("configs/default.json"); err == nil {
		return "configs/default.json"
	}
	return ""
}
