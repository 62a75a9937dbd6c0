package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/user/mina-service/internal/app"
	"github.com/user/mina-service/pkg/config"
	"github.com/user/mina-service/pkg/logger"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(os.Getenv("MINA_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// --- Logger ---
	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	log.Info("logger initialized", zap.String("level", cfg.Log.Level))

	// --- Search service ---
	a, err := app.Build(cfg, log)
	if err != nil {
		log.Fatal("failed to build search service", zap.Error(err))
	}

	// --- HTTP Server ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Serve(ctx, a.NewServer(cfg.Server, log), log); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
