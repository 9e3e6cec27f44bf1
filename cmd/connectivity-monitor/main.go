package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/answer-search/internal/app"
	"github.com/samvad-hq/answer-search/internal/config"
	"github.com/samvad-hq/answer-search/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "connectivity monitor start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	log.InfoObj("connectivity monitor starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mon, err := app.NewMonitor(ctx, cfg, log)
	if err != nil {
		log.ErrorObj("failed to initialize connectivity monitor", "error", err)
		return err
	}

	if err := mon.Run(ctx); err != nil {
		return fmt.Errorf("connectivity monitor run: %w", err)
	}

	return nil
}
