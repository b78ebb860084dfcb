package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/amirasaad/brokerage/docs"
	"github.com/amirasaad/brokerage/infra/initializer"
	"github.com/amirasaad/brokerage/pkg/app"
	"github.com/amirasaad/brokerage/pkg/config"
	"github.com/amirasaad/brokerage/webapi"
	log "github.com/charmbracelet/log"
)

// @title Brokerage Pricing API
// @version 1.0.0
// @description Price resolution API for crypto and fiat currencies
// @host localhost:3000
// @BasePath /
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	logger := deps.Logger

	a := app.New(deps, cfg)
	go runUpdateLoop(context.Background(), a, cfg.Pricing.UpdateInterval, logger)

	fiberApp := webapi.SetupApp(a)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
	)
	return fiberApp.Listen(addr)
}

// runUpdateLoop refreshes stale rules on a fixed interval so prices stay
// warm between requests.
func runUpdateLoop(ctx context.Context, a *app.App, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.Pricing.UpdatePrices(ctx); err != nil {
				logger.Error("scheduled price update failed", "error", err)
			}
		}
	}
}
