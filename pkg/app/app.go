// Package app assembles the application services from their dependencies.
package app

import (
	"log/slog"

	"github.com/amirasaad/brokerage/infra/cache"
	"github.com/amirasaad/brokerage/pkg/config"
	"github.com/amirasaad/brokerage/pkg/notification"
	pricing "github.com/amirasaad/brokerage/pkg/pricing/service"
	"github.com/amirasaad/brokerage/pkg/provider"
	"github.com/amirasaad/brokerage/pkg/repository/pricehistory"
	"github.com/amirasaad/brokerage/pkg/repository/pricerule"
	"gorm.io/gorm"
)

// Deps contains the wired infrastructure the services are built from.
type Deps struct {
	DB              *gorm.DB
	Rules           pricerule.Repository
	Snapshots       pricehistory.Repository
	Providers       *provider.Registry
	Prices          *cache.PriceCache
	Chains          *cache.ChainCache
	HistoricalCache *cache.RedisPriceCache
	Notifier        notification.Notifier
	Logger          *slog.Logger
}

type App struct {
	Deps    *Deps
	Config  *config.App
	Pricing *pricing.Service
}

func New(deps *Deps, cfg *config.App) *App {
	svc := pricing.New(
		deps.Rules,
		deps.Snapshots,
		deps.Providers,
		deps.Prices,
		deps.Chains,
		deps.Notifier,
		deps.Logger,
	)
	if deps.HistoricalCache != nil {
		svc = svc.WithHistoricalCache(deps.HistoricalCache)
	}

	return &App{
		Deps:    deps,
		Config:  cfg,
		Pricing: svc,
	}
}
