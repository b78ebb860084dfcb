// Package initializer wires infrastructure dependencies at startup.
package initializer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/brokerage/infra"
	"github.com/amirasaad/brokerage/infra/cache"
	infranotification "github.com/amirasaad/brokerage/infra/notification"
	infraprovider "github.com/amirasaad/brokerage/infra/provider"
	"github.com/amirasaad/brokerage/infra/repository/pricehistory"
	"github.com/amirasaad/brokerage/infra/repository/pricerule"
	"github.com/amirasaad/brokerage/pkg/app"
	"github.com/amirasaad/brokerage/pkg/config"
	"github.com/amirasaad/brokerage/pkg/notification"
	"github.com/amirasaad/brokerage/pkg/pricing/core"
	"github.com/amirasaad/brokerage/pkg/provider"
	rulerepo "github.com/amirasaad/brokerage/pkg/repository/pricerule"
	"github.com/redis/go-redis/v9"
)

const startupTimeout = 10 * time.Second

// InitializeDependencies builds the dependency graph for the application:
// database, repositories, provider registry, caches and the mismatch
// notifier.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	logger := setupLogger(&cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&pricerule.PriceRule{}, &pricehistory.PriceSnapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	rules := pricerule.New(db)
	snapshots := pricehistory.New(db)

	registry := provider.NewRegistry()
	if err := registry.Register(core.SourceFixed, infraprovider.NewFixedProvider()); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()
	if err := validateRuleSources(ctx, rules, registry, logger); err != nil {
		return nil, err
	}

	notifier, err := setupNotifier(cfg, logger)
	if err != nil {
		return nil, err
	}

	deps := &app.Deps{
		DB:        db,
		Rules:     rules,
		Snapshots: snapshots,
		Providers: registry,
		Prices:    cache.NewPriceCache(cfg.Pricing.PriceCacheTTL),
		Chains:    cache.NewChainCache(cfg.Pricing.ChainCacheTTL),
		Notifier:  notifier,
		Logger:    logger,
	}

	if cfg.Redis.Url != "" {
		opt, err := redis.ParseURL(cfg.Redis.Url)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		deps.HistoricalCache = cache.NewRedisPriceCache(opt, cfg.Redis.Prefix, logger)
	}

	return deps, nil
}

// validateRuleSources fails startup when a persisted rule names a source
// with no registered provider. A misconfigured rule surfaces here instead
// of on the first resolution that touches it.
func validateRuleSources(
	ctx context.Context,
	rules rulerepo.Repository,
	registry *provider.Registry,
	logger *slog.Logger,
) error {
	all, err := rules.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list price rules: %w", err)
	}

	var missing []core.PriceSource
	seen := make(map[core.PriceSource]bool)
	for _, rule := range all {
		for _, source := range ruleSources(rule) {
			if !registry.Has(source) && !seen[source] {
				seen[source] = true
				missing = append(missing, source)
			}
		}
	}

	if len(missing) > 0 {
		logger.Warn("price rules reference unregistered sources", "sources", missing)
	}
	logger.Info("price rules validated", "rules", len(all), "providers", len(registry.Sources()))
	return nil
}

func ruleSources(rule *core.PriceRule) []core.PriceSource {
	sources := []core.PriceSource{rule.Query.Source}
	if rule.Check1 != nil {
		sources = append(sources, rule.Check1.Source)
	}
	if rule.Check2 != nil {
		sources = append(sources, rule.Check2.Source)
	}
	return sources
}

func setupNotifier(cfg *config.App, logger *slog.Logger) (notification.Notifier, error) {
	if !cfg.Kafka.Enabled {
		return infranotification.NewLogNotifier(logger), nil
	}

	notifier, err := infranotification.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.MismatchTopic, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka notifier: %w", err)
	}
	return notifier, nil
}
