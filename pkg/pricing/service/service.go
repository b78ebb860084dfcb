// Package pricing implements price resolution over persisted rule chains.
// Each currency resolves through its rule to a reference currency until a
// terminal rule ends the chain; two chains joined through their shared
// terminal yield the price between any two configured currencies.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/amirasaad/brokerage/infra/cache"
	"github.com/amirasaad/brokerage/pkg/notification"
	"github.com/amirasaad/brokerage/pkg/price"
	"github.com/amirasaad/brokerage/pkg/pricing/core"
	"github.com/amirasaad/brokerage/pkg/provider"
	"github.com/amirasaad/brokerage/pkg/repository/pricehistory"
	"github.com/amirasaad/brokerage/pkg/repository/pricerule"
)

const (
	// maxChainDepth caps rule chain length. A longer chain is a cyclic or
	// degenerate configuration and resolution fails fast instead of
	// walking it.
	maxChainDepth = 16

	// snapTolerance collapses near-parity results to exactly 1, so pairs
	// like USD/USDC do not expose float noise to money arithmetic.
	snapTolerance = 0.01
)

// Service resolves prices between configured currencies.
type Service struct {
	rules     pricerule.Repository
	snapshots pricehistory.Repository
	providers *provider.Registry
	chains    *cache.ChainCache
	histCache *cache.RedisPriceCache
	updater   *updater
	logger    *slog.Logger
}

// New creates the pricing service. The price and chain caches are process
// singletons shared with any other consumer of provider quotes.
func New(
	rules pricerule.Repository,
	snapshots pricehistory.Repository,
	providers *provider.Registry,
	prices *cache.PriceCache,
	chains *cache.ChainCache,
	notifier notification.Notifier,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		rules:     rules,
		snapshots: snapshots,
		providers: providers,
		chains:    chains,
		updater:   newUpdater(rules, providers, prices, notifier, logger),
		logger:    logger,
	}
}

// WithHistoricalCache attaches a redis cache for historical lookups.
func (s *Service) WithHistoricalCache(c *cache.RedisPriceCache) *Service {
	s.histCache = c
	return s
}

// Price resolves the current price from one currency to another under the
// given validity mode.
func (s *Service) Price(ctx context.Context, from, to core.Currency, validity core.Validity) (price.Price, error) {
	p, err := s.resolve(ctx, from, to, validity)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	resolutions.WithLabelValues(validity.String(), outcome).Inc()

	if err != nil {
		return price.Price{}, fmt.Errorf("price %s/%s: %w", from.Symbol, to.Symbol, err)
	}
	return p, nil
}

func (s *Service) resolve(ctx context.Context, from, to core.Currency, validity core.Validity) (price.Price, error) {
	if from.Equal(to) {
		return price.NewAt(from.Symbol, to.Symbol, 1, true, time.Now()), nil
	}

	p, err := s.resolveOnce(ctx, from, to, validity)
	if validity != core.ValidityValidOnly {
		return p, err
	}

	// a rejected or failed refresh may clear on a second attempt; drop the
	// cached chains so the retry sees freshly persisted rule state
	if err == nil && p.Valid {
		return p, nil
	}
	if err != nil && isConfigError(err) {
		return price.Price{}, err
	}

	s.chains.Invalidate(from.Key())
	s.chains.Invalidate(to.Key())

	p, err = s.resolveOnce(ctx, from, to, validity)
	if err != nil {
		return price.Price{}, err
	}
	if !p.Valid {
		return price.Price{}, core.ErrNoValidPrice
	}
	return p, nil
}

func (s *Service) resolveOnce(ctx context.Context, from, to core.Currency, validity core.Validity) (price.Price, error) {
	fromPrice, fromTerminal, err := s.priceFor(ctx, from, validity)
	if err != nil {
		return price.Price{}, err
	}
	toPrice, toTerminal, err := s.priceFor(ctx, to, validity)
	if err != nil {
		return price.Price{}, err
	}

	if !fromTerminal.Equal(toTerminal) {
		return price.Price{}, fmt.Errorf(
			"%w: %s resolves to %s, %s resolves to %s",
			core.ErrReferenceMismatch,
			from.Symbol, fromTerminal.Symbol,
			to.Symbol, toTerminal.Symbol,
		)
	}

	joined, err := price.Join(fromPrice, toPrice.Invert())
	if err != nil {
		return price.Price{}, err
	}

	if math.Abs(joined.Value-1) < snapTolerance {
		joined.Value = 1
	}
	joined.Source = from.Symbol
	joined.Target = to.Symbol

	return joined, nil
}

// priceFor resolves the price of a currency in its terminal reference
// units by walking and joining its rule chain. It returns the terminal
// currency alongside the joined price.
func (s *Service) priceFor(ctx context.Context, currency core.Currency, validity core.Validity) (price.Price, core.Currency, error) {
	chain, ok := s.chains.Get(currency.Key())
	if !ok {
		chainCacheMisses.Inc()

		var err error
		chain, err = s.buildChain(ctx, currency)
		if err != nil {
			return price.Price{}, core.Currency{}, err
		}
		s.chains.Put(currency.Key(), chain)
	}

	resolved := make([]*core.PriceRule, len(chain))
	copy(resolved, chain)

	changed := false
	for i, rule := range resolved {
		if !rule.ShouldUpdate() {
			continue
		}

		// a usable stale price lets tolerant callers skip the wait and
		// refresh in the background
		if validity == core.ValidityAny && rule.HasPrice() && !rule.Obsolete() {
			key := currency.Key()
			s.updater.UpdateAsync(rule, func(updated *core.PriceRule) {
				s.replaceCachedRule(key, updated)
			})
			continue
		}

		updated, err := s.updater.Update(ctx, rule)
		if err != nil {
			if validity == core.ValidityPreferValid && rule.HasPrice() && !rule.Obsolete() {
				s.logger.Warn(
					"serving stale price after failed refresh",
					"rule", rule.ID,
					"currency", rule.Currency.String(),
					"error", err,
				)
				continue
			}
			return price.Price{}, core.Currency{}, err
		}
		if updated != rule {
			resolved[i] = updated
			changed = true
		}
	}
	if changed {
		s.chains.Put(currency.Key(), resolved)
	}

	prices := make([]price.Price, len(resolved))
	for i, rule := range resolved {
		prices[i] = rule.Price()
	}

	joined, err := price.Join(prices...)
	if err != nil {
		return price.Price{}, core.Currency{}, err
	}
	return joined, resolved[len(resolved)-1].Currency, nil
}

// replaceCachedRule swaps a refreshed rule into the cached chain so later
// lookups see the persisted price without waiting out the chain TTL.
func (s *Service) replaceCachedRule(key string, updated *core.PriceRule) {
	chain, ok := s.chains.Get(key)
	if !ok {
		return
	}

	next := make([]*core.PriceRule, len(chain))
	copy(next, chain)
	for i, rule := range next {
		if rule.ID == updated.ID {
			next[i] = updated
		}
	}
	s.chains.Put(key, next)
}

// buildChain loads the rule chain for a currency by following rule
// references until a terminal rule.
func (s *Service) buildChain(ctx context.Context, currency core.Currency) ([]*core.PriceRule, error) {
	var chain []*core.PriceRule

	current := currency
	for depth := 0; depth < maxChainDepth; depth++ {
		rule, err := s.rules.FindForCurrency(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("load rule for %s: %w", current.Symbol, err)
		}
		if rule == nil {
			return nil, fmt.Errorf("%w: %s", core.ErrNoRule, current.Symbol)
		}

		chain = append(chain, rule)
		if rule.IsTerminal() {
			return chain, nil
		}
		current = *rule.Reference
	}

	return nil, fmt.Errorf("%w: starting at %s", core.ErrChainTooDeep, currency.Symbol)
}

// PriceFrom queries one source directly, bypassing rules and caches. It
// backs the administrative source inspection endpoint.
func (s *Service) PriceFrom(ctx context.Context, source core.PriceSource, asset, reference, param string) (price.Price, error) {
	p, err := s.providers.Get(source)
	if err != nil {
		return price.Price{}, err
	}

	got, err := p.GetPrice(ctx, asset, reference, param)
	if err != nil {
		return price.Price{}, &provider.Error{Source: source, Asset: asset, Reference: reference, Err: err}
	}
	return got, nil
}

// UpdatePrices refreshes every persisted rule. Individual failures are
// logged and skipped so one broken provider does not stall the sweep.
func (s *Service) UpdatePrices(ctx context.Context) error {
	rules, err := s.rules.List(ctx)
	if err != nil {
		return fmt.Errorf("list price rules: %w", err)
	}

	for _, rule := range rules {
		if !rule.ShouldUpdate() {
			continue
		}
		if _, err := s.updater.Update(ctx, rule); err != nil {
			s.logger.Error(
				"price update failed",
				"rule", rule.ID,
				"currency", rule.Currency.String(),
				"error", err,
			)
		}
	}

	// cached chains may hold pre-sweep copies; rebuild lazily
	s.chains.Clear()
	return nil
}

func isConfigError(err error) bool {
	for _, target := range []error{
		core.ErrNoRule,
		core.ErrChainTooDeep,
		core.ErrReferenceMismatch,
		core.ErrUnknownSource,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
