package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/amirasaad/brokerage/infra/cache"
	"github.com/amirasaad/brokerage/pkg/notification"
	"github.com/amirasaad/brokerage/pkg/price"
	"github.com/amirasaad/brokerage/pkg/pricing/core"
	"github.com/amirasaad/brokerage/pkg/provider"
	"github.com/amirasaad/brokerage/pkg/repository/pricerule"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	// mismatchDebounce suppresses repeated mismatch reports for the same
	// pair within this window.
	mismatchDebounce = 30 * time.Minute

	// backgroundUpdateTimeout bounds detached refreshes so a hanging
	// provider cannot leak goroutines.
	backgroundUpdateTimeout = time.Minute
)

// updater refreshes a single rule's price: fetch the primary quote, run
// the configured cross-checks, persist on acceptance. Concurrent refreshes
// of the same rule collapse into one flight; every caller receives the
// same updated copy.
type updater struct {
	rules     pricerule.Repository
	providers *provider.Registry
	prices    *cache.PriceCache
	notifier  notification.Notifier
	debounce  *notification.Debouncer
	group     singleflight.Group
	logger    *slog.Logger
}

func newUpdater(
	rules pricerule.Repository,
	providers *provider.Registry,
	prices *cache.PriceCache,
	notifier notification.Notifier,
	logger *slog.Logger,
) *updater {
	return &updater{
		rules:     rules,
		providers: providers,
		prices:    prices,
		notifier:  notifier,
		debounce:  notification.NewDebouncer(mismatchDebounce),
		logger:    logger,
	}
}

// Update refreshes the rule and returns the refreshed copy. The input rule
// is never mutated. A rejected cross-check is not an error; the rule comes
// back unchanged and keeps its previous price.
func (u *updater) Update(ctx context.Context, rule *core.PriceRule) (*core.PriceRule, error) {
	v, err, _ := u.group.Do(fmt.Sprintf("rule:%d", rule.ID), func() (any, error) {
		return u.update(ctx, rule)
	})
	if err != nil {
		return nil, err
	}
	return v.(*core.PriceRule), nil
}

// UpdateAsync refreshes the rule in the background. Failures are logged
// and otherwise swallowed; the caller already holds a usable stale price.
// When a refresh is accepted the callback receives the updated rule, so
// the caller can make the new price visible to later lookups.
func (u *updater) UpdateAsync(rule *core.PriceRule, accepted func(*core.PriceRule)) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), backgroundUpdateTimeout)
		defer cancel()

		updated, err := u.Update(ctx, rule)
		if err != nil {
			u.logger.Error(
				"background price update failed",
				"rule", rule.ID,
				"currency", rule.Currency.String(),
				"error", err,
			)
			return
		}
		if accepted != nil && updated != rule {
			accepted(updated)
		}
	}()
}

func (u *updater) update(ctx context.Context, rule *core.PriceRule) (*core.PriceRule, error) {
	primary, err := u.fetch(ctx, rule.Query)
	if err != nil {
		return nil, err
	}
	if primary.Value == 0 {
		return nil, fmt.Errorf("source %s returned a zero price for %s", rule.Query.Source, rule.Currency.Symbol)
	}

	ok1, err := u.crossCheck(ctx, rule, primary.Value, rule.Check1)
	if err != nil {
		return nil, err
	}
	ok2, err := u.crossCheck(ctx, rule, primary.Value, rule.Check2)
	if err != nil {
		return nil, err
	}
	if !ok1 || !ok2 {
		// keep the previous price rather than persisting a suspect one
		return rule, nil
	}

	updated := rule.Clone()
	updated.SetPrice(primary.Value, time.Now())

	if err := u.rules.Save(ctx, updated); err != nil {
		return nil, fmt.Errorf("persist price for rule %d: %w", rule.ID, err)
	}

	u.logger.Debug(
		"price rule updated",
		"rule", rule.ID,
		"currency", rule.Currency.String(),
		"price", primary.Value,
	)
	return updated, nil
}

// fetch performs one provider lookup through the short-lived price cache.
func (u *updater) fetch(ctx context.Context, query core.RuleQuery) (price.Price, error) {
	p, err := u.providers.Get(query.Source)
	if err != nil {
		return price.Price{}, err
	}

	key := cache.PriceKey(query.Source, query.Asset, query.Reference, query.Param)
	return u.prices.GetOrFetch(ctx, key, func(ctx context.Context) (price.Price, error) {
		providerRequests.WithLabelValues(string(query.Source)).Inc()

		got, err := p.GetPrice(ctx, query.Asset, query.Reference, query.Param)
		if err != nil {
			providerErrors.WithLabelValues(string(query.Source)).Inc()
			return price.Price{}, &provider.Error{
				Source:    query.Source,
				Asset:     query.Asset,
				Reference: query.Reference,
				Err:       err,
			}
		}
		return got, nil
	})
}

// crossCheck fetches the check price and compares it against the primary
// value. It returns false when the deviation exceeds the configured limit.
func (u *updater) crossCheck(
	ctx context.Context,
	rule *core.PriceRule,
	primaryValue float64,
	check *core.CheckQuery,
) (bool, error) {
	if check == nil {
		return true, nil
	}

	checkPrice, err := u.fetch(ctx, check.RuleQuery)
	if err != nil {
		return false, err
	}

	deviation := math.Abs(checkPrice.Value-primaryValue) / primaryValue
	if deviation <= check.Limit {
		return true, nil
	}

	mismatchRejections.Inc()

	mismatch := notification.Mismatch{
		ID:        uuid.NewString(),
		Source:    rule.Currency.Symbol,
		Target:    rule.TargetSymbol(),
		CheckedBy: string(check.Source),
		Deviation: deviation,
		Limit:     check.Limit,
	}
	u.logger.Warn(mismatch.Message(), "rule", rule.ID)

	key := fmt.Sprintf("PriceMismatch&%s&%s", rule.Query.Asset, rule.Query.Reference)
	if u.debounce.Allow(key) {
		if err := u.notifier.ReportMismatch(ctx, mismatch); err != nil {
			u.logger.Error("mismatch notification failed", "rule", rule.ID, "error", err)
		}
	}

	return false, nil
}
