package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/amirasaad/brokerage/pkg/price"
	"github.com/amirasaad/brokerage/pkg/pricing/core"
)

// historicalCacheTTL keeps resolved historical prices in redis. Snapshots
// never change once recorded, so a long TTL only trades memory for reads.
const historicalCacheTTL = 24 * time.Hour

// PriceAt resolves the price between two currencies on a past day by
// composing their recorded daily snapshots through USD.
func (s *Service) PriceAt(ctx context.Context, from, to core.Currency, date time.Time) (price.Price, error) {
	if from.Equal(to) {
		return price.NewAt(from.Symbol, to.Symbol, 1, true, date), nil
	}

	day := date.UTC().Truncate(24 * time.Hour)
	key := fmt.Sprintf("historical:%s:%s:%s", from.Key(), to.Key(), day.Format("2006-01-02"))

	if s.histCache != nil {
		if cached, err := s.histCache.Get(ctx, key); err == nil && cached != nil {
			return *cached, nil
		}
	}

	fromUSD, err := s.snapshotPrice(ctx, from, day)
	if err != nil {
		return price.Price{}, err
	}
	toUSD, err := s.snapshotPrice(ctx, to, day)
	if err != nil {
		return price.Price{}, err
	}

	p, err := price.Join(fromUSD, toUSD.Invert())
	if err != nil {
		return price.Price{}, err
	}
	p.Source = from.Symbol
	p.Target = to.Symbol
	p.Timestamp = day

	if s.histCache != nil {
		if err := s.histCache.Set(ctx, key, p, historicalCacheTTL); err != nil {
			s.logger.Warn("historical price cache write failed", "key", key, "error", err)
		}
	}

	return p, nil
}

// snapshotPrice loads a currency's recorded USD price for the day.
func (s *Service) snapshotPrice(ctx context.Context, currency core.Currency, day time.Time) (price.Price, error) {
	snap, err := s.snapshots.FindSnapshot(ctx, currency, day)
	if err != nil {
		return price.Price{}, fmt.Errorf("load snapshot for %s: %w", currency.Symbol, err)
	}
	if snap == nil || snap.PriceUSD == 0 {
		return price.Price{}, fmt.Errorf(
			"%w: %s on %s", core.ErrNoHistoricalPrice, currency.Symbol, day.Format("2006-01-02"),
		)
	}

	return price.NewAt(currency.Symbol, "USD", snap.PriceUSD, true, snap.Date), nil
}
