package pricing_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/brokerage/infra/cache"
	"github.com/amirasaad/brokerage/pkg/notification"
	"github.com/amirasaad/brokerage/pkg/pricing/core"
	pricing "github.com/amirasaad/brokerage/pkg/pricing/service"
	"github.com/amirasaad/brokerage/pkg/provider"
	"github.com/amirasaad/brokerage/pkg/repository/pricehistory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHistoricalService(snapshots map[string]*pricehistory.Snapshot) *pricing.Service {
	return pricing.New(
		newFakeRuleRepo(),
		&fakeSnapshotRepo{snapshots: snapshots},
		provider.NewRegistry(),
		cache.NewPriceCache(10*time.Second),
		cache.NewChainCache(time.Hour),
		&fakeNotifier{},
		testLogger(),
	)
}

func snapshotKey(currency core.Currency, day time.Time) string {
	return currency.Key() + ":" + day.Format("2006-01-02")
}

func TestPriceAtComposesSnapshotsThroughUSD(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc := newHistoricalService(map[string]*pricehistory.Snapshot{
		snapshotKey(eur, day): {Currency: eur, Date: day, PriceUSD: 1.1},
		snapshotKey(btc, day): {Currency: btc, Date: day, PriceUSD: 40000},
	})

	p, err := svc.PriceAt(context.Background(), eur, btc, day.Add(15*time.Hour))
	require.NoError(t, err)
	assert.InDelta(t, 1.1/40000, p.Value, 1e-12)
	assert.Equal(t, "EUR", p.Source)
	assert.Equal(t, "BTC", p.Target)
	assert.True(t, p.Valid)
	assert.Equal(t, day, p.Timestamp)
}

func TestPriceAtIdentity(t *testing.T) {
	svc := newHistoricalService(nil)

	p, err := svc.PriceAt(context.Background(), btc, btc, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.Value)
}

func TestPriceAtFailsWithoutSnapshot(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc := newHistoricalService(map[string]*pricehistory.Snapshot{
		snapshotKey(eur, day): {Currency: eur, Date: day, PriceUSD: 1.1},
	})

	_, err := svc.PriceAt(context.Background(), eur, btc, day)
	assert.ErrorIs(t, err, core.ErrNoHistoricalPrice)
}

func TestPriceAtTreatsZeroSnapshotAsMissing(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc := newHistoricalService(map[string]*pricehistory.Snapshot{
		snapshotKey(eur, day): {Currency: eur, Date: day, PriceUSD: 1.1},
		snapshotKey(btc, day): {Currency: btc, Date: day, PriceUSD: 0},
	})

	_, err := svc.PriceAt(context.Background(), eur, btc, day)
	assert.ErrorIs(t, err, core.ErrNoHistoricalPrice)
}

var _ notification.Notifier = (*fakeNotifier)(nil)
