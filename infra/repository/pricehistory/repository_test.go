package pricehistory

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/brokerage/pkg/pricing/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestRepository_FindSnapshot(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository{db: db}

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "currency_id", "currency_kind", "currency_symbol", "date",
		"price_usd", "price_eur", "price_chf",
	}).AddRow(1, 1, "asset", "BTC", day, 40000.0, 36500.0, 35200.0)

	// the lookup truncates the requested time to its UTC day
	mock.ExpectQuery(`SELECT \* FROM "price_snapshots" WHERE currency_kind = \$1 AND currency_id = \$2 AND date = \$3 AND "price_snapshots"\."deleted_at" IS NULL(.+)LIMIT \$4`).
		WithArgs("asset", 1, day, 1).
		WillReturnRows(rows)

	snap, err := repo.FindSnapshot(context.Background(), core.Asset(1, "BTC"), day.Add(15*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, "BTC", snap.Currency.Symbol)
	assert.InDelta(t, 40000, snap.PriceUSD, 1e-9)
	assert.InDelta(t, 36500, snap.PriceEUR, 1e-9)
}

func TestRepository_FindSnapshot_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository{db: db}

	mock.ExpectQuery(`SELECT \* FROM "price_snapshots"(.+)`).
		WillReturnError(gorm.ErrRecordNotFound)

	snap, err := repo.FindSnapshot(context.Background(), core.Asset(1, "BTC"), time.Now())
	require.NoError(t, err, "a missing snapshot is not a repository error")
	assert.Nil(t, snap)
}
