package pricerule

import (
	"context"
	"errors"
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

func TestRepository_FindForCurrency(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository{db: db}

	ts := time.Now().UTC()
	price := 39000.0
	refID, refKind, refSymbol := uint(2), "fiat", "USD"
	rows := sqlmock.NewRows([]string{
		"id", "currency_id", "currency_kind", "currency_symbol",
		"source", "asset", "reference", "param",
		"reference_currency_id", "reference_currency_kind", "reference_currency_symbol",
		"check1_source", "check1_asset", "check1_reference", "check1_param", "check1_limit",
		"check2_source", "check2_asset", "check2_reference", "check2_param", "check2_limit",
		"current_price", "price_timestamp", "validity_seconds",
	}).AddRow(
		1, 1, "asset", "BTC",
		"Kraken", "BTC", "USD", "",
		refID, refKind, refSymbol,
		"Binance", "BTC", "USD", "", 0.02,
		"", "", "", "", 0.0,
		price, ts, 300,
	)
	mock.ExpectQuery(`SELECT \* FROM "price_rules" WHERE currency_kind = \$1 AND currency_id = \$2 AND "price_rules"\."deleted_at" IS NULL(.+)LIMIT \$3`).
		WithArgs("asset", 1, 1).
		WillReturnRows(rows)

	rule, err := repo.FindForCurrency(context.Background(), core.Asset(1, "BTC"))
	require.NoError(t, err)
	require.NotNil(t, rule)

	assert.Equal(t, uint(1), rule.ID)
	assert.Equal(t, "BTC", rule.Currency.Symbol)
	assert.Equal(t, core.SourceKraken, rule.Query.Source)

	require.NotNil(t, rule.Reference, "reference columns map to the next hop")
	assert.Equal(t, uint(2), rule.Reference.ID)
	assert.Equal(t, "USD", rule.Reference.Symbol)

	require.NotNil(t, rule.Check1)
	assert.Equal(t, core.SourceBinance, rule.Check1.Source)
	assert.InDelta(t, 0.02, rule.Check1.Limit, 1e-9)
	assert.Nil(t, rule.Check2, "empty check source maps to no check")

	require.NotNil(t, rule.CurrentPrice)
	assert.InDelta(t, 39000, *rule.CurrentPrice, 1e-9)
}

func TestRepository_FindForCurrency_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository{db: db}

	mock.ExpectQuery(`SELECT \* FROM "price_rules"(.+)`).
		WillReturnError(gorm.ErrRecordNotFound)

	rule, err := repo.FindForCurrency(context.Background(), core.Asset(1, "BTC"))
	require.NoError(t, err, "a missing rule is not a repository error")
	assert.Nil(t, rule)
}

func TestRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository{db: db}

	price := 40000.0
	ts := time.Now().UTC()
	rule := &core.PriceRule{
		ID:             1,
		Currency:       core.Asset(1, "BTC"),
		Query:          core.RuleQuery{Source: core.SourceKraken, Asset: "BTC", Reference: "USD"},
		CurrentPrice:   &price,
		PriceTimestamp: &ts,
	}

	// only the accepted price and its timestamp are written back
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "price_rules" SET "current_price"=\$1,"price_timestamp"=\$2,"updated_at"=\$3 WHERE id = \$4`).
		WithArgs(price, ts, sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), rule))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "price_rules" SET (.+)`).
		WillReturnError(errors.New("update error"))
	mock.ExpectRollback()

	require.Error(t, repo.Save(context.Background(), rule))
}

func TestRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository{db: db}

	usd := core.Fiat(2, "USD")
	rule := &core.PriceRule{
		Currency:  core.Asset(1, "BTC"),
		Query:     core.RuleQuery{Source: core.SourceKraken, Asset: "BTC", Reference: "USD"},
		Reference: &usd,
		Check1: &core.CheckQuery{
			RuleQuery: core.RuleQuery{Source: core.SourceBinance, Asset: "BTC", Reference: "USD"},
			Limit:     0.02,
		},
		ValiditySeconds: 300,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "price_rules" (.+) ON CONFLICT \("currency_kind","currency_id"\) DO UPDATE SET (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	require.NoError(t, repo.Upsert(context.Background(), rule))
}
