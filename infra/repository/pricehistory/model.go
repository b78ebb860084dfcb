package pricehistory

import (
	"time"

	"github.com/amirasaad/brokerage/pkg/pricing/core"
	repo "github.com/amirasaad/brokerage/pkg/repository/pricehistory"
	"gorm.io/gorm"
)

// PriceSnapshot is the persisted daily mean price of one currency in the
// reference fiat units. Written by the recording job, read-only here.
type PriceSnapshot struct {
	gorm.Model

	CurrencyID     uint      `gorm:"index:idx_price_snapshots_day,unique;not null"`
	CurrencyKind   string    `gorm:"type:varchar(8);index:idx_price_snapshots_day,unique;not null"`
	CurrencySymbol string    `gorm:"type:varchar(32);not null"`
	Date           time.Time `gorm:"type:date;index:idx_price_snapshots_day,unique;not null"`

	PriceUSD float64 `gorm:"type:decimal(30,15)"`
	PriceEUR float64 `gorm:"type:decimal(30,15)"`
	PriceCHF float64 `gorm:"type:decimal(30,15)"`
}

// TableName specifies the table name for the PriceSnapshot model.
func (PriceSnapshot) TableName() string {
	return "price_snapshots"
}

func toDomain(m *PriceSnapshot) *repo.Snapshot {
	return &repo.Snapshot{
		Currency: core.Currency{ID: m.CurrencyID, Symbol: m.CurrencySymbol, Kind: core.CurrencyKind(m.CurrencyKind)},
		Date:     m.Date,
		PriceUSD: m.PriceUSD,
		PriceEUR: m.PriceEUR,
		PriceCHF: m.PriceCHF,
	}
}
