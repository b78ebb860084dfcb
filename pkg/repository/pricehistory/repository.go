// Package pricehistory defines the read contract for daily price snapshots.
package pricehistory

import (
	"context"
	"time"

	"github.com/amirasaad/brokerage/pkg/pricing/core"
)

// Snapshot is a recorded daily mean price in the reference fiat units.
// Snapshots are written by a recording job outside the pricing core.
type Snapshot struct {
	Currency core.Currency
	Date     time.Time
	PriceUSD float64
	PriceEUR float64
	PriceCHF float64
}

// Repository looks up previously recorded period snapshots.
type Repository interface {
	// FindSnapshot returns the snapshot for the currency on the given
	// day, or nil when none was recorded.
	FindSnapshot(ctx context.Context, currency core.Currency, date time.Time) (*Snapshot, error)
}
