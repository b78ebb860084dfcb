// Package pricerule defines the persistence contract for price rules.
package pricerule

import (
	"context"

	"github.com/amirasaad/brokerage/pkg/pricing/core"
)

// Repository reads and writes persisted price rules. The persisted record
// is the single source of truth for a rule's current price.
type Repository interface {
	// FindForCurrency returns the rule owning the currency, or nil when
	// none is configured.
	FindForCurrency(ctx context.Context, currency core.Currency) (*core.PriceRule, error)

	// List returns every persisted rule.
	List(ctx context.Context) ([]*core.PriceRule, error)

	// Save persists the rule's current price and timestamp.
	Save(ctx context.Context, rule *core.PriceRule) error

	// Upsert creates or replaces a rule's configuration. Used by the
	// administrative rule endpoint, never by the resolution path.
	Upsert(ctx context.Context, rule *core.PriceRule) error
}
