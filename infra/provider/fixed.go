// Package provider contains in-tree pricing provider implementations.
// Market-data providers (exchanges, DEX quoters, FX feeds) live outside
// this repository and plug in through the same interface.
package provider

import (
	"context"
	"fmt"
	"strconv"

	"github.com/amirasaad/brokerage/pkg/price"
	"github.com/amirasaad/brokerage/pkg/provider"
)

// FixedProvider serves constant rates. It backs terminal rules and pegged
// pairs (for example USD/USDC parity); the rate defaults to 1 and can be
// overridden through the rule's param.
type FixedProvider struct{}

// NewFixedProvider creates a fixed-rate provider.
func NewFixedProvider() *FixedProvider {
	return &FixedProvider{}
}

// Name implements provider.PricingProvider.
func (p *FixedProvider) Name() string {
	return "Fixed"
}

// GetPrice returns the configured constant rate for the pair.
func (p *FixedProvider) GetPrice(_ context.Context, asset, reference, param string) (price.Price, error) {
	value := 1.0
	if param != "" {
		parsed, err := strconv.ParseFloat(param, 64)
		if err != nil {
			return price.Price{}, fmt.Errorf("fixed provider: invalid rate param %q: %w", param, err)
		}
		value = parsed
	}

	return price.New(asset, reference, value), nil
}

var _ provider.PricingProvider = (*FixedProvider)(nil)
