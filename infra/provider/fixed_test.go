package provider_test

import (
	"context"
	"testing"

	"github.com/amirasaad/brokerage/infra/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedProvider(t *testing.T) {
	p := provider.NewFixedProvider()

	t.Run("defaults to parity", func(t *testing.T) {
		got, err := p.GetPrice(context.Background(), "USD", "USDC", "")
		require.NoError(t, err)
		assert.Equal(t, "USD", got.Source)
		assert.Equal(t, "USDC", got.Target)
		assert.InDelta(t, 1.0, got.Value, 1e-12)
		assert.True(t, got.Valid)
	})

	t.Run("param overrides the rate", func(t *testing.T) {
		got, err := p.GetPrice(context.Background(), "XCHF", "CHF", "0.98")
		require.NoError(t, err)
		assert.InDelta(t, 0.98, got.Value, 1e-12)
	})

	t.Run("invalid param fails", func(t *testing.T) {
		_, err := p.GetPrice(context.Background(), "USD", "USDC", "one")
		assert.Error(t, err)
	})
}
