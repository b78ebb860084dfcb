package price_test

import (
	"testing"

	"github.com/amirasaad/brokerage/pkg/price"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		price    price.Price
		amount   float64
		decimals []int
		expected float64
		wantErr  error
	}{
		{
			name:     "divides by price value",
			price:    price.New("EUR", "BTC", 20000),
			amount:   10000,
			expected: 0.5,
		},
		{
			name:     "rounds only when decimals supplied",
			price:    price.New("EUR", "CHF", 3),
			amount:   1,
			decimals: []int{4},
			expected: 0.3333,
		},
		{
			name:    "zero price fails",
			price:   price.New("EUR", "BTC", 0),
			amount:  100,
			wantErr: price.ErrZeroPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.price.Convert(tt.amount, tt.decimals...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestInvert(t *testing.T) {
	p := price.New("EUR", "BTC", 20000)

	inverted := p.Invert()
	assert.Equal(t, "BTC", inverted.Source)
	assert.Equal(t, "EUR", inverted.Target)
	assert.InDelta(t, 1.0/20000, inverted.Value, 1e-12)
	assert.True(t, inverted.Valid)

	// double inversion restores the original value
	restored := inverted.Invert()
	assert.InDelta(t, p.Value, restored.Value, 1e-12)
}

func TestJoin(t *testing.T) {
	eurBtc := price.New("EUR", "BTC", 0.000049)
	btcDfi := price.New("BTC", "DFI", 23111)

	t.Run("multiplies chained values", func(t *testing.T) {
		joined, err := price.Join(eurBtc, btcDfi)
		require.NoError(t, err)
		assert.Equal(t, "EUR", joined.Source)
		assert.Equal(t, "DFI", joined.Target)
		assert.InDelta(t, 1.132439, joined.Value, 1e-6)
	})

	t.Run("single element is identity", func(t *testing.T) {
		joined, err := price.Join(eurBtc)
		require.NoError(t, err)
		assert.Equal(t, eurBtc.Source, joined.Source)
		assert.Equal(t, eurBtc.Target, joined.Target)
		assert.InDelta(t, eurBtc.Value, joined.Value, 1e-12)
	})

	t.Run("is associative", func(t *testing.T) {
		dfiUsd := price.New("DFI", "USD", 0.9)

		left, err := price.Join(eurBtc, btcDfi)
		require.NoError(t, err)
		leftFirst, err := price.Join(left, dfiUsd)
		require.NoError(t, err)

		right, err := price.Join(btcDfi, dfiUsd)
		require.NoError(t, err)
		rightFirst, err := price.Join(eurBtc, right)
		require.NoError(t, err)

		assert.InDelta(t, leftFirst.Value, rightFirst.Value, 1e-12)
		assert.Equal(t, leftFirst.Source, rightFirst.Source)
		assert.Equal(t, leftFirst.Target, rightFirst.Target)
	})

	t.Run("validity is ANDed", func(t *testing.T) {
		stale := price.NewAt("BTC", "DFI", 23111, false, eurBtc.Timestamp)
		joined, err := price.Join(eurBtc, stale)
		require.NoError(t, err)
		assert.False(t, joined.Valid)
	})

	t.Run("broken chain fails", func(t *testing.T) {
		_, err := price.Join(eurBtc, price.New("USD", "CHF", 0.9))
		var chainErr *price.ChainError
		assert.ErrorAs(t, err, &chainErr)
	})

	t.Run("empty join fails", func(t *testing.T) {
		_, err := price.Join()
		assert.ErrorIs(t, err, price.ErrEmptyJoin)
	})
}
