package core

import "fmt"

// CurrencyKind distinguishes fiat currencies from tradable assets.
type CurrencyKind string

const (
	KindFiat  CurrencyKind = "fiat"
	KindAsset CurrencyKind = "asset"
)

// Currency is a read-only reference to a fiat currency or tradable asset.
// Identity is (Kind, ID); the symbol is the human-readable name used on
// resolved prices.
type Currency struct {
	ID     uint         `json:"id"`
	Symbol string       `json:"symbol"`
	Kind   CurrencyKind `json:"kind"`
}

// Fiat creates a fiat currency reference.
func Fiat(id uint, symbol string) Currency {
	return Currency{ID: id, Symbol: symbol, Kind: KindFiat}
}

// Asset creates a tradable asset reference.
func Asset(id uint, symbol string) Currency {
	return Currency{ID: id, Symbol: symbol, Kind: KindAsset}
}

// Equal reports whether two references identify the same currency.
func (c Currency) Equal(other Currency) bool {
	return c.Kind == other.Kind && c.ID == other.ID
}

// Key returns a stable cache key for the currency identity.
func (c Currency) Key() string {
	return fmt.Sprintf("%s:%d", c.Kind, c.ID)
}

func (c Currency) String() string {
	return fmt.Sprintf("%s %d (%s)", c.Kind, c.ID, c.Symbol)
}
