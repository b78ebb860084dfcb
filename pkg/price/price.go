// Package price provides the exchange price value object used by the
// pricing engine.
//
// A Price expresses the rate between a source and a target unit.
// Invariants:
//   - Convert divides by the price value; a zero value is an error.
//   - Invert swaps source and target and replaces the value with its
//     reciprocal, preserving validity.
//   - Join requires a currency-chained sequence (each target matches the
//     next source) and multiplies the values; the result is valid only if
//     every input is valid.
package price

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrZeroPrice is returned when converting with a zero price value.
	ErrZeroPrice = errors.New("price value is zero")

	// ErrEmptyJoin is returned when joining an empty price sequence.
	ErrEmptyJoin = errors.New("cannot join empty price sequence")
)

// ChainError indicates that two adjacent prices in a join do not share a
// common unit.
type ChainError struct {
	Target string
	Source string
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("price chain mismatch: %s != %s", e.Target, e.Source)
}

// Price represents an exchange rate from Source to Target.
type Price struct {
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Value     float64   `json:"price"`
	Valid     bool      `json:"isValid"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// New creates a valid price without a timestamp.
func New(source, target string, value float64) Price {
	return Price{Source: source, Target: target, Value: value, Valid: true}
}

// NewAt creates a price with explicit validity and timestamp.
func NewAt(source, target string, value float64, valid bool, timestamp time.Time) Price {
	return Price{Source: source, Target: target, Value: value, Valid: valid, Timestamp: timestamp}
}

// Invert returns the reverse price (target to source).
func (p Price) Invert() Price {
	return Price{
		Source:    p.Target,
		Target:    p.Source,
		Value:     1 / p.Value,
		Valid:     p.Valid,
		Timestamp: p.Timestamp,
	}
}

// Convert converts an amount in source units to target units. Rounding is
// applied only when decimals is supplied.
func (p Price) Convert(amount float64, decimals ...int) (float64, error) {
	if p.Value == 0 {
		return 0, fmt.Errorf("cannot convert %s to %s: %w", p.Source, p.Target, ErrZeroPrice)
	}

	result := amount / p.Value
	if len(decimals) > 0 {
		result = round(result, decimals[0])
	}
	return result, nil
}

// Join composes a chained sequence of prices into a single price from the
// first source to the last target. Joining a single price is the identity.
func Join(prices ...Price) (Price, error) {
	if len(prices) == 0 {
		return Price{}, ErrEmptyJoin
	}

	joined := Price{
		Source: prices[0].Source,
		Target: prices[len(prices)-1].Target,
		Value:  1,
		Valid:  true,
	}

	for i, p := range prices {
		if i > 0 && prices[i-1].Target != p.Source {
			return Price{}, &ChainError{Target: prices[i-1].Target, Source: p.Source}
		}

		joined.Value *= p.Value
		joined.Valid = joined.Valid && p.Valid
		if joined.Timestamp.IsZero() || (!p.Timestamp.IsZero() && p.Timestamp.Before(joined.Timestamp)) {
			joined.Timestamp = p.Timestamp
		}
	}

	return joined, nil
}

func round(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
