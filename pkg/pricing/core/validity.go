package core

import "fmt"

// Validity is the caller's tolerance for stale prices.
type Validity int

const (
	// ValidityAny accepts whatever is cached and never forces a
	// synchronous refresh (obsolete prices still do).
	ValidityAny Validity = iota

	// ValidityPreferValid refreshes synchronously but still returns a
	// stale price rather than failing.
	ValidityPreferValid

	// ValidityValidOnly requires a valid composed price and retries once
	// before failing.
	ValidityValidOnly
)

func (v Validity) String() string {
	switch v {
	case ValidityAny:
		return "any"
	case ValidityPreferValid:
		return "prefer-valid"
	case ValidityValidOnly:
		return "valid-only"
	default:
		return fmt.Sprintf("validity(%d)", int(v))
	}
}

// ParseValidity parses the wire representation of a validity mode.
func ParseValidity(s string) (Validity, error) {
	switch s {
	case "", "any":
		return ValidityAny, nil
	case "prefer-valid":
		return ValidityPreferValid, nil
	case "valid-only":
		return ValidityValidOnly, nil
	default:
		return ValidityAny, fmt.Errorf("unknown validity mode %q", s)
	}
}
