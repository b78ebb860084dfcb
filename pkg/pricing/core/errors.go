package core

import "errors"

// Configuration errors are fatal to the current request and never retried;
// they indicate a data-setup problem, not a transient condition.
var (
	// ErrNoRule indicates a currency without a configured price rule.
	ErrNoRule = errors.New("no price rule found")

	// ErrChainTooDeep indicates a cyclic or unterminated rule chain.
	ErrChainTooDeep = errors.New("price rule chain too deep")

	// ErrReferenceMismatch indicates two resolved chains that do not
	// bottom out at the same terminal currency.
	ErrReferenceMismatch = errors.New("price reference mismatch")

	// ErrUnknownSource indicates a rule referring to an unregistered
	// pricing provider.
	ErrUnknownSource = errors.New("unknown price source")
)

var (
	// ErrNoValidPrice is returned to valid-only callers after the retry
	// attempt still produced an invalid price.
	ErrNoValidPrice = errors.New("no valid price found")

	// ErrNoHistoricalPrice indicates a missing snapshot for the
	// requested date.
	ErrNoHistoricalPrice = errors.New("no historical price found")
)
