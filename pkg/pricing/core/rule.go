package core

import (
	"time"

	"github.com/amirasaad/brokerage/pkg/price"
	"github.com/go-playground/validator/v10"
)

const (
	// refreshMargin refreshes a rule slightly before its validity window
	// ends, so a price cannot expire mid-response.
	refreshMargin = 15 * time.Second

	// obsoleteFactor marks a price as obsolete once it has exceeded a
	// multiple of its validity window; obsolete prices force a
	// synchronous refresh even for staleness-tolerant callers.
	obsoleteFactor = 2
)

// PriceSource identifies a configured pricing provider.
type PriceSource string

const (
	SourceKraken      PriceSource = "Kraken"
	SourceBinance     PriceSource = "Binance"
	SourceCoinGecko   PriceSource = "CoinGecko"
	SourceDex         PriceSource = "DEX"
	SourceFixer       PriceSource = "Fixer"
	SourceCurrency    PriceSource = "Currency"
	SourceFrankencoin PriceSource = "Frankencoin"
	SourceFixed       PriceSource = "Fixed"
)

// RuleQuery describes one provider lookup: which source to ask and for
// which asset/reference pair.
type RuleQuery struct {
	Source    PriceSource `json:"source" validate:"required"`
	Asset     string      `json:"asset" validate:"required"`
	Reference string      `json:"reference" validate:"required"`
	Param     string      `json:"param,omitempty"`
}

// CheckQuery is a secondary lookup used to validate, never to replace, the
// primary price. Limit is the maximum tolerated fractional deviation.
type CheckQuery struct {
	RuleQuery
	Limit float64 `json:"limit" validate:"gt=0,lte=1"`
}

// PriceRule is the resolution chain node for one currency. Rules are
// configured administratively; the engine only reads them and writes back
// CurrentPrice and PriceTimestamp on a successful update.
type PriceRule struct {
	ID       uint      `json:"id"`
	Currency Currency  `json:"currency"`
	Query    RuleQuery `json:"rule" validate:"required"`

	// Reference is the next chain hop; nil marks a terminal rule, which
	// ends the chain at the currency's own unit.
	Reference *Currency `json:"reference,omitempty"`

	Check1 *CheckQuery `json:"check1,omitempty"`
	Check2 *CheckQuery `json:"check2,omitempty"`

	CurrentPrice   *float64   `json:"currentPrice,omitempty"`
	PriceTimestamp *time.Time `json:"priceTimestamp,omitempty"`

	ValiditySeconds int `json:"validitySeconds" validate:"gt=0"`
}

// IsTerminal reports whether the rule ends a chain.
func (r *PriceRule) IsTerminal() bool {
	return r.Reference == nil
}

// HasPrice reports whether the rule holds an accepted price.
func (r *PriceRule) HasPrice() bool {
	return r.CurrentPrice != nil && r.PriceTimestamp != nil
}

// Validity returns the rule's validity window.
func (r *PriceRule) Validity() time.Duration {
	return time.Duration(r.ValiditySeconds) * time.Second
}

// ShouldUpdate reports whether the rule's price needs a refresh.
func (r *PriceRule) ShouldUpdate() bool {
	if !r.HasPrice() {
		return true
	}
	return time.Since(*r.PriceTimestamp) > r.Validity()-refreshMargin
}

// Obsolete reports whether the price is too old to serve even to
// staleness-tolerant callers.
func (r *PriceRule) Obsolete() bool {
	if !r.HasPrice() {
		return true
	}
	return time.Since(*r.PriceTimestamp) > obsoleteFactor*r.Validity()
}

// TargetSymbol is the unit the rule prices its currency in.
func (r *PriceRule) TargetSymbol() string {
	if r.Reference != nil {
		return r.Reference.Symbol
	}
	return r.Currency.Symbol
}

// Price returns the rule's current price as a value object. The price is
// valid only while the rule does not need an update.
func (r *PriceRule) Price() price.Price {
	var (
		value     float64
		timestamp time.Time
	)
	if r.CurrentPrice != nil {
		value = *r.CurrentPrice
	}
	if r.PriceTimestamp != nil {
		timestamp = *r.PriceTimestamp
	}

	return price.NewAt(r.Currency.Symbol, r.TargetSymbol(), value, !r.ShouldUpdate(), timestamp)
}

// Clone returns a deep copy of the rule. Updates work on copies so that
// chains already handed out to concurrent readers stay untouched.
func (r *PriceRule) Clone() *PriceRule {
	clone := *r

	if r.Reference != nil {
		ref := *r.Reference
		clone.Reference = &ref
	}
	if r.Check1 != nil {
		c := *r.Check1
		clone.Check1 = &c
	}
	if r.Check2 != nil {
		c := *r.Check2
		clone.Check2 = &c
	}
	if r.CurrentPrice != nil {
		v := *r.CurrentPrice
		clone.CurrentPrice = &v
	}
	if r.PriceTimestamp != nil {
		ts := *r.PriceTimestamp
		clone.PriceTimestamp = &ts
	}

	return &clone
}

// SetPrice records a freshly accepted price on the rule.
func (r *PriceRule) SetPrice(value float64, timestamp time.Time) {
	r.CurrentPrice = &value
	r.PriceTimestamp = &timestamp
}

var validate = validator.New()

// Validate checks the rule's configuration shape.
func (r *PriceRule) Validate() error {
	return validate.Struct(r)
}
