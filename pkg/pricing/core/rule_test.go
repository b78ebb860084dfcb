package core_test

import (
	"testing"
	"time"

	"github.com/amirasaad/brokerage/pkg/pricing/core"
	"github.com/stretchr/testify/assert"
)

func rule(validitySeconds int, priceAge time.Duration) *core.PriceRule {
	r := &core.PriceRule{
		ID:       1,
		Currency: core.Fiat(1, "EUR"),
		Query: core.RuleQuery{
			Source:    core.SourceFixer,
			Asset:     "EUR",
			Reference: "BTC",
		},
		ValiditySeconds: validitySeconds,
	}
	if priceAge >= 0 {
		ts := time.Now().Add(-priceAge)
		r.SetPrice(0.000049, ts)
	}
	return r
}

func TestShouldUpdate(t *testing.T) {
	tests := []struct {
		name            string
		validitySeconds int
		priceAge        time.Duration
		want            bool
	}{
		{"no price yet", 300, -1, true},
		{"fresh price", 300, 10 * time.Second, false},
		{"inside early-refresh margin", 300, 290 * time.Second, true},
		{"expired price", 300, 400 * time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rule(tt.validitySeconds, tt.priceAge).ShouldUpdate())
		})
	}
}

func TestObsolete(t *testing.T) {
	assert.True(t, rule(300, -1).Obsolete(), "missing price is obsolete")
	assert.False(t, rule(300, 400*time.Second).Obsolete(), "expired but within 2x window")
	assert.True(t, rule(300, 700*time.Second).Obsolete(), "past 2x window")
}

func TestRulePrice(t *testing.T) {
	t.Run("terminal rule prices its own unit", func(t *testing.T) {
		r := rule(300, 10*time.Second)
		r.Reference = nil

		p := r.Price()
		assert.Equal(t, "EUR", p.Source)
		assert.Equal(t, "EUR", p.Target)
		assert.True(t, p.Valid)
	})

	t.Run("chained rule prices its reference unit", func(t *testing.T) {
		r := rule(300, 10*time.Second)
		btc := core.Asset(2, "BTC")
		r.Reference = &btc

		p := r.Price()
		assert.Equal(t, "EUR", p.Source)
		assert.Equal(t, "BTC", p.Target)
		assert.InDelta(t, 0.000049, p.Value, 1e-12)
	})

	t.Run("stale rule yields invalid price", func(t *testing.T) {
		p := rule(300, 400*time.Second).Price()
		assert.False(t, p.Valid)
	})
}

func TestValidate(t *testing.T) {
	r := rule(300, -1)
	assert.NoError(t, r.Validate())

	r.Query.Asset = ""
	assert.Error(t, r.Validate())

	r = rule(300, -1)
	r.Check1 = &core.CheckQuery{
		RuleQuery: core.RuleQuery{Source: core.SourceKraken, Asset: "EUR", Reference: "BTC"},
		Limit:     1.5,
	}
	assert.Error(t, r.Validate(), "limit above 1 is rejected")
}

func TestParseValidity(t *testing.T) {
	v, err := core.ParseValidity("")
	assert.NoError(t, err)
	assert.Equal(t, core.ValidityAny, v)

	v, err = core.ParseValidity("valid-only")
	assert.NoError(t, err)
	assert.Equal(t, core.ValidityValidOnly, v)

	_, err = core.ParseValidity("sometimes")
	assert.Error(t, err)
}
