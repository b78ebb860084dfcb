package pricerule

import (
	"time"

	"github.com/amirasaad/brokerage/pkg/pricing/core"
	"gorm.io/gorm"
)

// PriceRule is the persisted form of a pricing rule.
type PriceRule struct {
	gorm.Model

	CurrencyID     uint   `gorm:"index:idx_price_rules_currency,unique;not null"`
	CurrencyKind   string `gorm:"type:varchar(8);index:idx_price_rules_currency,unique;not null"`
	CurrencySymbol string `gorm:"type:varchar(32);not null"`

	Source    string `gorm:"type:varchar(32);not null"`
	Asset     string `gorm:"type:varchar(32);not null"`
	Reference string `gorm:"type:varchar(32);not null"`
	Param     string `gorm:"type:varchar(128)"`

	// Reference* columns hold the next chain hop; null marks a terminal rule.
	ReferenceID     *uint   `gorm:"column:reference_currency_id"`
	ReferenceKind   *string `gorm:"type:varchar(8);column:reference_currency_kind"`
	ReferenceSymbol *string `gorm:"type:varchar(32);column:reference_currency_symbol"`

	Check1 ruleCheck `gorm:"embedded;embeddedPrefix:check1_"`
	Check2 ruleCheck `gorm:"embedded;embeddedPrefix:check2_"`

	CurrentPrice    *float64   `gorm:"type:decimal(30,15)"`
	PriceTimestamp  *time.Time `gorm:"column:price_timestamp"`
	ValiditySeconds int        `gorm:"not null;default:300"`
}

// ruleCheck is an optional cross-check lookup; present when Source is set.
type ruleCheck struct {
	Source    string  `gorm:"type:varchar(32)"`
	Asset     string  `gorm:"type:varchar(32)"`
	Reference string  `gorm:"type:varchar(32)"`
	Param     string  `gorm:"type:varchar(128)"`
	Limit     float64 `gorm:"type:decimal(10,6)"`
}

// TableName specifies the table name for the PriceRule model.
func (PriceRule) TableName() string {
	return "price_rules"
}

func toDomain(m *PriceRule) *core.PriceRule {
	rule := &core.PriceRule{
		ID:       m.ID,
		Currency: core.Currency{ID: m.CurrencyID, Symbol: m.CurrencySymbol, Kind: core.CurrencyKind(m.CurrencyKind)},
		Query: core.RuleQuery{
			Source:    core.PriceSource(m.Source),
			Asset:     m.Asset,
			Reference: m.Reference,
			Param:     m.Param,
		},
		CurrentPrice:    m.CurrentPrice,
		PriceTimestamp:  m.PriceTimestamp,
		ValiditySeconds: m.ValiditySeconds,
	}

	if m.ReferenceID != nil && m.ReferenceKind != nil && m.ReferenceSymbol != nil {
		ref := core.Currency{ID: *m.ReferenceID, Symbol: *m.ReferenceSymbol, Kind: core.CurrencyKind(*m.ReferenceKind)}
		rule.Reference = &ref
	}

	rule.Check1 = checkToDomain(m.Check1)
	rule.Check2 = checkToDomain(m.Check2)

	return rule
}

func checkToDomain(c ruleCheck) *core.CheckQuery {
	if c.Source == "" {
		return nil
	}
	return &core.CheckQuery{
		RuleQuery: core.RuleQuery{
			Source:    core.PriceSource(c.Source),
			Asset:     c.Asset,
			Reference: c.Reference,
			Param:     c.Param,
		},
		Limit: c.Limit,
	}
}

func fromDomain(rule *core.PriceRule) *PriceRule {
	m := &PriceRule{
		Model:           gorm.Model{ID: rule.ID},
		CurrencyID:      rule.Currency.ID,
		CurrencyKind:    string(rule.Currency.Kind),
		CurrencySymbol:  rule.Currency.Symbol,
		Source:          string(rule.Query.Source),
		Asset:           rule.Query.Asset,
		Reference:       rule.Query.Reference,
		Param:           rule.Query.Param,
		CurrentPrice:    rule.CurrentPrice,
		PriceTimestamp:  rule.PriceTimestamp,
		ValiditySeconds: rule.ValiditySeconds,
	}

	if rule.Reference != nil {
		id := rule.Reference.ID
		kind := string(rule.Reference.Kind)
		symbol := rule.Reference.Symbol
		m.ReferenceID = &id
		m.ReferenceKind = &kind
		m.ReferenceSymbol = &symbol
	}

	m.Check1 = checkFromDomain(rule.Check1)
	m.Check2 = checkFromDomain(rule.Check2)

	return m
}

func checkFromDomain(c *core.CheckQuery) ruleCheck {
	if c == nil {
		return ruleCheck{}
	}
	return ruleCheck{
		Source:    string(c.Source),
		Asset:     c.Asset,
		Reference: c.Reference,
		Param:     c.Param,
		Limit:     c.Limit,
	}
}
