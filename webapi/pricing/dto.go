package pricing

import (
	"github.com/amirasaad/brokerage/pkg/pricing/core"
)

// CurrencyParam identifies a currency in a request.
type CurrencyParam struct {
	ID     uint   `json:"id" query:"id" validate:"required"`
	Symbol string `json:"symbol" query:"symbol" validate:"required"`
	Kind   string `json:"kind" query:"kind" validate:"required,oneof=fiat asset"`
}

func (p CurrencyParam) toDomain() core.Currency {
	return core.Currency{ID: p.ID, Symbol: p.Symbol, Kind: core.CurrencyKind(p.Kind)}
}

// PriceQuery are the query parameters of the price endpoints.
type PriceQuery struct {
	FromID     uint   `query:"fromId" validate:"required"`
	FromSymbol string `query:"fromSymbol" validate:"required"`
	FromKind   string `query:"fromKind" validate:"required,oneof=fiat asset"`
	ToID       uint   `query:"toId" validate:"required"`
	ToSymbol   string `query:"toSymbol" validate:"required"`
	ToKind     string `query:"toKind" validate:"required,oneof=fiat asset"`
	Validity   string `query:"validity" validate:"omitempty,oneof=any prefer-valid valid-only"`
}

func (q PriceQuery) from() core.Currency {
	return core.Currency{ID: q.FromID, Symbol: q.FromSymbol, Kind: core.CurrencyKind(q.FromKind)}
}

func (q PriceQuery) to() core.Currency {
	return core.Currency{ID: q.ToID, Symbol: q.ToSymbol, Kind: core.CurrencyKind(q.ToKind)}
}

// HistoricalQuery adds the snapshot day to the price query parameters.
type HistoricalQuery struct {
	PriceQuery
	Date string `query:"date" validate:"required,datetime=2006-01-02"`
}

// SourceQuery are the query parameters of the direct source endpoint.
type SourceQuery struct {
	Asset     string `query:"asset" validate:"required"`
	Reference string `query:"reference" validate:"required"`
	Param     string `query:"param"`
}

// RuleQueryRequest describes a provider lookup in a rule upsert.
type RuleQueryRequest struct {
	Source    string `json:"source" validate:"required"`
	Asset     string `json:"asset" validate:"required"`
	Reference string `json:"reference" validate:"required"`
	Param     string `json:"param,omitempty"`
}

func (r RuleQueryRequest) toDomain() core.RuleQuery {
	return core.RuleQuery{
		Source:    core.PriceSource(r.Source),
		Asset:     r.Asset,
		Reference: r.Reference,
		Param:     r.Param,
	}
}

// CheckRequest describes an optional cross-check in a rule upsert.
type CheckRequest struct {
	RuleQueryRequest
	Limit float64 `json:"limit" validate:"gt=0,lte=1"`
}

// UpsertRuleRequest creates or replaces a price rule.
type UpsertRuleRequest struct {
	Currency        CurrencyParam    `json:"currency" validate:"required"`
	Rule            RuleQueryRequest `json:"rule" validate:"required"`
	Reference       *CurrencyParam   `json:"reference,omitempty"`
	Check1          *CheckRequest    `json:"check1,omitempty"`
	Check2          *CheckRequest    `json:"check2,omitempty"`
	ValiditySeconds int              `json:"validitySeconds" validate:"gt=0"`
}

func (r UpsertRuleRequest) toDomain() *core.PriceRule {
	rule := &core.PriceRule{
		Currency:        r.Currency.toDomain(),
		Query:           r.Rule.toDomain(),
		ValiditySeconds: r.ValiditySeconds,
	}
	if r.Reference != nil {
		ref := r.Reference.toDomain()
		rule.Reference = &ref
	}
	if r.Check1 != nil {
		rule.Check1 = &core.CheckQuery{RuleQuery: r.Check1.toDomain(), Limit: r.Check1.Limit}
	}
	if r.Check2 != nil {
		rule.Check2 = &core.CheckQuery{RuleQuery: r.Check2.toDomain(), Limit: r.Check2.Limit}
	}
	return rule
}
