// Package pricerule implements the price rule repository on gorm.
package pricerule

import (
	"context"
	"errors"

	"github.com/amirasaad/brokerage/pkg/pricing/core"
	repo "github.com/amirasaad/brokerage/pkg/repository/pricerule"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New creates a price rule repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// FindForCurrency implements pricerule.Repository.
func (r *repository) FindForCurrency(
	ctx context.Context,
	currency core.Currency,
) (*core.PriceRule, error) {
	var m PriceRule
	err := r.db.WithContext(ctx).
		Where("currency_kind = ? AND currency_id = ?", string(currency.Kind), currency.ID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomain(&m), nil
}

// List implements pricerule.Repository.
func (r *repository) List(ctx context.Context) ([]*core.PriceRule, error) {
	var models []PriceRule
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	rules := make([]*core.PriceRule, 0, len(models))
	for i := range models {
		rules = append(rules, toDomain(&models[i]))
	}
	return rules, nil
}

// Save implements pricerule.Repository. Only the accepted price and its
// timestamp are written back; rule configuration stays untouched.
func (r *repository) Save(ctx context.Context, rule *core.PriceRule) error {
	return r.db.WithContext(ctx).
		Model(&PriceRule{}).
		Where("id = ?", rule.ID).
		Updates(map[string]any{
			"current_price":   rule.CurrentPrice,
			"price_timestamp": rule.PriceTimestamp,
		}).Error
}

// Upsert implements pricerule.Repository.
func (r *repository) Upsert(ctx context.Context, rule *core.PriceRule) error {
	m := fromDomain(rule)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "currency_kind"}, {Name: "currency_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"source", "asset", "reference", "param",
			"reference_currency_id", "reference_currency_kind", "reference_currency_symbol",
			"check1_source", "check1_asset", "check1_reference", "check1_param", "check1_limit",
			"check2_source", "check2_asset", "check2_reference", "check2_param", "check2_limit",
			"validity_seconds",
		}),
	}).Create(m).Error
}
