// Package pricehistory implements the snapshot repository on gorm.
package pricehistory

import (
	"context"
	"errors"
	"time"

	"github.com/amirasaad/brokerage/pkg/pricing/core"
	repo "github.com/amirasaad/brokerage/pkg/repository/pricehistory"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a price snapshot repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// FindSnapshot implements pricehistory.Repository.
func (r *repository) FindSnapshot(
	ctx context.Context,
	currency core.Currency,
	date time.Time,
) (*repo.Snapshot, error) {
	day := date.UTC().Truncate(24 * time.Hour)

	var m PriceSnapshot
	err := r.db.WithContext(ctx).
		Where("currency_kind = ? AND currency_id = ? AND date = ?", string(currency.Kind), currency.ID, day).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomain(&m), nil
}
