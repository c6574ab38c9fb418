package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	valuationDomain "nft-lending-backend/internal/domain/valuation"
)

type ValuationRepository struct{ db *gorm.DB }

func NewValuationRepository(db *gorm.DB) *ValuationRepository {
	return &ValuationRepository{db: db}
}

// Upsert overwrites an existing (collection, tokenID) entry in place.
func (r *ValuationRepository) Upsert(ctx context.Context, v *valuationDomain.Valuation) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}, {Name: "token_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "rating", "updated_at"}),
		}).
		Create(v).Error
}

func (r *ValuationRepository) Get(ctx context.Context, collection string, tokenID uint64) (*valuationDomain.Valuation, error) {
	var out valuationDomain.Valuation
	res := r.db.WithContext(ctx).
		Where("collection = ? AND token_id = ?", collection, tokenID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, valuationDomain.ErrNotValued
	}
	return &out, res.Error
}

func (r *ValuationRepository) UpsertFloorPrice(ctx context.Context, fp *valuationDomain.FloorPrice) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}},
			DoUpdates: clause.AssignmentColumns([]string{"floor_price", "updated_at"}),
		}).
		Create(fp).Error
}

func (r *ValuationRepository) GetFloorPrice(ctx context.Context, collection string) (*valuationDomain.FloorPrice, error) {
	var out valuationDomain.FloorPrice
	res := r.db.WithContext(ctx).Where("collection = ?", collection).First(&out)
	return &out, res.Error
}
