package valuationmock

import (
	"context"

	domain "nft-lending-backend/internal/domain/valuation"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	UpsertFn           func(ctx context.Context, v *domain.Valuation) error
	GetFn              func(ctx context.Context, collection string, tokenID uint64) (*domain.Valuation, error)
	UpsertFloorPriceFn func(ctx context.Context, fp *domain.FloorPrice) error
	GetFloorPriceFn    func(ctx context.Context, collection string) (*domain.FloorPrice, error)
}

func (m *Repo) Upsert(ctx context.Context, v *domain.Valuation) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, v)
	}
	return nil
}

func (m *Repo) Get(ctx context.Context, collection string, tokenID uint64) (*domain.Valuation, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, collection, tokenID)
	}
	return nil, domain.ErrNotValued
}

func (m *Repo) UpsertFloorPrice(ctx context.Context, fp *domain.FloorPrice) error {
	if m.UpsertFloorPriceFn != nil {
		return m.UpsertFloorPriceFn(ctx, fp)
	}
	return nil
}

func (m *Repo) GetFloorPrice(ctx context.Context, collection string) (*domain.FloorPrice, error) {
	if m.GetFloorPriceFn != nil {
		return m.GetFloorPriceFn(ctx, collection)
	}
	return nil, domain.ErrNotValued
}
