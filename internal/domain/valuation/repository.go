package valuation

import "context"

type Repository interface {
	Upsert(ctx context.Context, v *Valuation) error
	Get(ctx context.Context, collection string, tokenID uint64) (*Valuation, error)
	UpsertFloorPrice(ctx context.Context, fp *FloorPrice) error
	GetFloorPrice(ctx context.Context, collection string) (*FloorPrice, error)
}
