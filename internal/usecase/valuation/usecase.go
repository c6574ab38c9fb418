package valuation

import (
	"context"

	"nft-lending-backend/internal/domain/event"
	"nft-lending-backend/internal/domain/uow"
	domain "nft-lending-backend/internal/domain/valuation"
)

// DefaultMaxBatchSize bounds batchSetValuations so one call cannot grow
// without limit.
const DefaultMaxBatchSize = 100

type Config struct {
	MaxBatchSize int
}

type Usecase struct {
	uow    uow.UnitOfWork
	events *event.Publisher
	cfg    Config
}

func NewUsecase(tx uow.UnitOfWork, events *event.Publisher, cfg Config) *Usecase {
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = DefaultMaxBatchSize
	}
	return &Usecase{uow: tx, events: events, cfg: cfg}
}

func (u *Usecase) Set(ctx context.Context, in SetInput) (*ValuationDTO, error) {
	rating := domain.Rating(in.Rating)
	if !rating.Valid() {
		return nil, domain.ErrBadRating
	}
	if !in.Value.IsPositive() {
		return nil, domain.ErrZeroValue
	}

	v := &domain.Valuation{
		Collection: in.Collection,
		TokenID:    in.TokenID,
		Value:      in.Value,
		Rating:     rating,
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		g, err := r.Guard.Get(ctx)
		if err != nil {
			return err
		}
		if err := g.RequireAdmin(in.Caller); err != nil {
			return err
		}
		if err := g.RequireRunning(); err != nil {
			return err
		}
		return r.Valuations.Upsert(ctx, v)
	})
	if err != nil {
		return nil, err
	}

	dto := toDTO(v)
	u.events.Emit(ctx, event.ChannelValuation, event.TypeValuationSet, dto)
	return dto, nil
}

// BatchSet applies every entry or none: mismatched lengths, oversized
// batches, and any invalid entry reject the whole call.
func (u *Usecase) BatchSet(ctx context.Context, in BatchSetInput) ([]ValuationDTO, error) {
	n := len(in.TokenIDs)
	if len(in.Values) != n || len(in.Ratings) != n {
		return nil, domain.ErrLengthMismatch
	}
	if n == 0 || n > u.cfg.MaxBatchSize {
		return nil, domain.ErrBatchTooLarge
	}

	vs := make([]*domain.Valuation, 0, n)
	for i := 0; i < n; i++ {
		rating := domain.Rating(in.Ratings[i])
		if !rating.Valid() {
			return nil, domain.ErrBadRating
		}
		if !in.Values[i].IsPositive() {
			return nil, domain.ErrZeroValue
		}
		vs = append(vs, &domain.Valuation{
			Collection: in.Collection,
			TokenID:    in.TokenIDs[i],
			Value:      in.Values[i],
			Rating:     rating,
		})
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		g, err := r.Guard.Get(ctx)
		if err != nil {
			return err
		}
		if err := g.RequireAdmin(in.Caller); err != nil {
			return err
		}
		if err := g.RequireRunning(); err != nil {
			return err
		}
		for _, v := range vs {
			if err := r.Valuations.Upsert(ctx, v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]ValuationDTO, 0, n)
	for _, v := range vs {
		dto := toDTO(v)
		u.events.Emit(ctx, event.ChannelValuation, event.TypeValuationSet, dto)
		out = append(out, *dto)
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, collection string, tokenID uint64) (*ValuationDTO, error) {
	var dto *ValuationDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		v, err := r.Valuations.Get(ctx, collection, tokenID)
		if err != nil {
			return err
		}
		dto = toDTO(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) SetFloorPrice(ctx context.Context, in SetFloorPriceInput) error {
	if !in.FloorPrice.IsPositive() {
		return domain.ErrZeroValue
	}
	fp := &domain.FloorPrice{Collection: in.Collection, FloorPrice: in.FloorPrice}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		g, err := r.Guard.Get(ctx)
		if err != nil {
			return err
		}
		if err := g.RequireAdmin(in.Caller); err != nil {
			return err
		}
		if err := g.RequireRunning(); err != nil {
			return err
		}
		return r.Valuations.UpsertFloorPrice(ctx, fp)
	})
	if err != nil {
		return err
	}
	u.events.Emit(ctx, event.ChannelValuation, event.TypeFloorPriceUpdated, map[string]any{
		"collection":  in.Collection,
		"floor_price": in.FloorPrice,
	})
	return nil
}

func toDTO(v *domain.Valuation) *ValuationDTO {
	return &ValuationDTO{
		Collection: v.Collection,
		TokenID:    v.TokenID,
		Value:      v.Value,
		Rating:     string(v.Rating),
		UpdatedAt:  v.UpdatedAt,
	}
}
