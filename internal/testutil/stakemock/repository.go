package stakemock

import (
	"context"

	"github.com/shopspring/decimal"

	domain "nft-lending-backend/internal/domain/stake"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                func(ctx context.Context, s *domain.Stake) error
	SaveFn                  func(ctx context.Context, s *domain.Stake) error
	DeleteFn                func(ctx context.Context, s *domain.Stake) error
	GetByTokenIDFn          func(ctx context.Context, tokenID uint64) (*domain.Stake, error)
	GetByTokenIDForUpdateFn func(ctx context.Context, tokenID uint64) (*domain.Stake, error)
	ListByStakerFn          func(ctx context.Context, staker string, offset, limit int) ([]domain.Stake, error)
	GetRewardRateFn         func(ctx context.Context) (decimal.Decimal, int64, error)
	SaveRewardRateFn        func(ctx context.Context, baseRewardRate decimal.Decimal, timeWeightFactor int64) error
}

func (m *Repo) Create(ctx context.Context, s *domain.Stake) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, s *domain.Stake) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, s)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, s *domain.Stake) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, s)
	}
	return nil
}

func (m *Repo) GetByTokenID(ctx context.Context, tokenID uint64) (*domain.Stake, error) {
	if m.GetByTokenIDFn != nil {
		return m.GetByTokenIDFn(ctx, tokenID)
	}
	return nil, domain.ErrNotStaked
}

func (m *Repo) GetByTokenIDForUpdate(ctx context.Context, tokenID uint64) (*domain.Stake, error) {
	if m.GetByTokenIDForUpdateFn != nil {
		return m.GetByTokenIDForUpdateFn(ctx, tokenID)
	}
	return nil, domain.ErrNotStaked
}

func (m *Repo) ListByStaker(ctx context.Context, staker string, offset, limit int) ([]domain.Stake, error) {
	if m.ListByStakerFn != nil {
		return m.ListByStakerFn(ctx, staker, offset, limit)
	}
	return nil, nil
}

func (m *Repo) GetRewardRate(ctx context.Context) (decimal.Decimal, int64, error) {
	if m.GetRewardRateFn != nil {
		return m.GetRewardRateFn(ctx)
	}
	return decimal.Zero, 0, nil
}

func (m *Repo) SaveRewardRate(ctx context.Context, baseRewardRate decimal.Decimal, timeWeightFactor int64) error {
	if m.SaveRewardRateFn != nil {
		return m.SaveRewardRateFn(ctx, baseRewardRate, timeWeightFactor)
	}
	return nil
}
