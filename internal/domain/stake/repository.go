package stake

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, s *Stake) error
	Save(ctx context.Context, s *Stake) error
	Delete(ctx context.Context, s *Stake) error
	GetByTokenID(ctx context.Context, tokenID uint64) (*Stake, error)
	GetByTokenIDForUpdate(ctx context.Context, tokenID uint64) (*Stake, error)
	ListByStaker(ctx context.Context, staker string, offset, limit int) ([]Stake, error)

	// Tunable accrual parameters, persisted as a single row so updates apply
	// to future accrual across restarts.
	GetRewardRate(ctx context.Context) (decimal.Decimal, int64, error)
	SaveRewardRate(ctx context.Context, baseRewardRate decimal.Decimal, timeWeightFactor int64) error
}
