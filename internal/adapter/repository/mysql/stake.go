package mysql

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	stakeDomain "nft-lending-backend/internal/domain/stake"
)

type StakeRepository struct{ db *gorm.DB }

func NewStakeRepository(db *gorm.DB) *StakeRepository { return &StakeRepository{db: db} }

func (r *StakeRepository) Create(ctx context.Context, s *stakeDomain.Stake) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StakeRepository) Save(ctx context.Context, s *stakeDomain.Stake) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *StakeRepository) Delete(ctx context.Context, s *stakeDomain.Stake) error {
	return r.db.WithContext(ctx).Delete(s).Error
}

func (r *StakeRepository) GetByTokenID(ctx context.Context, tokenID uint64) (*stakeDomain.Stake, error) {
	var out stakeDomain.Stake
	res := r.db.WithContext(ctx).Where("token_id = ?", tokenID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, stakeDomain.ErrNotStaked
	}
	return &out, res.Error
}

func (r *StakeRepository) GetByTokenIDForUpdate(ctx context.Context, tokenID uint64) (*stakeDomain.Stake, error) {
	var out stakeDomain.Stake
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("token_id = ?", tokenID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, stakeDomain.ErrNotStaked
	}
	return &out, res.Error
}

func (r *StakeRepository) ListByStaker(ctx context.Context, staker string, offset, limit int) ([]stakeDomain.Stake, error) {
	var out []stakeDomain.Stake
	res := r.db.WithContext(ctx).
		Where("staker = ?", staker).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&out)
	return out, res.Error
}

func (r *StakeRepository) GetRewardRate(ctx context.Context) (decimal.Decimal, int64, error) {
	var rr stakeDomain.RewardRate
	if err := r.db.WithContext(ctx).First(&rr).Error; err != nil {
		return decimal.Zero, 0, err
	}
	return rr.BaseRewardRate, rr.TimeWeightFactor, nil
}

func (r *StakeRepository) SaveRewardRate(ctx context.Context, baseRewardRate decimal.Decimal, timeWeightFactor int64) error {
	var rr stakeDomain.RewardRate
	if err := r.db.WithContext(ctx).First(&rr).Error; err != nil {
		return err
	}
	rr.BaseRewardRate = baseRewardRate
	rr.TimeWeightFactor = timeWeightFactor
	return r.db.WithContext(ctx).Save(&rr).Error
}
