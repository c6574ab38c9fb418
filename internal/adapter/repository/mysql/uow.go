package mysql

import (
	"context"

	"gorm.io/gorm"

	"nft-lending-backend/internal/domain/loan"
	"nft-lending-backend/internal/domain/stake"
	"nft-lending-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func bind(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Guard:      &GuardRepository{db: tx},
		Valuations: &ValuationRepository{db: tx},
		Loans:      &LoanRepository{db: tx},
		Stakes:     &StakeRepository{db: tx},
		Fungibles:  &FungibleRepository{db: tx},
		Collateral: &CollateralRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(bind(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := bind(tx)
		// lock the loan row up-front to prevent races
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}

func (u *GormUoW) WithinStakeTx(ctx context.Context, tokenID uint64, fn func(r uow.Repos, s *stake.Stake) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := bind(tx)
		s, err := r.Stakes.GetByTokenIDForUpdate(ctx, tokenID)
		if err != nil {
			return err
		}
		return fn(r, s)
	})
}

var _ uow.UnitOfWork = (*GormUoW)(nil)
