package uowmock

import (
	"context"
	"errors"

	"nft-lending-backend/internal/domain/loan"
	"nft-lending-backend/internal/domain/stake"
	"nft-lending-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn      func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanTxFn  func(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error
	WithinStakeTxFn func(ctx context.Context, tokenID uint64, fn func(r uow.Repos, s *stake.Stake) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough returns a UoW that runs every transaction body directly against
// the given repos, without any transactional behavior. WithinLoanTx and
// WithinStakeTx resolve the row through the repos' ForUpdate getters, the same
// contract the real unit of work provides.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(r uow.Repos) error) error {
			return fn(repos)
		},
		WithinLoanTxFn: func(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
			l, err := repos.Loans.GetByLoanIDForUpdate(ctx, loanID)
			if err != nil {
				return err
			}
			return fn(repos, l)
		},
		WithinStakeTxFn: func(ctx context.Context, tokenID uint64, fn func(r uow.Repos, s *stake.Stake) error) error {
			s, err := repos.Stakes.GetByTokenIDForUpdate(ctx, tokenID)
			if err != nil {
				return err
			}
			return fn(repos, s)
		},
	}
}

func (m *UoW) Reset() { *m = UoW{} }

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, loanID, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinStakeTx(ctx context.Context, tokenID uint64, fn func(r uow.Repos, s *stake.Stake) error) error {
	if m.WithinStakeTxFn != nil {
		return m.WithinStakeTxFn(ctx, tokenID, fn)
	}
	return errUnimplemented
}
