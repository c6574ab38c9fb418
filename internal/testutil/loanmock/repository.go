package loanmock

import (
	"context"

	domain "nft-lending-backend/internal/domain/loan"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	ListByBorrowerFn       func(ctx context.Context, borrower string, offset, limit int) ([]domain.Loan, error)
	GetHistoryFn           func(ctx context.Context, borrower string) (*domain.History, error)
	IncrementRepaidFn      func(ctx context.Context, borrower string) error
	IsContractSupportedFn  func(ctx context.Context, contract string) (bool, error)
	SetContractSupportedFn func(ctx context.Context, contract string, enabled bool) error
	IsTokenSupportedFn     func(ctx context.Context, token string) (bool, error)
	SetTokenSupportedFn    func(ctx context.Context, token string, enabled bool, decimals uint8) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) ListByBorrower(ctx context.Context, borrower string, offset, limit int) ([]domain.Loan, error) {
	if m.ListByBorrowerFn != nil {
		return m.ListByBorrowerFn(ctx, borrower, offset, limit)
	}
	return nil, nil
}

func (m *Repo) GetHistory(ctx context.Context, borrower string) (*domain.History, error) {
	if m.GetHistoryFn != nil {
		return m.GetHistoryFn(ctx, borrower)
	}
	return &domain.History{Borrower: borrower}, nil
}

func (m *Repo) IncrementRepaid(ctx context.Context, borrower string) error {
	if m.IncrementRepaidFn != nil {
		return m.IncrementRepaidFn(ctx, borrower)
	}
	return nil
}

func (m *Repo) IsContractSupported(ctx context.Context, contract string) (bool, error) {
	if m.IsContractSupportedFn != nil {
		return m.IsContractSupportedFn(ctx, contract)
	}
	return true, nil
}

func (m *Repo) SetContractSupported(ctx context.Context, contract string, enabled bool) error {
	if m.SetContractSupportedFn != nil {
		return m.SetContractSupportedFn(ctx, contract, enabled)
	}
	return nil
}

func (m *Repo) IsTokenSupported(ctx context.Context, token string) (bool, error) {
	if m.IsTokenSupportedFn != nil {
		return m.IsTokenSupportedFn(ctx, token)
	}
	return true, nil
}

func (m *Repo) SetTokenSupported(ctx context.Context, token string, enabled bool, decimals uint8) error {
	if m.SetTokenSupportedFn != nil {
		return m.SetTokenSupportedFn(ctx, token, enabled, decimals)
	}
	return nil
}
