package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	ListByBorrower(ctx context.Context, borrower string, offset, limit int) ([]Loan, error)

	GetHistory(ctx context.Context, borrower string) (*History, error)
	IncrementRepaid(ctx context.Context, borrower string) error

	IsContractSupported(ctx context.Context, contract string) (bool, error)
	SetContractSupported(ctx context.Context, contract string, enabled bool) error
	IsTokenSupported(ctx context.Context, token string) (bool, error)
	SetTokenSupported(ctx context.Context, token string, enabled bool, decimals uint8) error
}
