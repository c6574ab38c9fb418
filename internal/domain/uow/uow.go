package uow

import (
	"context"

	"nft-lending-backend/internal/domain/guard"
	"nft-lending-backend/internal/domain/loan"
	"nft-lending-backend/internal/domain/stake"
	"nft-lending-backend/internal/domain/token"
	"nft-lending-backend/internal/domain/valuation"
)

// Repos bundles every repository bound to one transaction. Token ledger moves
// commit or roll back together with the loan/stake state change, which is what
// makes each operation succeed-or-no-op.
type Repos struct {
	Guard      guard.Repository
	Valuations valuation.Repository
	Loans      loan.Repository
	Stakes     stake.Repository
	Fungibles  token.FungibleLedger
	Collateral token.CollateralLedger
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
	// convenience: lock the stake row first, then pass it in
	WithinStakeTx(ctx context.Context, tokenID uint64, fn func(r Repos, s *stake.Stake) error) error
}
