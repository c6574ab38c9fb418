package mysql

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	loanDomain "nft-lending-backend/internal/domain/loan"
	stakeDomain "nft-lending-backend/internal/domain/stake"
	"nft-lending-backend/internal/domain/uow"
)

func TestUoW_WithinTxRollsBackAllEffects(t *testing.T) {
	db := openTestDB(t)
	unit := NewGormUoW(db)
	ctx := context.Background()

	staker := strings.Repeat("a", 32)
	sentinel := errors.New("boom")

	err := unit.WithinTx(ctx, func(r uow.Repos) error {
		now := time.Now().UTC()
		if err := r.Stakes.Create(ctx, &stakeDomain.Stake{
			TokenID: 1, Staker: staker,
			StakedAt: now, LastClaimAt: now,
			Accumulated: decimal.Zero, Weight: 1,
		}); err != nil {
			return err
		}
		if err := r.Fungibles.Mint(ctx, "rwd", staker, decimal.RequireFromString("10")); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want sentinel", err)
	}

	// both writes are gone
	if _, err := NewStakeRepository(db).GetByTokenID(ctx, 1); !errors.Is(err, stakeDomain.ErrNotStaked) {
		t.Fatalf("stake survived rollback: err = %v", err)
	}
	bal, err := NewFungibleRepository(db).BalanceOf(ctx, "rwd", staker)
	if err != nil || !bal.IsZero() {
		t.Fatalf("balance survived rollback: %s (err = %v)", bal, err)
	}
}

func TestUoW_WithinLoanTx(t *testing.T) {
	db := openTestDB(t)
	unit := NewGormUoW(db)
	ctx := context.Background()

	loanID := strings.Repeat("1", 32)
	if err := NewLoanRepository(db).Create(ctx, makeLoan(loanID, 7, strings.Repeat("b", 32))); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := unit.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		l.Status = loanDomain.StatusCancelled
		return r.Loans.Save(ctx, l)
	})
	if err != nil {
		t.Fatalf("WithinLoanTx: %v", err)
	}

	got, err := NewLoanRepository(db).GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if got.Status != loanDomain.StatusCancelled {
		t.Fatalf("status = %s, want cancelled", got.Status)
	}

	err = unit.WithinLoanTx(ctx, strings.Repeat("f", 32), func(uow.Repos, *loanDomain.Loan) error {
		t.Fatal("fn must not run for a missing loan")
		return nil
	})
	if !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("missing loan: err = %v", err)
	}
}

func TestUoW_WithinStakeTx(t *testing.T) {
	db := openTestDB(t)
	unit := NewGormUoW(db)
	ctx := context.Background()

	staker := strings.Repeat("a", 32)
	now := time.Now().UTC()
	if err := NewStakeRepository(db).Create(ctx, &stakeDomain.Stake{
		TokenID: 9, Staker: staker,
		StakedAt: now, LastClaimAt: now,
		Accumulated: decimal.Zero, Weight: 1,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := unit.WithinStakeTx(ctx, 9, func(r uow.Repos, s *stakeDomain.Stake) error {
		s.Accumulated = decimal.RequireFromString("5")
		return r.Stakes.Save(ctx, s)
	})
	if err != nil {
		t.Fatalf("WithinStakeTx: %v", err)
	}

	got, err := NewStakeRepository(db).GetByTokenID(ctx, 9)
	if err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if !got.Accumulated.Equal(decimal.RequireFromString("5")) {
		t.Fatalf("accumulated = %s, want 5", got.Accumulated)
	}

	err = unit.WithinStakeTx(ctx, 404, func(uow.Repos, *stakeDomain.Stake) error {
		t.Fatal("fn must not run for a missing stake")
		return nil
	})
	if !errors.Is(err, stakeDomain.ErrNotStaked) {
		t.Fatalf("missing stake: err = %v", err)
	}
}
