package mysql

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	tokenDomain "nft-lending-backend/internal/domain/token"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFungible_MintAndBalance(t *testing.T) {
	db := openTestDB(t)
	repo := NewFungibleRepository(db)
	ctx := context.Background()

	alice := strings.Repeat("a", 32)

	if err := repo.Mint(ctx, "usdt", alice, dec("0")); !errors.Is(err, tokenDomain.ErrZeroAmount) {
		t.Fatalf("zero mint: err = %v", err)
	}

	if err := repo.Mint(ctx, "usdt", alice, dec("100")); err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if err := repo.Mint(ctx, "usdt", alice, dec("25.5")); err != nil {
		t.Fatalf("Mint again: %v", err)
	}

	bal, err := repo.BalanceOf(ctx, "usdt", alice)
	if err != nil {
		t.Fatalf("BalanceOf: %v", err)
	}
	if !bal.Equal(dec("125.5")) {
		t.Fatalf("balance = %s, want 125.5", bal)
	}

	// unknown accounts read as zero, not as an error
	bal, err = repo.BalanceOf(ctx, "usdt", strings.Repeat("z", 32))
	if err != nil || !bal.IsZero() {
		t.Fatalf("unknown account: bal=%s err=%v", bal, err)
	}
}

func TestFungible_Transfer(t *testing.T) {
	db := openTestDB(t)
	repo := NewFungibleRepository(db)
	ctx := context.Background()

	alice := strings.Repeat("a", 32)
	bob := strings.Repeat("b", 32)

	if err := repo.Mint(ctx, "usdt", alice, dec("100")); err != nil {
		t.Fatalf("Mint: %v", err)
	}

	if err := repo.Transfer(ctx, "usdt", alice, bob, dec("101")); !errors.Is(err, tokenDomain.ErrInsufficientBalance) {
		t.Fatalf("overdraft: err = %v", err)
	}
	if err := repo.Transfer(ctx, "usdt", alice, bob, dec("40")); err != nil {
		t.Fatalf("Transfer: %v", err)
	}

	ab, _ := repo.BalanceOf(ctx, "usdt", alice)
	bb, _ := repo.BalanceOf(ctx, "usdt", bob)
	if !ab.Equal(dec("60")) || !bb.Equal(dec("40")) {
		t.Fatalf("balances = %s / %s, want 60 / 40", ab, bb)
	}
}

func TestFungible_TransferFrom(t *testing.T) {
	db := openTestDB(t)
	repo := NewFungibleRepository(db)
	ctx := context.Background()

	alice := strings.Repeat("a", 32)
	bob := strings.Repeat("b", 32)
	escrow := "sys:loan-escrow"

	if err := repo.Mint(ctx, "usdt", alice, dec("100")); err != nil {
		t.Fatalf("Mint: %v", err)
	}

	if err := repo.TransferFrom(ctx, "usdt", escrow, alice, bob, dec("30")); !errors.Is(err, tokenDomain.ErrInsufficientAllowance) {
		t.Fatalf("no allowance: err = %v", err)
	}

	if err := repo.Approve(ctx, "usdt", alice, escrow, dec("50")); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if err := repo.TransferFrom(ctx, "usdt", escrow, alice, bob, dec("30")); err != nil {
		t.Fatalf("TransferFrom: %v", err)
	}

	// 20 of the allowance remains
	if err := repo.TransferFrom(ctx, "usdt", escrow, alice, bob, dec("30")); !errors.Is(err, tokenDomain.ErrInsufficientAllowance) {
		t.Fatalf("exhausted allowance: err = %v", err)
	}
	if err := repo.TransferFrom(ctx, "usdt", escrow, alice, bob, dec("20")); err != nil {
		t.Fatalf("TransferFrom remainder: %v", err)
	}

	// the owner spends without any allowance
	if err := repo.TransferFrom(ctx, "usdt", alice, alice, bob, dec("10")); err != nil {
		t.Fatalf("self spend: %v", err)
	}

	ab, _ := repo.BalanceOf(ctx, "usdt", alice)
	bb, _ := repo.BalanceOf(ctx, "usdt", bob)
	if !ab.Equal(dec("40")) || !bb.Equal(dec("60")) {
		t.Fatalf("balances = %s / %s, want 40 / 60", ab, bb)
	}
}
