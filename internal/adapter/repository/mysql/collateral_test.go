package mysql

import (
	"context"
	"errors"
	"strings"
	"testing"

	tokenDomain "nft-lending-backend/internal/domain/token"
)

func TestCollateral_MintOwnerTransfer(t *testing.T) {
	db := openTestDB(t)
	repo := NewCollateralRepository(db)
	ctx := context.Background()

	alice := strings.Repeat("a", 32)
	bob := strings.Repeat("b", 32)

	if _, err := repo.OwnerOf(ctx, "punks", 7); !errors.Is(err, tokenDomain.ErrUnknownNFT) {
		t.Fatalf("unknown nft: err = %v", err)
	}

	if err := repo.Mint(ctx, "punks", 7, alice); err != nil {
		t.Fatalf("Mint: %v", err)
	}
	owner, err := repo.OwnerOf(ctx, "punks", 7)
	if err != nil || owner != alice {
		t.Fatalf("owner = %q err = %v", owner, err)
	}

	if err := repo.TransferFrom(ctx, "punks", bob, alice, bob, 7); !errors.Is(err, tokenDomain.ErrNotApproved) {
		t.Fatalf("unapproved caller: err = %v", err)
	}
	if err := repo.TransferFrom(ctx, "punks", alice, bob, alice, 7); !errors.Is(err, tokenDomain.ErrNotOwner) {
		t.Fatalf("wrong from: err = %v", err)
	}

	if err := repo.TransferFrom(ctx, "punks", alice, alice, bob, 7); err != nil {
		t.Fatalf("owner transfer: %v", err)
	}
	owner, _ = repo.OwnerOf(ctx, "punks", 7)
	if owner != bob {
		t.Fatalf("owner = %q, want bob", owner)
	}
}

func TestCollateral_SingleTokenApproval(t *testing.T) {
	db := openTestDB(t)
	repo := NewCollateralRepository(db)
	ctx := context.Background()

	alice := strings.Repeat("a", 32)
	escrow := "sys:loan-escrow"

	if err := repo.Mint(ctx, "punks", 1, alice); err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if err := repo.Mint(ctx, "punks", 2, alice); err != nil {
		t.Fatalf("Mint: %v", err)
	}

	if err := repo.Approve(ctx, "punks", escrow, escrow, 1); !errors.Is(err, tokenDomain.ErrNotOwner) {
		t.Fatalf("non-owner approve: err = %v", err)
	}
	if err := repo.Approve(ctx, "punks", alice, escrow, 1); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	if err := repo.TransferFrom(ctx, "punks", escrow, alice, escrow, 1); err != nil {
		t.Fatalf("approved transfer: %v", err)
	}
	// approval is per token, token 2 stays out of reach
	if err := repo.TransferFrom(ctx, "punks", escrow, alice, escrow, 2); !errors.Is(err, tokenDomain.ErrNotApproved) {
		t.Fatalf("unapproved token: err = %v", err)
	}
	// and the used approval is cleared on transfer
	if err := repo.TransferFrom(ctx, "punks", alice, escrow, alice, 1); !errors.Is(err, tokenDomain.ErrNotApproved) {
		t.Fatalf("stale approval: err = %v", err)
	}
}

func TestCollateral_OperatorApproval(t *testing.T) {
	db := openTestDB(t)
	repo := NewCollateralRepository(db)
	ctx := context.Background()

	alice := strings.Repeat("a", 32)
	escrow := "sys:loan-escrow"

	if err := repo.Mint(ctx, "punks", 1, alice); err != nil {
		t.Fatalf("Mint: %v", err)
	}

	ok, err := repo.IsApprovedForAll(ctx, "punks", alice, escrow)
	if err != nil || ok {
		t.Fatalf("fresh operator: ok=%v err=%v", ok, err)
	}

	if err := repo.SetApprovalForAll(ctx, "punks", alice, escrow, true); err != nil {
		t.Fatalf("SetApprovalForAll: %v", err)
	}
	if ok, _ = repo.IsApprovedForAll(ctx, "punks", alice, escrow); !ok {
		t.Fatalf("operator should be approved")
	}

	if err := repo.TransferFrom(ctx, "punks", escrow, alice, escrow, 1); err != nil {
		t.Fatalf("operator transfer: %v", err)
	}

	// revocation is an upsert on the same row
	if err := repo.SetApprovalForAll(ctx, "punks", alice, escrow, false); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if ok, _ = repo.IsApprovedForAll(ctx, "punks", alice, escrow); ok {
		t.Fatalf("operator should be revoked")
	}
}
