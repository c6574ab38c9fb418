// Package token defines the fungible-payment and non-fungible-collateral
// ledgers the engine settles against. The engine calls these with standard
// balance/ownership semantics and assumes nothing else about their accounting.
package token

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientBalance   = errors.New("insufficient token balance")
	ErrInsufficientAllowance = errors.New("insufficient token allowance")
	ErrNotOwner              = errors.New("caller is not nft owner")
	ErrNotApproved           = errors.New("caller is not owner or approved")
	ErrUnknownNFT            = errors.New("unknown nft")
	ErrZeroAmount            = errors.New("amount must be positive")
)

// FungibleLedger moves payment/reward tokens between accounts. Transfers are
// direct: the engine never holds balances speculatively, only the designated
// pool and escrow accounts do.
type FungibleLedger interface {
	Mint(ctx context.Context, tok, to string, amount decimal.Decimal) error
	Transfer(ctx context.Context, tok, from, to string, amount decimal.Decimal) error
	TransferFrom(ctx context.Context, tok, spender, from, to string, amount decimal.Decimal) error
	Approve(ctx context.Context, tok, owner, spender string, amount decimal.Decimal) error
	BalanceOf(ctx context.Context, tok, account string) (decimal.Decimal, error)
}

// CollateralLedger tracks NFT ownership and approvals.
type CollateralLedger interface {
	Mint(ctx context.Context, contract string, tokenID uint64, to string) error
	OwnerOf(ctx context.Context, contract string, tokenID uint64) (string, error)
	TransferFrom(ctx context.Context, contract, caller, from, to string, tokenID uint64) error
	Approve(ctx context.Context, contract, owner, operator string, tokenID uint64) error
	SetApprovalForAll(ctx context.Context, contract, owner, operator string, approved bool) error
	IsApprovedForAll(ctx context.Context, contract, owner, operator string) (bool, error)
}
