package mysql

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	tokenDomain "nft-lending-backend/internal/domain/token"
)

// FungibleRepository persists payment/reward token balances and allowances in
// the same database as the loan/stake ledgers, so asset moves share the outer
// transaction and roll back with it.
type FungibleRepository struct{ db *gorm.DB }

func NewFungibleRepository(db *gorm.DB) *FungibleRepository { return &FungibleRepository{db: db} }

func (r *FungibleRepository) balanceForUpdate(ctx context.Context, tok, account string) (*tokenDomain.Balance, error) {
	var b tokenDomain.Balance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("token = ? AND account = ?", tok, account).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &tokenDomain.Balance{Token: tok, Account: account, Amount: decimal.Zero}, nil
	}
	return &b, err
}

func (r *FungibleRepository) saveBalance(ctx context.Context, b *tokenDomain.Balance) error {
	if b.ID == 0 {
		return r.db.WithContext(ctx).Create(b).Error
	}
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *FungibleRepository) Mint(ctx context.Context, tok, to string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return tokenDomain.ErrZeroAmount
	}
	b, err := r.balanceForUpdate(ctx, tok, to)
	if err != nil {
		return err
	}
	b.Amount = b.Amount.Add(amount)
	return r.saveBalance(ctx, b)
}

func (r *FungibleRepository) Transfer(ctx context.Context, tok, from, to string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return tokenDomain.ErrZeroAmount
	}
	src, err := r.balanceForUpdate(ctx, tok, from)
	if err != nil {
		return err
	}
	if src.Amount.LessThan(amount) {
		return tokenDomain.ErrInsufficientBalance
	}
	dst, err := r.balanceForUpdate(ctx, tok, to)
	if err != nil {
		return err
	}
	src.Amount = src.Amount.Sub(amount)
	dst.Amount = dst.Amount.Add(amount)
	if err := r.saveBalance(ctx, src); err != nil {
		return err
	}
	return r.saveBalance(ctx, dst)
}

func (r *FungibleRepository) TransferFrom(ctx context.Context, tok, spender, from, to string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return tokenDomain.ErrZeroAmount
	}
	if spender != from {
		var a tokenDomain.Allowance
		err := r.db.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("token = ? AND owner = ? AND spender = ?", tok, from, spender).
			First(&a).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tokenDomain.ErrInsufficientAllowance
		}
		if err != nil {
			return err
		}
		if a.Amount.LessThan(amount) {
			return tokenDomain.ErrInsufficientAllowance
		}
		a.Amount = a.Amount.Sub(amount)
		if err := r.db.WithContext(ctx).Save(&a).Error; err != nil {
			return err
		}
	}
	return r.Transfer(ctx, tok, from, to, amount)
}

func (r *FungibleRepository) Approve(ctx context.Context, tok, owner, spender string, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}, {Name: "owner"}, {Name: "spender"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).
		Create(&tokenDomain.Allowance{Token: tok, Owner: owner, Spender: spender, Amount: amount}).Error
}

func (r *FungibleRepository) BalanceOf(ctx context.Context, tok, account string) (decimal.Decimal, error) {
	var b tokenDomain.Balance
	err := r.db.WithContext(ctx).Where("token = ? AND account = ?", tok, account).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	return b.Amount, err
}

var _ tokenDomain.FungibleLedger = (*FungibleRepository)(nil)
