package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	tokenDomain "nft-lending-backend/internal/domain/token"
)

// CollateralRepository tracks NFT ownership and approvals.
type CollateralRepository struct{ db *gorm.DB }

func NewCollateralRepository(db *gorm.DB) *CollateralRepository {
	return &CollateralRepository{db: db}
}

func (r *CollateralRepository) nftForUpdate(ctx context.Context, contract string, tokenID uint64) (*tokenDomain.NFT, error) {
	var n tokenDomain.NFT
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("contract = ? AND token_id = ?", contract, tokenID).
		First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, tokenDomain.ErrUnknownNFT
	}
	return &n, err
}

func (r *CollateralRepository) Mint(ctx context.Context, contract string, tokenID uint64, to string) error {
	return r.db.WithContext(ctx).
		Create(&tokenDomain.NFT{Contract: contract, TokenID: tokenID, Owner: to}).Error
}

func (r *CollateralRepository) OwnerOf(ctx context.Context, contract string, tokenID uint64) (string, error) {
	var n tokenDomain.NFT
	err := r.db.WithContext(ctx).
		Where("contract = ? AND token_id = ?", contract, tokenID).
		First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", tokenDomain.ErrUnknownNFT
	}
	return n.Owner, err
}

// TransferFrom moves an NFT after the standard owner/approved/operator check.
// The single-token approval is cleared on transfer.
func (r *CollateralRepository) TransferFrom(ctx context.Context, contract, caller, from, to string, tokenID uint64) error {
	n, err := r.nftForUpdate(ctx, contract, tokenID)
	if err != nil {
		return err
	}
	if n.Owner != from {
		return tokenDomain.ErrNotOwner
	}
	if caller != n.Owner && caller != n.Approved {
		ok, err := r.IsApprovedForAll(ctx, contract, n.Owner, caller)
		if err != nil {
			return err
		}
		if !ok {
			return tokenDomain.ErrNotApproved
		}
	}
	n.Owner = to
	n.Approved = ""
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *CollateralRepository) Approve(ctx context.Context, contract, owner, operator string, tokenID uint64) error {
	n, err := r.nftForUpdate(ctx, contract, tokenID)
	if err != nil {
		return err
	}
	if n.Owner != owner {
		return tokenDomain.ErrNotOwner
	}
	n.Approved = operator
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *CollateralRepository) SetApprovalForAll(ctx context.Context, contract, owner, operator string, approved bool) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "contract"}, {Name: "owner"}, {Name: "operator"}},
			DoUpdates: clause.AssignmentColumns([]string{"approved", "updated_at"}),
		}).
		Create(&tokenDomain.OperatorApproval{Contract: contract, Owner: owner, Operator: operator, Approved: approved}).Error
}

func (r *CollateralRepository) IsApprovedForAll(ctx context.Context, contract, owner, operator string) (bool, error) {
	var oa tokenDomain.OperatorApproval
	err := r.db.WithContext(ctx).
		Where("contract = ? AND owner = ? AND operator = ?", contract, owner, operator).
		First(&oa).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return oa.Approved, nil
}

var _ tokenDomain.CollateralLedger = (*CollateralRepository)(nil)
