package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"nft-lending-backend/internal/domain/guard"
	"nft-lending-backend/internal/domain/loan"
	"nft-lending-backend/internal/domain/stake"
	"nft-lending-backend/internal/domain/token"
	"nft-lending-backend/internal/domain/valuation"
)

// Migrate creates every ledger table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&guard.Guard{},
		&valuation.Valuation{},
		&valuation.FloorPrice{},
		&loan.Loan{},
		&loan.History{},
		&loan.SupportedNFTContract{},
		&loan.SupportedPaymentToken{},
		&stake.Stake{},
		&stake.RewardRate{},
		&token.Balance{},
		&token.Allowance{},
		&token.NFT{},
		&token.OperatorApproval{},
	)
}

// Seed inserts the guard row and reward-rate row on first boot. Subsequent
// boots leave existing state untouched.
func Seed(ctx context.Context, db *gorm.DB, admin string, rr stake.RewardRate) error {
	if admin == "" {
		return guard.ErrEmptyAdmin
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g guard.Guard
		err := tx.First(&g).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			g = guard.Guard{Admin: admin, UpdatedAt: time.Now().UTC()}
			if err := tx.Create(&g).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		}

		var existing stake.RewardRate
		err = tx.First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&rr).Error
		case err != nil:
			return err
		}
		return nil
	})
}
