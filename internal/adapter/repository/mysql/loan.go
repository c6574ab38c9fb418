package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "nft-lending-backend/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *LoanRepository) ListByBorrower(ctx context.Context, borrower string, offset, limit int) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("borrower = ?", borrower).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) GetHistory(ctx context.Context, borrower string) (*loanDomain.History, error) {
	var out loanDomain.History
	res := r.db.WithContext(ctx).Where("borrower = ?", borrower).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return &loanDomain.History{Borrower: borrower}, nil
	}
	return &out, res.Error
}

func (r *LoanRepository) IncrementRepaid(ctx context.Context, borrower string) error {
	var h loanDomain.History
	err := r.db.WithContext(ctx).Where("borrower = ?", borrower).First(&h).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		h = loanDomain.History{Borrower: borrower, RepaidCount: 1}
		return r.db.WithContext(ctx).Create(&h).Error
	case err != nil:
		return err
	}
	h.RepaidCount++
	return r.db.WithContext(ctx).Save(&h).Error
}

func (r *LoanRepository) IsContractSupported(ctx context.Context, contract string) (bool, error) {
	var out loanDomain.SupportedNFTContract
	err := r.db.WithContext(ctx).Where("contract = ?", contract).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return out.Enabled, nil
}

func (r *LoanRepository) SetContractSupported(ctx context.Context, contract string, enabled bool) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "contract"}},
			DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_at"}),
		}).
		Create(&loanDomain.SupportedNFTContract{Contract: contract, Enabled: enabled}).Error
}

func (r *LoanRepository) IsTokenSupported(ctx context.Context, token string) (bool, error) {
	var out loanDomain.SupportedPaymentToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return out.Enabled, nil
}

func (r *LoanRepository) SetTokenSupported(ctx context.Context, token string, enabled bool, decimals uint8) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"enabled", "decimals", "updated_at"}),
		}).
		Create(&loanDomain.SupportedPaymentToken{Token: token, Enabled: enabled, Decimals: decimals}).Error
}
