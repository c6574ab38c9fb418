package loan

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"nft-lending-backend/internal/domain/valuation"
)

type Status string

const (
	StatusCreated    Status = "created"
	StatusActive     Status = "active"
	StatusRepaid     Status = "repaid"
	StatusLiquidated Status = "liquidated"
	StatusCancelled  Status = "cancelled"
)

const (
	MinDuration = 24 * time.Hour
	MaxDuration = 365 * 24 * time.Hour

	secondsPerYear = 31536000 // 365 days
)

// Terminal reports whether the status is final. Terminal loans are immutable.
func (s Status) Terminal() bool {
	switch s {
	case StatusRepaid, StatusLiquidated, StatusCancelled:
		return true
	}
	return false
}

type Loan struct {
	ID              uint64           `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string           `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	NFTContract     string           `gorm:"size:32;index:idx_loans_nft,priority:1" json:"nft_contract"`
	TokenID         uint64           `gorm:"index:idx_loans_nft,priority:2" json:"token_id"`
	Borrower        string           `gorm:"size:32;index:idx_loans_borrower" json:"borrower"`
	Lender          string           `gorm:"size:32" json:"lender,omitempty"`
	PaymentToken    string           `gorm:"size:32" json:"payment_token"`
	Principal       decimal.Decimal  `gorm:"type:decimal(38,18)" json:"principal"`
	Rating          valuation.Rating `gorm:"size:1" json:"rating"`
	InterestRateBps int64            `json:"interest_rate_bps"`
	StartTime       time.Time        `json:"start_time"`
	DurationSecs    int64            `json:"duration_secs"`
	Status          Status           `gorm:"size:16;default:'created'" json:"status"`
	StateUpdatedAt  time.Time        `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt       time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// DueTime is the instant after which the loan becomes overdue.
func (l *Loan) DueTime() time.Time {
	return l.StartTime.Add(time.Duration(l.DurationSecs) * time.Second)
}

// Interest accrues continuously as simple interest:
// principal * rateBps/10000 * elapsedSeconds / secondsPerYear.
func (l *Loan) Interest(asOf time.Time) decimal.Decimal {
	elapsed := int64(asOf.Sub(l.StartTime).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}
	return l.Principal.
		Mul(decimal.NewFromInt(l.InterestRateBps)).
		Mul(decimal.NewFromInt(elapsed)).
		Div(decimal.NewFromInt(10000 * secondsPerYear))
}

// Debt is principal plus interest accrued through asOf.
func (l *Loan) Debt(asOf time.Time) decimal.Decimal {
	return l.Principal.Add(l.Interest(asOf))
}

// HealthFactor is collateral value divided by outstanding debt; below one the
// loan is undercollateralized and eligible for liquidation.
func (l *Loan) HealthFactor(collateralValue decimal.Decimal, asOf time.Time) decimal.Decimal {
	debt := l.Debt(asOf)
	if debt.IsZero() {
		return decimal.NewFromInt(1)
	}
	return collateralValue.Div(debt)
}

// History counts a borrower's successfully repaid loans.
type History struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"-"`
	Borrower    string    `gorm:"size:32;uniqueIndex" json:"borrower"`
	RepaidCount uint64    `json:"repaid_count"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (History) TableName() string { return "borrower_histories" }

// SupportedNFTContract is the admin allowlist of collateral collections.
type SupportedNFTContract struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	Contract  string    `gorm:"size:32;uniqueIndex" json:"contract"`
	Enabled   bool      `json:"enabled"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SupportedNFTContract) TableName() string { return "supported_nft_contracts" }

// SupportedPaymentToken is the admin allowlist of settlement tokens.
type SupportedPaymentToken struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	Token     string    `gorm:"size:32;uniqueIndex" json:"token"`
	Enabled   bool      `json:"enabled"`
	Decimals  uint8     `json:"decimals"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SupportedPaymentToken) TableName() string { return "supported_payment_tokens" }
