package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateLoanInput struct {
	Caller          string
	NFTContract     string
	TokenID         uint64
	Principal       decimal.Decimal
	DurationSecs    int64
	PaymentToken    string
	InterestRateBps int64 // 0 means the configured default APR
}

type FundLoanInput struct {
	Caller string
	LoanID string
}

type RepayLoanInput struct {
	Caller string
	LoanID string
}

type CancelLoanInput struct {
	Caller string
	LoanID string
}

type LiquidateLoanInput struct {
	Caller string
	LoanID string
}

type RefinanceLoanInput struct {
	Caller          string
	LoanID          string
	NewPrincipal    decimal.Decimal
	NewDurationSecs int64
	NewPaymentToken string
	InterestRateBps int64
}

type EmergencyWithdrawInput struct {
	Caller string
	LoanID string
}

type SetSupportedContractInput struct {
	Caller   string
	Contract string
	Enabled  bool
}

type SetSupportedTokenInput struct {
	Caller   string
	Token    string
	Enabled  bool
	Decimals uint8
}

type LoanDTO struct {
	LoanID          string          `json:"loan_id"`
	NFTContract     string          `json:"nft_contract"`
	TokenID         uint64          `json:"token_id"`
	Borrower        string          `json:"borrower"`
	Lender          string          `json:"lender,omitempty"`
	PaymentToken    string          `json:"payment_token"`
	Principal       decimal.Decimal `json:"principal"`
	Rating          string          `json:"rating"`
	InterestRateBps int64           `json:"interest_rate_bps"`
	StartTime       time.Time       `json:"start_time"`
	DurationSecs    int64           `json:"duration_secs"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

type RefinanceDTO struct {
	OldLoan LoanDTO `json:"old_loan"`
	NewLoan LoanDTO `json:"new_loan"`
}

type HistoryDTO struct {
	Borrower    string `json:"borrower"`
	RepaidCount uint64 `json:"repaid_count"`
}
