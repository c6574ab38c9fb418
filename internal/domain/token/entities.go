package token

import (
	"time"

	"github.com/shopspring/decimal"
)

type Balance struct {
	ID        uint64          `gorm:"primaryKey;column:id" json:"-"`
	Token     string          `gorm:"size:32;uniqueIndex:ux_balances,priority:1" json:"token"`
	Account   string          `gorm:"size:64;uniqueIndex:ux_balances,priority:2" json:"account"`
	Amount    decimal.Decimal `gorm:"type:decimal(38,18)" json:"amount"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Balance) TableName() string { return "token_balances" }

type Allowance struct {
	ID        uint64          `gorm:"primaryKey;column:id" json:"-"`
	Token     string          `gorm:"size:32;uniqueIndex:ux_allowances,priority:1" json:"token"`
	Owner     string          `gorm:"size:64;uniqueIndex:ux_allowances,priority:2" json:"owner"`
	Spender   string          `gorm:"size:64;uniqueIndex:ux_allowances,priority:3" json:"spender"`
	Amount    decimal.Decimal `gorm:"type:decimal(38,18)" json:"amount"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Allowance) TableName() string { return "token_allowances" }

type NFT struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	Contract  string    `gorm:"size:32;uniqueIndex:ux_nfts,priority:1" json:"contract"`
	TokenID   uint64    `gorm:"uniqueIndex:ux_nfts,priority:2" json:"token_id"`
	Owner     string    `gorm:"size:64;index" json:"owner"`
	Approved  string    `gorm:"size:64" json:"approved,omitempty"` // single-token approval, cleared on transfer
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (NFT) TableName() string { return "nfts" }

type OperatorApproval struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	Contract  string    `gorm:"size:32;uniqueIndex:ux_operators,priority:1" json:"contract"`
	Owner     string    `gorm:"size:64;uniqueIndex:ux_operators,priority:2" json:"owner"`
	Operator  string    `gorm:"size:64;uniqueIndex:ux_operators,priority:3" json:"operator"`
	Approved  bool      `json:"approved"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OperatorApproval) TableName() string { return "nft_operator_approvals" }
