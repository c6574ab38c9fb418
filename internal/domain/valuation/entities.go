package valuation

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Rating is the risk tier assigned to a valued NFT, S best through D worst.
// It drives the LTV cap applied at loan origination.
type Rating string

const (
	RatingS Rating = "S"
	RatingA Rating = "A"
	RatingB Rating = "B"
	RatingC Rating = "C"
	RatingD Rating = "D"
)

var (
	ErrNotValued      = errors.New("nft not valued")
	ErrZeroValue      = errors.New("valuation value must be positive")
	ErrBadRating      = errors.New("unknown rating")
	ErrLengthMismatch = errors.New("batch array lengths differ")
	ErrBatchTooLarge  = errors.New("batch exceeds maximum size")
)

// Valid reports whether r is one of the five known tiers.
func (r Rating) Valid() bool {
	switch r {
	case RatingS, RatingA, RatingB, RatingC, RatingD:
		return true
	}
	return false
}

type Valuation struct {
	ID         uint64          `gorm:"primaryKey;column:id" json:"-"`
	Collection string          `gorm:"size:32;uniqueIndex:ux_valuations_nft,priority:1" json:"collection"`
	TokenID    uint64          `gorm:"uniqueIndex:ux_valuations_nft,priority:2" json:"token_id"`
	Value      decimal.Decimal `gorm:"type:decimal(38,18)" json:"value"`
	Rating     Rating          `gorm:"size:1" json:"rating"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Valuation) TableName() string { return "nft_valuations" }

// FloorPrice is informational only; nothing in the loan engine reads it.
type FloorPrice struct {
	ID         uint64          `gorm:"primaryKey;column:id" json:"-"`
	Collection string          `gorm:"size:32;uniqueIndex" json:"collection"`
	FloorPrice decimal.Decimal `gorm:"type:decimal(38,18)" json:"floor_price"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FloorPrice) TableName() string { return "collection_floor_prices" }
