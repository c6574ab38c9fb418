package valuation

import (
	"time"

	"github.com/shopspring/decimal"
)

type SetInput struct {
	Caller     string
	Collection string
	TokenID    uint64
	Value      decimal.Decimal
	Rating     string
}

type BatchSetInput struct {
	Caller     string
	Collection string
	TokenIDs   []uint64
	Values     []decimal.Decimal
	Ratings    []string
}

type SetFloorPriceInput struct {
	Caller     string
	Collection string
	FloorPrice decimal.Decimal
}

type ValuationDTO struct {
	Collection string          `json:"collection"`
	TokenID    uint64          `json:"token_id"`
	Value      decimal.Decimal `json:"value"`
	Rating     string          `json:"rating"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
