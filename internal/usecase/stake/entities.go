package stake

import (
	"time"

	"github.com/shopspring/decimal"
)

type StakeInput struct {
	Caller  string
	TokenID uint64
}

type ClaimInput struct {
	Caller  string
	TokenID uint64
}

type UnstakeInput struct {
	Caller  string
	TokenID uint64
}

type UpdateRewardParamsInput struct {
	Caller           string
	BaseRewardRate   decimal.Decimal
	TimeWeightFactor int64
}

type RecoverNFTInput struct {
	Caller        string
	TokenContract string
	TokenID       uint64
	To            string
}

type StakeDTO struct {
	TokenID     uint64          `json:"token_id"`
	Staker      string          `json:"staker"`
	StakedAt    time.Time       `json:"staked_at"`
	LastClaimAt time.Time       `json:"last_claim_at"`
	Accumulated decimal.Decimal `json:"accumulated"`
	Weight      int64           `json:"weight"`
	Pending     decimal.Decimal `json:"pending_reward"`
}

type ClaimDTO struct {
	TokenID uint64          `json:"token_id"`
	Staker  string          `json:"staker"`
	Reward  decimal.Decimal `json:"reward"`
	Weight  int64           `json:"weight"`
}

type RewardParamsDTO struct {
	BaseRewardRate   decimal.Decimal `json:"base_reward_rate"`
	TimeWeightFactor int64           `json:"time_weight_factor"`
}
