package stake

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotStaked              = errors.New("nft not staked")
	ErrAlreadyStaked          = errors.New("nft already staked")
	ErrNotStaker              = errors.New("not staker")
	ErrInsufficientRewardPool = errors.New("insufficient reward pool")
	ErrCannotRecoverStaked    = errors.New("cannot recover staked nft")
	ErrInvalidParams          = errors.New("invalid reward params")
)

const daySecs = 86400

// Stake is one escrowed NFT earning time-weighted rewards. Exactly one active
// row exists per token id; the row is deleted on unstake.
type Stake struct {
	ID          uint64          `gorm:"primaryKey;column:id" json:"-"`
	TokenID     uint64          `gorm:"uniqueIndex:ux_stakes_token_id" json:"token_id"`
	Staker      string          `gorm:"size:32;index:idx_stakes_staker" json:"staker"`
	StakedAt    time.Time       `json:"staked_at"`
	LastClaimAt time.Time       `json:"last_claim_at"`
	Accumulated decimal.Decimal `gorm:"type:decimal(38,18)" json:"accumulated"`
	Weight      int64           `json:"weight"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Stake) TableName() string { return "stakes" }

// Params are the accrual knobs. BaseRewardRate and TimeWeightFactor are
// admin-tunable at runtime; the two caps are deployment parameters that bound
// payout even if the tunable pair is misconfigured to extreme values.
type Params struct {
	BaseRewardRate   decimal.Decimal // reward tokens per second per stake
	TimeWeightFactor int64
	MaxDailyReward   decimal.Decimal
	MaxRewardCap     decimal.Decimal // lifetime cap per stake
}

// TimeWeight grows by TimeWeightFactor for every full day since staking:
// 1 + floor(elapsedSinceStake/day) * factor.
func (s *Stake) TimeWeight(factor int64, now time.Time) int64 {
	elapsed := int64(now.Sub(s.StakedAt).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}
	return 1 + (elapsed/daySecs)*factor
}

// PendingReward computes the claimable amount at now:
// elapsedSinceLastClaim * baseRate * timeWeight, clamped first to
// maxDailyReward over the elapsed days and then to the remaining lifetime cap.
func (s *Stake) PendingReward(p Params, now time.Time) decimal.Decimal {
	elapsed := int64(now.Sub(s.LastClaimAt).Seconds())
	if elapsed <= 0 {
		return decimal.Zero
	}

	weight := s.TimeWeight(p.TimeWeightFactor, now)
	reward := p.BaseRewardRate.
		Mul(decimal.NewFromInt(elapsed)).
		Mul(decimal.NewFromInt(weight))

	elapsedDays := decimal.NewFromInt(elapsed).Div(decimal.NewFromInt(daySecs))
	if daily := p.MaxDailyReward.Mul(elapsedDays); reward.GreaterThan(daily) {
		reward = daily
	}
	if remaining := p.MaxRewardCap.Sub(s.Accumulated); reward.GreaterThan(remaining) {
		reward = remaining
	}
	if reward.IsNegative() {
		return decimal.Zero
	}
	return reward
}
