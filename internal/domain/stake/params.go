package stake

import (
	"time"

	"github.com/shopspring/decimal"
)

// RewardRate is the persisted tunable half of Params (single row). The caps
// stay in deployment config on purpose: updateRewardParams must not be able
// to lift them.
type RewardRate struct {
	ID               uint64          `gorm:"primaryKey;column:id" json:"-"`
	BaseRewardRate   decimal.Decimal `gorm:"type:decimal(38,18)" json:"base_reward_rate"`
	TimeWeightFactor int64           `json:"time_weight_factor"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RewardRate) TableName() string { return "stake_reward_rates" }
