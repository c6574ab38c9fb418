// Package event defines the state-change notifications consumed by UIs and
// indexers, and the bus they travel on.
package event

import (
	"context"
	"time"
)

type Type string

const (
	TypeLoanCreated          Type = "LoanCreated"
	TypeLoanFunded           Type = "LoanFunded"
	TypeLoanRepaid           Type = "LoanRepaid"
	TypeLoanLiquidated       Type = "LoanLiquidated"
	TypeLoanCancelled        Type = "LoanCancelled"
	TypeRefinanceLoan        Type = "RefinanceLoan"
	TypeEmergencyWithdrawNFT Type = "EmergencyWithdrawNFT"
	TypeValuationSet         Type = "ValuationSet"
	TypeFloorPriceUpdated    Type = "CollectionFloorPriceUpdated"
	TypeNFTStaked            Type = "NFTStaked"
	TypeNFTUnstaked          Type = "NFTUnstaked"
	TypeStakeClaimed         Type = "StakeClaimed"
	TypeRewardParamsUpdated  Type = "RewardParamsUpdated"
	TypeEmergencyWithdraw    Type = "EmergencyWithdraw"
	TypePaused               Type = "Paused"
	TypeUnpaused             Type = "Unpaused"
	TypeAdminProposed        Type = "AdminProposed"
	TypeAdminAccepted        Type = "AdminAccepted"
)

// Pub/sub channels, one per ledger area.
const (
	ChannelLoan      = "ch:loan"
	ChannelStake     = "ch:stake"
	ChannelValuation = "ch:valuation"
	ChannelAdmin     = "ch:admin"
)

// Envelope wraps every published notification.
type Envelope struct {
	ID      string    `json:"id"`
	Type    Type      `json:"type"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload"`
}

// Bus provides pub/sub for notification delivery.
type Bus interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
}
