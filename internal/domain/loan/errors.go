package loan

import "errors"

var (
	ErrNotFound                  = errors.New("loan not found")
	ErrZeroPrincipal             = errors.New("principal must be positive")
	ErrInvalidDuration           = errors.New("duration must be between 1 and 365 days")
	ErrAmountExceedsMaximum      = errors.New("loan amount exceeds maximum")
	ErrNotBorrower               = errors.New("not borrower")
	ErrNotAvailableForFunding    = errors.New("loan is not available for funding")
	ErrNotActive                 = errors.New("loan is not active")
	ErrNotCancellable            = errors.New("loan is not cancellable")
	ErrNotEligibleForLiquidation = errors.New("loan is not eligible for liquidation")
	ErrInvalidTransition         = errors.New("invalid loan state transition")
	ErrContractNotSupported      = errors.New("nft contract not supported")
	ErrTokenNotSupported         = errors.New("payment token not supported")
	ErrPeerFundingOnly           = errors.New("funding step exists only in peer-funded mode")
)
