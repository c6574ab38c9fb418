package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"nft-lending-backend/internal/domain/guard"
	"nft-lending-backend/internal/domain/loan"
	"nft-lending-backend/internal/domain/lock"
	"nft-lending-backend/internal/domain/stake"
	"nft-lending-backend/internal/domain/token"
	"nft-lending-backend/internal/domain/valuation"
)

// HeaderCallerID carries the acting account for every mutating request.
const HeaderCallerID = "Ax-Caller-Id"

// callerID validates and returns the Ax-Caller-Id header, or writes a 400.
func callerID(c echo.Context) (string, bool) {
	id := strings.TrimSpace(c.Request().Header.Get(HeaderCallerID))
	if id == "" {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing " + HeaderCallerID})
		return "", false
	}
	if !reHex32.MatchString(id) {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + HeaderCallerID})
		return "", false
	}
	return id, true
}

// statusOf maps domain sentinel errors to HTTP status codes. Anything
// unrecognized is an internal error.
func statusOf(err error) int {
	switch {
	case errors.Is(err, loan.ErrNotFound),
		errors.Is(err, valuation.ErrNotValued),
		errors.Is(err, stake.ErrNotStaked),
		errors.Is(err, token.ErrUnknownNFT):
		return http.StatusNotFound

	case errors.Is(err, guard.ErrNotAdmin),
		errors.Is(err, guard.ErrNotPendingAdmin),
		errors.Is(err, loan.ErrNotBorrower),
		errors.Is(err, stake.ErrNotStaker),
		errors.Is(err, token.ErrNotOwner),
		errors.Is(err, token.ErrNotApproved):
		return http.StatusForbidden

	case errors.Is(err, token.ErrInsufficientBalance),
		errors.Is(err, token.ErrInsufficientAllowance),
		errors.Is(err, stake.ErrInsufficientRewardPool):
		return http.StatusPaymentRequired

	case errors.Is(err, guard.ErrPaused),
		errors.Is(err, guard.ErrNotPaused),
		errors.Is(err, loan.ErrNotAvailableForFunding),
		errors.Is(err, loan.ErrNotActive),
		errors.Is(err, loan.ErrNotCancellable),
		errors.Is(err, loan.ErrNotEligibleForLiquidation),
		errors.Is(err, loan.ErrInvalidTransition),
		errors.Is(err, loan.ErrPeerFundingOnly),
		errors.Is(err, stake.ErrAlreadyStaked),
		errors.Is(err, stake.ErrCannotRecoverStaked),
		errors.Is(err, lock.ErrHeld):
		return http.StatusConflict

	case errors.Is(err, loan.ErrZeroPrincipal),
		errors.Is(err, loan.ErrInvalidDuration),
		errors.Is(err, loan.ErrAmountExceedsMaximum),
		errors.Is(err, loan.ErrContractNotSupported),
		errors.Is(err, loan.ErrTokenNotSupported),
		errors.Is(err, valuation.ErrZeroValue),
		errors.Is(err, valuation.ErrBadRating),
		errors.Is(err, valuation.ErrLengthMismatch),
		errors.Is(err, valuation.ErrBatchTooLarge),
		errors.Is(err, stake.ErrInvalidParams),
		errors.Is(err, token.ErrZeroAmount),
		errors.Is(err, guard.ErrEmptyAdmin):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// fail writes the mapped error response. Internal errors hide the cause.
func fail(c echo.Context, err error) error {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		return c.JSON(code, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}
