package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"nft-lending-backend/internal/usecase/stake"
)

type StakeHandler struct{ uc *stake.Usecase }

func NewStakeHandler(uc *stake.Usecase) *StakeHandler { return &StakeHandler{uc: uc} }

func parseTokenID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("token_id"), 10, 64)
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid token_id"})
		return 0, false
	}
	return id, true
}

func (h *StakeHandler) Stake(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return nil
	}
	tokenID, ok := parseTokenID(c)
	if !ok {
		return nil
	}
	dto, err := h.uc.Stake(c.Request().Context(), stake.StakeInput{Caller: caller, TokenID: tokenID})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *StakeHandler) Claim(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return nil
	}
	tokenID, ok := parseTokenID(c)
	if !ok {
		return nil
	}
	dto, err := h.uc.Claim(c.Request().Context(), stake.ClaimInput{Caller: caller, TokenID: tokenID})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *StakeHandler) Unstake(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return nil
	}
	tokenID, ok := parseTokenID(c)
	if !ok {
		return nil
	}
	dto, err := h.uc.Unstake(c.Request().Context(), stake.UnstakeInput{Caller: caller, TokenID: tokenID})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *StakeHandler) GetStake(c echo.Context) error {
	tokenID, ok := parseTokenID(c)
	if !ok {
		return nil
	}
	dto, err := h.uc.Get(c.Request().Context(), tokenID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *StakeHandler) ListStakes(c echo.Context) error {
	staker := c.Param("staker")
	if !reHex32.MatchString(staker) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid staker"})
	}
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	dtos, err := h.uc.ListByStaker(c.Request().Context(), staker, offset, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

type rewardParamsReq struct {
	BaseRewardRate   string `json:"base_reward_rate"   validate:"required,nonnegdec"`
	TimeWeightFactor int64  `json:"time_weight_factor" validate:"gte=0"`
}

func (h *StakeHandler) UpdateRewardParams(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return nil
	}
	var req rewardParamsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	rate, _ := decimal.NewFromString(req.BaseRewardRate)
	dto, err := h.uc.UpdateRewardParams(c.Request().Context(), stake.UpdateRewardParamsInput{
		Caller:           caller,
		BaseRewardRate:   rate,
		TimeWeightFactor: req.TimeWeightFactor,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *StakeHandler) EmergencyWithdraw(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return nil
	}
	swept, err := h.uc.EmergencyWithdraw(c.Request().Context(), caller)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"amount": swept})
}

type recoverNFTReq struct {
	TokenContract string `json:"token_contract" validate:"required"`
	TokenID       uint64 `json:"token_id"       validate:"required"`
	To            string `json:"to"             validate:"required,hex32"`
}

func (h *StakeHandler) RecoverNFT(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return nil
	}
	var req recoverNFTReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.RecoverNFT(c.Request().Context(), stake.RecoverNFTInput{
		Caller:        caller,
		TokenContract: req.TokenContract,
		TokenID:       req.TokenID,
		To:            req.To,
	}); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
