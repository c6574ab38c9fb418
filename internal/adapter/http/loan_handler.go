package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"nft-lending-backend/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	NFTContract     string `json:"nft_contract"      validate:"required"`
	TokenID         uint64 `json:"token_id"          validate:"required"`
	Principal       string `json:"principal"         validate:"required,posdec"`
	DurationSecs    int64  `json:"duration_secs"     validate:"required,gte=1"`
	PaymentToken    string `json:"payment_token"     validate:"required"`
	InterestRateBps int64  `json:"interest_rate_bps" validate:"gte=0,lte=10000"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return nil
	}
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	principal, _ := decimal.NewFromString(req.Principal)
	dto, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput{
		Caller:          caller,
		NFTContract:     req.NFTContract,
		TokenID:         req.TokenID,
		Principal:       principal,
		DurationSecs:    req.DurationSecs,
		PaymentToken:    req.PaymentToken,
		InterestRateBps: req.InterestRateBps,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// loanAction wraps the caller+loan_id operations that share one shape.
func (h *LoanHandler) loanAction(c echo.Context, fn func(caller, loanID string) (any, error)) error {
	caller, ok := callerID(c)
	if !ok {
		return nil
	}
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
	}
	dto, err := fn(caller, loanID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) FundLoan(c echo.Context) error {
	return h.loanAction(c, func(caller, loanID string) (any, error) {
		return h.uc.Fund(c.Request().Context(), loan.FundLoanInput{Caller: caller, LoanID: loanID})
	})
}

func (h *LoanHandler) RepayLoan(c echo.Context) error {
	return h.loanAction(c, func(caller, loanID string) (any, error) {
		return h.uc.Repay(c.Request().Context(), loan.RepayLoanInput{Caller: caller, LoanID: loanID})
	})
}

func (h *LoanHandler) CancelLoan(c echo.Context) error {
	return h.loanAction(c, func(caller, loanID string) (any, error) {
		return h.uc.Cancel(c.Request().Context(), loan.CancelLoanInput{Caller: caller, LoanID: loanID})
	})
}

func (h *LoanHandler) LiquidateLoan(c echo.Context) error {
	return h.loanAction(c, func(caller, loanID string) (any, error) {
		return h.uc.Liquidate(c.Request().Context(), loan.LiquidateLoanInput{Caller: caller, LoanID: loanID})
	})
}

func (h *LoanHandler) EmergencyWithdrawNFT(c echo.Context) error {
	return h.loanAction(c, func(caller, loanID string) (any, error) {
		return h.uc.EmergencyWithdrawNFT(c.Request().Context(), loan.EmergencyWithdrawInput{Caller: caller, LoanID: loanID})
	})
}

type refinanceReq struct {
	NewPrincipal    string `json:"new_principal"     validate:"required,posdec"`
	NewDurationSecs int64  `json:"new_duration_secs" validate:"required,gte=1"`
	NewPaymentToken string `json:"new_payment_token" validate:"required"`
	InterestRateBps int64  `json:"interest_rate_bps" validate:"gte=0,lte=10000"`
}

func (h *LoanHandler) RefinanceLoan(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return nil
	}
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
	}
	var req refinanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	principal, _ := decimal.NewFromString(req.NewPrincipal)
	dto, err := h.uc.Refinance(c.Request().Context(), loan.RefinanceLoanInput{
		Caller:          caller,
		LoanID:          loanID,
		NewPrincipal:    principal,
		NewDurationSecs: req.NewDurationSecs,
		NewPaymentToken: req.NewPaymentToken,
		InterestRateBps: req.InterestRateBps,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), loanID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	borrower := c.Param("borrower")
	if !reHex32.MatchString(borrower) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid borrower"})
	}
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	dtos, err := h.uc.ListByBorrower(c.Request().Context(), borrower, offset, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) GetHistory(c echo.Context) error {
	borrower := c.Param("borrower")
	if !reHex32.MatchString(borrower) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid borrower"})
	}
	dto, err := h.uc.History(c.Request().Context(), borrower)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type setSupportedContractReq struct {
	Contract string `json:"contract" validate:"required"`
	Enabled  bool   `json:"enabled"`
}

func (h *LoanHandler) SetSupportedContract(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return nil
	}
	var req setSupportedContractReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.SetSupportedContract(c.Request().Context(), loan.SetSupportedContractInput{
		Caller: caller, Contract: req.Contract, Enabled: req.Enabled,
	}); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type setSupportedTokenReq struct {
	Token    string `json:"token"    validate:"required"`
	Enabled  bool   `json:"enabled"`
	Decimals uint8  `json:"decimals" validate:"lte=18"`
}

func (h *LoanHandler) SetSupportedToken(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return nil
	}
	var req setSupportedTokenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.SetSupportedToken(c.Request().Context(), loan.SetSupportedTokenInput{
		Caller: caller, Token: req.Token, Enabled: req.Enabled, Decimals: req.Decimals,
	}); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
