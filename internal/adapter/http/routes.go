package http

import "github.com/labstack/echo/v4"

// RegisterRoutes wires every handler onto the Echo instance.
func RegisterRoutes(e *echo.Echo, h *Handler, lh *LoanHandler, sh *StakeHandler, vh *ValuationHandler, ah *AdminHandler) {
	e.GET("/health", h.Health)

	v := e.Group("/v1")

	v.POST("/valuations", vh.SetValuation)
	v.POST("/valuations/batch", vh.BatchSetValuations)
	v.GET("/valuations/:collection/:token_id", vh.GetValuation)
	v.POST("/valuations/floor-price", vh.SetFloorPrice)

	v.POST("/loans", lh.CreateLoan)
	v.GET("/loans/:loan_id", lh.GetLoan)
	v.POST("/loans/:loan_id/fund", lh.FundLoan)
	v.POST("/loans/:loan_id/repay", lh.RepayLoan)
	v.POST("/loans/:loan_id/cancel", lh.CancelLoan)
	v.POST("/loans/:loan_id/liquidate", lh.LiquidateLoan)
	v.POST("/loans/:loan_id/refinance", lh.RefinanceLoan)
	v.POST("/loans/:loan_id/emergency-withdraw", lh.EmergencyWithdrawNFT)
	v.GET("/borrowers/:borrower/loans", lh.ListLoans)
	v.GET("/borrowers/:borrower/history", lh.GetHistory)
	v.PUT("/admin/supported-contracts", lh.SetSupportedContract)
	v.PUT("/admin/supported-tokens", lh.SetSupportedToken)

	v.POST("/stakes/:token_id", sh.Stake)
	v.GET("/stakes/:token_id", sh.GetStake)
	v.POST("/stakes/:token_id/claim", sh.Claim)
	v.POST("/stakes/:token_id/unstake", sh.Unstake)
	v.GET("/stakers/:staker/stakes", sh.ListStakes)
	v.PUT("/admin/reward-params", sh.UpdateRewardParams)
	v.POST("/admin/emergency-withdraw", sh.EmergencyWithdraw)
	v.POST("/admin/recover-nft", sh.RecoverNFT)

	v.GET("/admin/guard", ah.GetGuard)
	v.POST("/admin/pause", ah.Pause)
	v.POST("/admin/unpause", ah.Unpause)
	v.POST("/admin/propose", ah.ProposeAdmin)
	v.POST("/admin/accept", ah.AcceptAdmin)
}
