package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"nft-lending-backend/internal/usecase/valuation"
)

type ValuationHandler struct{ uc *valuation.Usecase }

func NewValuationHandler(uc *valuation.Usecase) *ValuationHandler {
	return &ValuationHandler{uc: uc}
}

type setValuationReq struct {
	Collection string `json:"collection" validate:"required"`
	TokenID    uint64 `json:"token_id"   validate:"required"`
	Value      string `json:"value"      validate:"required,posdec"`
	Rating     string `json:"rating"     validate:"required,rating"`
}

func (h *ValuationHandler) SetValuation(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return nil
	}
	var req setValuationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	value, _ := decimal.NewFromString(req.Value)
	dto, err := h.uc.Set(c.Request().Context(), valuation.SetInput{
		Caller:     caller,
		Collection: req.Collection,
		TokenID:    req.TokenID,
		Value:      value,
		Rating:     req.Rating,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type batchSetValuationReq struct {
	Collection string   `json:"collection" validate:"required"`
	TokenIDs   []uint64 `json:"token_ids"  validate:"required,min=1"`
	Values     []string `json:"values"     validate:"required,dive,posdec"`
	Ratings    []string `json:"ratings"    validate:"required,dive,rating"`
}

func (h *ValuationHandler) BatchSetValuations(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return nil
	}
	var req batchSetValuationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	values := make([]decimal.Decimal, len(req.Values))
	for i, raw := range req.Values {
		values[i], _ = decimal.NewFromString(raw)
	}
	dtos, err := h.uc.BatchSet(c.Request().Context(), valuation.BatchSetInput{
		Caller:     caller,
		Collection: req.Collection,
		TokenIDs:   req.TokenIDs,
		Values:     values,
		Ratings:    req.Ratings,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *ValuationHandler) GetValuation(c echo.Context) error {
	collection := c.Param("collection")
	tokenID, err := strconv.ParseUint(c.Param("token_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid token_id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), collection, tokenID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type setFloorPriceReq struct {
	Collection string `json:"collection"  validate:"required"`
	FloorPrice string `json:"floor_price" validate:"required,posdec"`
}

func (h *ValuationHandler) SetFloorPrice(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return nil
	}
	var req setFloorPriceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	fp, _ := decimal.NewFromString(req.FloorPrice)
	if err := h.uc.SetFloorPrice(c.Request().Context(), valuation.SetFloorPriceInput{
		Caller:     caller,
		Collection: req.Collection,
		FloorPrice: fp,
	}); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
