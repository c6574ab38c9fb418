package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"nft-lending-backend/internal/usecase/admin"
)

type AdminHandler struct{ uc *admin.Usecase }

func NewAdminHandler(uc *admin.Usecase) *AdminHandler { return &AdminHandler{uc: uc} }

func (h *AdminHandler) Pause(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return nil
	}
	dto, err := h.uc.Pause(c.Request().Context(), caller)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AdminHandler) Unpause(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return nil
	}
	dto, err := h.uc.Unpause(c.Request().Context(), caller)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type proposeAdminReq struct {
	NewAdmin string `json:"new_admin" validate:"required,hex32"`
}

func (h *AdminHandler) ProposeAdmin(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return nil
	}
	var req proposeAdminReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.ProposeAdmin(c.Request().Context(), caller, req.NewAdmin)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AdminHandler) AcceptAdmin(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return nil
	}
	dto, err := h.uc.AcceptAdmin(c.Request().Context(), caller)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AdminHandler) GetGuard(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
