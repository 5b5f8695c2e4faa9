package handler

import (
	"net/http"

	"cafe/internal/usecase"

	"github.com/labstack/echo/v4"
)

type RevenueHandler struct {
	uc *usecase.RevenueUsecase
}

func NewRevenueHandler(uc *usecase.RevenueUsecase) *RevenueHandler {
	return &RevenueHandler{uc: uc}
}

func (h *RevenueHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/revenue", h.revenue)
}

func (h *RevenueHandler) revenue(c echo.Context) error {
	out, err := h.uc.Revenue(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
