package handler

import (
	"net/http"
	"strconv"

	"cafe/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc    *usecase.OrderUsecase
	query *usecase.OrderQueryUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase, query *usecase.OrderQueryUsecase) *OrderHandler {
	return &OrderHandler{uc: uc, query: query}
}

type OrderCreateRequest struct {
	TableNumber int     `json:"table_number"`
	DishIDs     []int64 `json:"dish_ids"`
}

type OrderItemRequest struct {
	DishID   int64 `json:"dish_id"`
	Quantity int64 `json:"quantity"`
}

type OrderUpdateRequest struct {
	TableNumber *int                `json:"table_number"`
	Status      *string             `json:"status"`
	Items       *[]OrderItemRequest `json:"items"`
}

type AddDishRequest struct {
	DishID int64 `json:"dish_id"`
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/orders")

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/search", h.search)
	g.GET("/:id", h.detail)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)

	g.POST("/:id/items", h.addDish)
	g.DELETE("/:id/items/:dish_id", h.removeOneUnit)
	g.PATCH("/:id/status", h.changeStatus)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Create(c.Request().Context(), usecase.CreateOrderInput{
		TableNumber: req.TableNumber,
		DishIDs:     req.DishIDs,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	out, err := h.query.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 例: /orders/search?table_number=1&status=paid
func (h *OrderHandler) search(c echo.Context) error {
	var in usecase.SearchOrdersInput

	if v := c.QueryParam("table_number"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid table_number"})
		}
		in.TableNumber = &n
	}
	if v := c.QueryParam("status"); v != "" {
		in.Status = &v
	}

	out, err := h.query.Search(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) update(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req OrderUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	in := usecase.UpdateOrderInput{
		TableNumber: req.TableNumber,
		Status:      req.Status,
	}
	if req.Items != nil {
		items := make([]usecase.OrderItemInput, 0, len(*req.Items))
		for _, it := range *req.Items {
			items = append(items, usecase.OrderItemInput{
				DishID:   it.DishID,
				Quantity: it.Quantity,
			})
		}
		in.Items = &items
	}

	out, err := h.uc.Update(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) delete(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHandler) addDish(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req AddDishRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddDish(c.Request().Context(), id, req.DishID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 1単位だけ減らす。数量1の明細は行ごと消える。
func (h *OrderHandler) removeOneUnit(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	dishID, ok := parseIDParam(c, "dish_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid dish_id"})
	}

	out, err := h.uc.RemoveOneUnit(c.Request().Context(), id, dishID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) changeStatus(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req ChangeStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.ChangeStatus(c.Request().Context(), id, req.Status); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "status updated"})
}
