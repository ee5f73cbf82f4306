package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, requireSession ...echo.MiddlewareFunc) {
	e.GET("/orders", h.list, requireSession...)
	e.GET("/orders/cancel/:order_id", h.cancel, requireSession...)
	e.GET("/checkout", h.checkout, requireSession...)
}

func (h *OrderHandler) list(c echo.Context) error {
	uc, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	orders, err := h.uc.ListMine(c.Request().Context(), uc)
	if err != nil {
		return writeError(c, err)
	}
	return view(c, map[string]interface{}{"orders": orders})
}

func (h *OrderHandler) cancel(c echo.Context) error {
	uc, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	res, err := h.uc.Cancel(c.Request().Context(), uc, orderID)
	if err != nil {
		return redirectError(c, err, "/orders")
	}
	//Pending以外は何も言わずに戻す
	if !res.Changed {
		return c.Redirect(http.StatusFound, "/orders")
	}
	return redirectWith(c, "/orders", flashSuccess, "Order cancelled successfully!")
}

// 空カートは/cartへ戻す
func (h *OrderHandler) checkout(c echo.Context) error {
	uc, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	if _, err := h.uc.Checkout(c.Request().Context(), uc); err != nil {
		return redirectError(c, err, "/cart")
	}
	return redirectWith(c, "/orders", flashSuccess, "Order placed successfully!")
}
