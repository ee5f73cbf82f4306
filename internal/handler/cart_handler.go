package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, requireSession ...echo.MiddlewareFunc) {
	g := e.Group("/cart", requireSession...)

	g.GET("", h.getCart)
	g.GET("/add/:product_id", h.add)
	g.GET("/remove/:product_id", h.remove)
}

func (h *CartHandler) getCart(c echo.Context) error {
	uc, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	out, err := h.uc.View(c.Request().Context(), uc)
	if err != nil {
		return writeError(c, err)
	}
	return view(c, map[string]interface{}{
		"lines": out.Lines,
		"total": out.Total,
	})
}

func (h *CartHandler) add(c echo.Context) error {
	uc, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	if err := h.uc.Add(c.Request().Context(), uc, productID); err != nil {
		return redirectError(c, err, "/cart")
	}
	return redirectWith(c, "/cart", flashSuccess, "Added to cart!")
}

func (h *CartHandler) remove(c echo.Context) error {
	uc, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	changed, err := h.uc.Remove(c.Request().Context(), uc, productID)
	if err != nil {
		return redirectError(c, err, "/cart")
	}
	if !changed {
		return c.Redirect(http.StatusFound, "/cart")
	}
	return redirectWith(c, "/cart", flashSuccess, "Cart updated!")
}
