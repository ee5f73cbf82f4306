package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type WishlistHandler struct {
	uc *usecase.WishlistUsecase
}

func NewWishlistHandler(uc *usecase.WishlistUsecase) *WishlistHandler {
	return &WishlistHandler{uc: uc}
}

func (h *WishlistHandler) RegisterRoutes(e *echo.Echo, requireSession ...echo.MiddlewareFunc) {
	g := e.Group("/wishlist", requireSession...)

	g.GET("", h.list)
	g.GET("/add/:product_id", h.add)
	g.GET("/remove/:product_id", h.remove)
}

func (h *WishlistHandler) list(c echo.Context) error {
	uc, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	items, err := h.uc.View(c.Request().Context(), uc)
	if err != nil {
		return writeError(c, err)
	}
	return view(c, map[string]interface{}{"items": items})
}

func (h *WishlistHandler) add(c echo.Context) error {
	uc, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	created, err := h.uc.Add(c.Request().Context(), uc, productID)
	if err != nil {
		return redirectError(c, err, "/wishlist")
	}
	if !created {
		return c.Redirect(http.StatusFound, "/wishlist")
	}
	return redirectWith(c, "/wishlist", flashSuccess, "Added to wishlist!")
}

func (h *WishlistHandler) remove(c echo.Context) error {
	uc, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	removed, err := h.uc.Remove(c.Request().Context(), uc, productID)
	if err != nil {
		return redirectError(c, err, "/wishlist")
	}
	if !removed {
		return c.Redirect(http.StatusFound, "/wishlist")
	}
	return redirectWith(c, "/wishlist", flashInfo, "Removed from wishlist!")
}
