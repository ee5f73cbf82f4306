package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AddressHandler struct {
	uc *usecase.AddressUsecase
}

func NewAddressHandler(uc *usecase.AddressUsecase) *AddressHandler {
	return &AddressHandler{uc: uc}
}

func (h *AddressHandler) RegisterRoutes(e *echo.Echo, requireSession ...echo.MiddlewareFunc) {
	e.POST("/add_address", h.add, requireSession...)
	e.GET("/delete_address/:id", h.delete, requireSession...)
}

func (h *AddressHandler) add(c echo.Context) error {
	uc, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	_, err := h.uc.Add(c.Request().Context(), uc, usecase.AddressCreateRequest{
		AddressLine: c.FormValue("address_line"),
		City:        c.FormValue("city"),
		State:       c.FormValue("state"),
		PostalCode:  c.FormValue("postal_code"),
	})
	if err != nil {
		return redirectError(c, err, "/profile")
	}
	return redirectWith(c, "/profile", flashSuccess, "Address added!")
}

func (h *AddressHandler) delete(c echo.Context) error {
	uc, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	if err := h.uc.Delete(c.Request().Context(), uc, id); err != nil {
		return redirectError(c, err, "/profile")
	}
	return redirectWith(c, "/profile", flashSuccess, "Address deleted!")
}
