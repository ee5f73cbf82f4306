package handler

import (
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// カタログ（一覧・カテゴリ・商品追加削除）
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo, requireSession ...echo.MiddlewareFunc) {
	e.GET("/", h.index)
	e.GET("/categories", h.categories)
	e.GET("/category/:id", h.category)

	e.GET("/dashboard", h.dashboard, requireSession...)
	e.POST("/product/add", h.add, requireSession...)
	e.GET("/product/delete/:id", h.delete, requireSession...)
}

func (h *ProductHandler) index(c echo.Context) error {
	out, err := h.uc.Index(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return view(c, map[string]interface{}{
		"products":   out.Products,
		"categories": out.Categories,
	})
}

func (h *ProductHandler) dashboard(c echo.Context) error {
	products, err := h.uc.Products(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return view(c, map[string]interface{}{"products": products})
}

func (h *ProductHandler) categories(c echo.Context) error {
	list, err := h.uc.Categories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return view(c, map[string]interface{}{"categories": list})
}

func (h *ProductHandler) category(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	out, err := h.uc.CategoryPage(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return view(c, map[string]interface{}{
		"category": out.Category,
		"products": out.Products,
	})
}

func (h *ProductHandler) add(c echo.Context) error {
	in := usecase.AddProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Image:       c.FormValue("image"),
	}

	price, err := decimal.NewFromString(strings.TrimSpace(c.FormValue("price")))
	if err != nil {
		return redirectWith(c, "/dashboard", flashDanger, "price must be a number")
	}
	in.Price = price

	if s := strings.TrimSpace(c.FormValue("stock")); s != "" {
		stock, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return redirectWith(c, "/dashboard", flashDanger, "stock must be a whole number")
		}
		in.Stock = stock
	}

	if s := strings.TrimSpace(c.FormValue("category_id")); s != "" {
		cid, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return redirectWith(c, "/dashboard", flashDanger, "invalid category")
		}
		in.CategoryID = &cid
	}

	if _, err := h.uc.AddProduct(c.Request().Context(), in); err != nil {
		return redirectError(c, err, "/dashboard")
	}
	return redirectWith(c, "/dashboard", flashSuccess, "Product added!")
}

func (h *ProductHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return redirectError(c, err, "/dashboard")
	}
	return redirectWith(c, "/dashboard", flashInfo, "Product deleted!")
}
