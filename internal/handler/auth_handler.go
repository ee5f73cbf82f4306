package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 登録・ログイン・プロフィール
type AuthHandler struct {
	uc           *usecase.AuthUsecase
	secureCookie bool
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase, secureCookie bool) *AuthHandler {
	return &AuthHandler{uc: uc, secureCookie: secureCookie}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, requireSession ...echo.MiddlewareFunc) {
	e.POST("/register", h.register)
	e.POST("/login", h.login)
	e.GET("/logout", h.logout)

	e.GET("/profile", h.profile, requireSession...)
	e.POST("/update_profile", h.updateProfile, requireSession...)
	e.GET("/delete_account", h.deleteAccount, requireSession...)
}

func (h *AuthHandler) register(c echo.Context) error {
	_, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	})
	if err != nil {
		return redirectError(c, err, "/register")
	}
	return redirectWith(c, "/login", flashSuccess, "Registered successfully!")
}

func (h *AuthHandler) login(c echo.Context) error {
	res, err := h.uc.Login(c.Request().Context(), c.FormValue("username"), c.FormValue("password"))
	if err != nil {
		return redirectError(c, err, "/login")
	}

	middleware.SetSessionCookie(c, res.Token, res.ExpiresAt, h.secureCookie)
	return redirectWith(c, "/dashboard", flashSuccess, "Logged in successfully!")
}

func (h *AuthHandler) logout(c echo.Context) error {
	middleware.ClearSessionCookie(c)
	return redirectWith(c, "/", flashInfo, "Logged out successfully")
}

func (h *AuthHandler) profile(c echo.Context) error {
	uc, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	out, err := h.uc.Profile(c.Request().Context(), uc)
	if err != nil {
		return writeError(c, err)
	}
	return view(c, map[string]interface{}{
		"user":      out.User,
		"addresses": out.Addresses,
	})
}

func (h *AuthHandler) updateProfile(c echo.Context) error {
	uc, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	_, err := h.uc.UpdateProfile(c.Request().Context(), uc, usecase.UpdateProfileInput{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	})
	if err != nil {
		return redirectError(c, err, "/profile")
	}
	return redirectWith(c, "/profile", flashSuccess, "Profile updated successfully.")
}

func (h *AuthHandler) deleteAccount(c echo.Context) error {
	uc, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	if err := h.uc.DeleteAccount(c.Request().Context(), uc); err != nil {
		return redirectError(c, err, "/profile")
	}
	middleware.ClearSessionCookie(c)
	return redirectWith(c, "/", flashSuccess, "Your account has been deleted.")
}
