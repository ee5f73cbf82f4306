package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

const flashCookieName = "flash"

// フラッシュメッセージの種類
const (
	flashSuccess = "success"
	flashInfo    = "info"
	flashWarning = "warning"
	flashDanger  = "danger"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// 次の画面で一度だけ出すメッセージ
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

func setFlash(c echo.Context, category string, message string) {
	b, _ := json.Marshal(Flash{Category: category, Message: message})
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// 読んだら消す
func popFlash(c echo.Context) *Flash {
	ck, err := c.Cookie(flashCookieName)
	if err != nil || ck.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{Name: flashCookieName, Value: "", Path: "/", MaxAge: -1})

	b, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(b, &f); err != nil {
		return nil
	}
	return &f
}

func redirectWith(c echo.Context, path string, category string, message string) error {
	setFlash(c, category, message)
	return c.Redirect(http.StatusFound, path)
}

// 画面系は {"flash": ..., ...data} で返す
func view(c echo.Context, data map[string]interface{}) error {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["flash"] = popFlash(c)
	return c.JSON(http.StatusOK, data)
}

// 画面系のエラー
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, usecase.ErrUnauthorized):
		return c.Redirect(http.StatusFound, "/login")
	case errors.Is(err, usecase.ErrValidation), errors.Is(err, usecase.ErrConflict):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: userMessage(err)})
	default:
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// リダイレクト系のエラー。backに戻してメッセージを出す
func redirectError(c echo.Context, err error, back string) error {
	switch {
	case errors.Is(err, usecase.ErrEmptyCart):
		return redirectWith(c, back, flashWarning, "Your cart is empty!")
	case errors.Is(err, usecase.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, usecase.ErrUnauthorized):
		return c.Redirect(http.StatusFound, "/login")
	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrConflict),
		errors.Is(err, usecase.ErrInvalidCredentials):
		return redirectWith(c, back, flashDanger, userMessage(err))
	default:
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
		return redirectWith(c, back, flashDanger, "Something went wrong")
	}
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, usecase.ErrConflict):
		return "Username already exists"
	case errors.Is(err, usecase.ErrValidation):
		msg := strings.TrimPrefix(err.Error(), usecase.ErrValidation.Error()+": ")
		if msg == "" {
			return "Invalid input"
		}
		return msg
	default:
		return "Something went wrong"
	}
}

// SessionAuthが入れたuser_id
func currentUser(c echo.Context) (usecase.UserContext, bool) {
	id, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok || id <= 0 {
		return usecase.UserContext{}, false
	}
	return usecase.UserContext{UserID: id}, true
}
