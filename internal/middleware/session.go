package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"storefront/internal/repository"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey = "user_id" // int64

	SessionCookieName = "session"
	loginPath         = "/login"
)

// infra/session.JWTIssuerが満たす
type SessionParser interface {
	ParseUserID(raw string) (int64, error)
}

// セッションJWT（cookieかBearer）を検証する。
// 無い・不正なら/loginへ302。
func SessionAuth(parser SessionParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := sessionToken(c)
			if raw == "" {
				return c.Redirect(http.StatusFound, loginPath)
			}

			userID, err := parser.ParseUserID(raw)
			if err != nil || userID <= 0 {
				ClearSessionCookie(c)
				return c.Redirect(http.StatusFound, loginPath)
			}

			//contextへ保存
			c.Set(CtxUserIDKey, userID)
			return next(c)
		}
	}
}

// 退会済みユーザーのセッションを弾く
func SessionUserGuard(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get(CtxUserIDKey).(int64)
			if !ok || userID <= 0 {
				return c.Redirect(http.StatusFound, loginPath)
			}

			//DBから最新のuserを取得する
			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				c.Logger().Errorf("load session user %d: %v", userID, err)
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
			}
			if user == nil || err != nil {
				ClearSessionCookie(c)
				return c.Redirect(http.StatusFound, loginPath)
			}

			return next(c)
		}
	}
}

func sessionToken(c echo.Context) string {
	if ck, err := c.Cookie(SessionCookieName); err == nil && ck.Value != "" {
		return ck.Value
	}

	//Bearer形式か確認してtokenを抜く
	authz := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func SetSessionCookie(c echo.Context, token string, expiresAt time.Time, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
