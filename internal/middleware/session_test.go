package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/repository/repotest"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type stubParser struct{}

func (stubParser) ParseUserID(raw string) (int64, error) {
	if raw == "good" {
		return 7, nil
	}
	return 0, errors.New("bad token")
}

func okHandler(c echo.Context) error {
	id, _ := c.Get(CtxUserIDKey).(int64)
	return c.JSON(http.StatusOK, map[string]int64{"user_id": id})
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSessionAuth_NoCookieRedirects(t *testing.T) {
	e := echo.New()
	e.GET("/cart", okHandler, SessionAuth(stubParser{}))

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/cart", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestSessionAuth_InvalidTokenRedirectsAndClears(t *testing.T) {
	e := echo.New()
	e.GET("/cart", okHandler, SessionAuth(stubParser{}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged"})
	rec := serve(e, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "session=;")
}

func TestSessionAuth_ValidCookiePasses(t *testing.T) {
	e := echo.New()
	e.GET("/cart", okHandler, SessionAuth(stubParser{}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good"})
	rec := serve(e, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":7}`, rec.Body.String())
}

func TestSessionAuth_BearerHeaderPasses(t *testing.T) {
	e := echo.New()
	e.GET("/cart", okHandler, SessionAuth(stubParser{}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := serve(e, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionUserGuard_DeletedUserRedirects(t *testing.T) {
	users := new(repotest.UserRepo)
	users.On("FindByID", mock.Anything, int64(7)).Return(nil, repo.ErrNotFound)

	e := echo.New()
	e.GET("/cart", okHandler, SessionAuth(stubParser{}), SessionUserGuard(users))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good"})
	rec := serve(e, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestSessionUserGuard_ExistingUserPasses(t *testing.T) {
	users := new(repotest.UserRepo)
	users.On("FindByID", mock.Anything, int64(7)).Return(&model.User{ID: 7}, nil)

	e := echo.New()
	e.GET("/cart", okHandler, SessionAuth(stubParser{}), SessionUserGuard(users))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good"})
	rec := serve(e, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	users.AssertExpectations(t)
}

func TestSessionUserGuard_LookupFailureKeepsSession(t *testing.T) {
	users := new(repotest.UserRepo)
	users.On("FindByID", mock.Anything, int64(7)).Return(nil, errors.New("connection refused"))

	e := echo.New()
	e.Logger.SetOutput(io.Discard)
	e.GET("/cart", okHandler, SessionAuth(stubParser{}), SessionUserGuard(users))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good"})
	rec := serve(e, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderLocation))
	//DB障害ではcookieを消さない
	assert.Empty(t, rec.Result().Cookies())
}
