package handler

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	repo "storefront/internal/repository"
	"storefront/internal/repository/repotest"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }

type constIDs struct{}

func (constIDs) NewID() string { return "evt" }

type nopMetrics struct{}

func (nopMetrics) ObserveCheckout(string) {}

type stubIssuer struct{}

func (stubIssuer) Issue(userID int64, now time.Time) (string, time.Time, error) {
	return "signed-token", now.Add(time.Hour), nil
}

func quietLogger() *log.Logger {
	l := log.New("test")
	l.SetOutput(io.Discard)
	return l
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Logger.SetOutput(io.Discard)
	return e
}

// SessionAuthの代わりにuser_idを入れる
func asUser(id int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.CtxUserIDKey, id)
			return next(c)
		}
	}
}

func do(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func flashFrom(t *testing.T, rec *httptest.ResponseRecorder) Flash {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name != flashCookieName || ck.Value == "" {
			continue
		}
		b, err := base64.RawURLEncoding.DecodeString(ck.Value)
		require.NoError(t, err)
		var f Flash
		require.NoError(t, json.Unmarshal(b, &f))
		return f
	}
	t.Fatal("no flash cookie")
	return Flash{}
}

func orderSetup() (*echo.Echo, *repotest.Repos) {
	repos := repotest.NewRepos()
	uc := usecase.NewOrderUsecase(repotest.NewTxManager(repos), fixedClock{}, constIDs{}, quietLogger(), nopMetrics{})
	e := newEcho()
	NewOrderHandler(uc).RegisterRoutes(e, asUser(1))
	return e, repos
}

func TestCheckout_EmptyCartRedirectsToCart(t *testing.T) {
	e, repos := orderSetup()
	repos.CartRepo.On("LockByUserID", mock.Anything, int64(1)).Return([]model.CartLine{}, nil)

	rec := do(e, httptest.NewRequest(http.MethodGet, "/checkout", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/cart", rec.Header().Get(echo.HeaderLocation))
	f := flashFrom(t, rec)
	assert.Equal(t, "warning", f.Category)
	assert.Equal(t, "Your cart is empty!", f.Message)
}

func TestCheckout_SuccessRedirectsToOrders(t *testing.T) {
	e, repos := orderSetup()
	repos.CartRepo.On("LockByUserID", mock.Anything, int64(1)).Return([]model.CartLine{
		{ID: 1, UserID: 1, ProductID: 5, Quantity: 1},
	}, nil)
	repos.ProductRepo.On("FindByIDs", mock.Anything, []int64{5}).Return([]model.Product{{ID: 5, Price: decimal.NewFromInt(10)}}, nil)
	repos.OrderRepo.On("Create", mock.Anything, mock.Anything).Return(int64(3), nil)
	repos.OrderItemRepo.On("CreateBulk", mock.Anything, int64(3), mock.Anything).Return(nil)
	repos.OutboxRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	repos.CartRepo.On("DeleteLines", mock.Anything, []int64{1}).Return(int64(1), nil)

	rec := do(e, httptest.NewRequest(http.MethodGet, "/checkout", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/orders", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "success", flashFrom(t, rec).Category)
}

func TestCheckout_StorageErrorShowsGenericMessage(t *testing.T) {
	e, repos := orderSetup()
	repos.CartRepo.On("LockByUserID", mock.Anything, int64(1)).Return([]model.CartLine{}, assert.AnError)

	rec := do(e, httptest.NewRequest(http.MethodGet, "/checkout", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	f := flashFrom(t, rec)
	assert.Equal(t, "danger", f.Category)
	assert.Equal(t, "Something went wrong", f.Message)
}

func TestCancel_UnknownOrderIs404(t *testing.T) {
	e, repos := orderSetup()
	repos.OrderRepo.On("LockByID", mock.Anything, int64(9)).Return(model.Order{}, repo.ErrNotFound)

	rec := do(e, httptest.NewRequest(http.MethodGet, "/orders/cancel/9", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
}

func TestCancel_NonPendingRedirectsWithoutFlash(t *testing.T) {
	e, repos := orderSetup()
	repos.OrderRepo.On("LockByID", mock.Anything, int64(9)).Return(model.Order{ID: 9, UserID: 1, Status: model.OrderStatusCancelled}, nil)

	rec := do(e, httptest.NewRequest(http.MethodGet, "/orders/cancel/9", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/orders", rec.Header().Get(echo.HeaderLocation))
	assert.Empty(t, rec.Result().Cookies())
}

func TestOrders_ViewPopsFlash(t *testing.T) {
	e, repos := orderSetup()
	repos.OrderRepo.On("ListByUserID", mock.Anything, int64(1)).Return([]model.Order{}, nil)

	b, _ := json.Marshal(Flash{Category: "success", Message: "Order placed successfully!"})
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.AddCookie(&http.Cookie{Name: flashCookieName, Value: base64.RawURLEncoding.EncodeToString(b)})
	rec := do(e, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"flash":{"category":"success","message":"Order placed successfully!"},"orders":[]}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "flash=;")
}

func TestCategory_UnknownIs404(t *testing.T) {
	repos := repotest.NewRepos()
	e := newEcho()
	NewProductHandler(usecase.NewProductUsecase(repotest.NewTxManager(repos), quietLogger())).RegisterRoutes(e, asUser(1))
	repos.CategoryRepo.On("FindByID", mock.Anything, int64(4)).Return(model.Category{}, repo.ErrNotFound)

	rec := do(e, httptest.NewRequest(http.MethodGet, "/category/4", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductAdd_BadPrice(t *testing.T) {
	repos := repotest.NewRepos()
	e := newEcho()
	NewProductHandler(usecase.NewProductUsecase(repotest.NewTxManager(repos), quietLogger())).RegisterRoutes(e, asUser(1))

	form := url.Values{"name": {"Watch"}, "price": {"abc"}}
	req := httptest.NewRequest(http.MethodPost, "/product/add", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := do(e, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "danger", flashFrom(t, rec).Category)
	repos.ProductRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCartAdd_RedirectsToCart(t *testing.T) {
	repos := repotest.NewRepos()
	e := newEcho()
	NewCartHandler(usecase.NewCartUsecase(repotest.NewTxManager(repos), quietLogger())).RegisterRoutes(e, asUser(1))
	repos.ProductRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Product{ID: 5}, nil)
	repos.CartRepo.On("Increment", mock.Anything, int64(1), int64(5)).Return(nil)

	rec := do(e, httptest.NewRequest(http.MethodGet, "/cart/add/5", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/cart", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "Added to cart!", flashFrom(t, rec).Message)
}

func authSetup() (*echo.Echo, *repotest.Repos) {
	repos := repotest.NewRepos()
	hasher := usecase.NewBcryptPasswordHasher(bcrypt.MinCost)
	uc := usecase.NewAuthUsecase(repotest.NewTxManager(repos), validator.NewAuthValidator(), hasher, hasher, stubIssuer{}, fixedClock{}, quietLogger())
	e := newEcho()
	NewAuthHandler(uc, false).RegisterRoutes(e, asUser(1))
	return e, repos
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	e, repos := authSetup()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	repos.UserRepo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 1, Username: "alice", PasswordHash: string(hash)}, nil)

	rec := do(e, postForm("/login", url.Values{"username": {"alice"}, "password": {"password1"}}))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))

	var session *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookieName {
			session = ck
		}
	}
	require.NotNil(t, session)
	assert.Equal(t, "signed-token", session.Value)
	assert.True(t, session.HttpOnly)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	e, repos := authSetup()
	repos.UserRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, repo.ErrNotFound)

	rec := do(e, postForm("/login", url.Values{"username": {"alice"}, "password": {"password1"}}))

	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	f := flashFrom(t, rec)
	assert.Equal(t, "danger", f.Category)
	assert.Equal(t, "Invalid credentials", f.Message)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	e, repos := authSetup()
	repos.UserRepo.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicate)

	rec := do(e, postForm("/register", url.Values{
		"username": {"alice"}, "email": {"alice@example.com"}, "password": {"password1"},
	}))

	assert.Equal(t, "/register", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "Username already exists", flashFrom(t, rec).Message)
}

func TestRegister_ValidationMessage(t *testing.T) {
	e, _ := authSetup()

	rec := do(e, postForm("/register", url.Values{
		"username": {"alice"}, "email": {"alice@example.com"}, "password": {"short"},
	}))

	assert.Equal(t, "/register", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "password must be at least 8 characters", flashFrom(t, rec).Message)
}
