package usecase_test

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/repository/repotest"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderUC(repos *repotest.Repos, metrics *recordingMetrics) *usecase.OrderUsecase {
	return usecase.NewOrderUsecase(repotest.NewTxManager(repos), fixedClock{testNow}, &seqIDs{}, quietLogger(), metrics)
}

func twoLineCart(repos *repotest.Repos) {
	repos.CartRepo.On("LockByUserID", mock.Anything, int64(1)).Return([]model.CartLine{
		{ID: 11, UserID: 1, ProductID: 100, Quantity: 2},
		{ID: 12, UserID: 1, ProductID: 200, Quantity: 1},
	}, nil)
	repos.ProductRepo.On("FindByIDs", mock.Anything, []int64{100, 200}).Return([]model.Product{
		{ID: 100, Name: "A", Price: decimal.NewFromInt(100)},
		{ID: 200, Name: "B", Price: decimal.NewFromInt(50)},
	}, nil)
}

func TestCheckout_TotalMatchesItemsAndCartIsCleared(t *testing.T) {
	ctx := context.Background()
	repos := repotest.NewRepos()
	metrics := &recordingMetrics{}
	uc := newOrderUC(repos, metrics)

	twoLineCart(repos)

	var created model.Order
	repos.OrderRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { created = args.Get(1).(model.Order) }).
		Return(int64(7), nil)

	var items []model.OrderItem
	repos.OrderItemRepo.On("CreateBulk", mock.Anything, int64(7), mock.Anything).
		Run(func(args mock.Arguments) { items = args.Get(2).([]model.OrderItem) }).
		Return(nil)

	var evt model.OutboxEvent
	repos.OutboxRepo.On("Insert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { evt = args.Get(1).(model.OutboxEvent) }).
		Return(nil)

	repos.CartRepo.On("DeleteLines", mock.Anything, []int64{11, 12}).Return(int64(2), nil)

	out, err := uc.Checkout(ctx, usecase.UserContext{UserID: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(7), out.ID)
	assert.Equal(t, "Pending", out.Status)
	assert.True(t, decimal.NewFromInt(250).Equal(out.TotalPrice), "total=%s", out.TotalPrice)
	assert.Equal(t, model.OrderStatusPending, created.Status)
	assert.Equal(t, testNow, created.CreatedAt)

	require.Len(t, items, 2)
	sum := decimal.Zero
	for _, it := range items {
		assert.Equal(t, int64(7), it.OrderID)
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	assert.True(t, sum.Equal(created.TotalPrice))
	assert.True(t, decimal.NewFromInt(100).Equal(items[0].Price))
	assert.Equal(t, int64(2), items[0].Quantity)
	assert.True(t, decimal.NewFromInt(50).Equal(items[1].Price))
	assert.Equal(t, int64(1), items[1].Quantity)

	assert.Equal(t, usecase.TopicOrdersPlaced, evt.Topic)
	assert.Equal(t, "7", evt.Key)
	assert.Equal(t, "evt-1", evt.EventID)
	assert.Contains(t, evt.Payload, `"order_id":7`)
	assert.Contains(t, evt.Payload, `"status":"Pending"`)

	assert.Equal(t, []string{usecase.CheckoutResultOK}, metrics.results)
	repos.CartRepo.AssertExpectations(t)
	repos.OrderItemRepo.AssertExpectations(t)
}

func TestCheckout_EmptyCartCreatesNothing(t *testing.T) {
	repos := repotest.NewRepos()
	metrics := &recordingMetrics{}
	uc := newOrderUC(repos, metrics)

	repos.CartRepo.On("LockByUserID", mock.Anything, int64(1)).Return([]model.CartLine{}, nil)

	_, err := uc.Checkout(context.Background(), usecase.UserContext{UserID: 1})
	assert.ErrorIs(t, err, usecase.ErrEmptyCart)

	repos.OrderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repos.OrderItemRepo.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything, mock.Anything)
	repos.CartRepo.AssertNotCalled(t, "DeleteLines", mock.Anything, mock.Anything)
	assert.Equal(t, []string{usecase.CheckoutResultEmpty}, metrics.results)
}

func TestCheckout_ItemFailureKeepsCart(t *testing.T) {
	repos := repotest.NewRepos()
	metrics := &recordingMetrics{}
	uc := newOrderUC(repos, metrics)

	twoLineCart(repos)
	repos.OrderRepo.On("Create", mock.Anything, mock.Anything).Return(int64(7), nil)
	repos.OrderItemRepo.On("CreateBulk", mock.Anything, int64(7), mock.Anything).Return(errors.New("db down"))

	out, err := uc.Checkout(context.Background(), usecase.UserContext{UserID: 1})
	require.Error(t, err)

	var se *usecase.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "create order items", se.Op)
	assert.Equal(t, usecase.OrderOutput{}, out)

	repos.CartRepo.AssertNotCalled(t, "DeleteLines", mock.Anything, mock.Anything)
	repos.OutboxRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	assert.Equal(t, []string{usecase.CheckoutResultError}, metrics.results)
}

func TestCheckout_MissingProductIsNotFound(t *testing.T) {
	repos := repotest.NewRepos()
	uc := newOrderUC(repos, &recordingMetrics{})

	repos.CartRepo.On("LockByUserID", mock.Anything, int64(1)).Return([]model.CartLine{
		{ID: 11, UserID: 1, ProductID: 100, Quantity: 1},
		{ID: 12, UserID: 1, ProductID: 200, Quantity: 1},
	}, nil)
	repos.ProductRepo.On("FindByIDs", mock.Anything, []int64{100, 200}).Return([]model.Product{
		{ID: 100, Price: decimal.NewFromInt(10)},
	}, nil)

	_, err := uc.Checkout(context.Background(), usecase.UserContext{UserID: 1})
	assert.ErrorIs(t, err, usecase.ErrNotFound)
	repos.OrderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckout_DeletedLineCountMismatchRollsBack(t *testing.T) {
	repos := repotest.NewRepos()
	uc := newOrderUC(repos, &recordingMetrics{})

	twoLineCart(repos)
	repos.OrderRepo.On("Create", mock.Anything, mock.Anything).Return(int64(7), nil)
	repos.OrderItemRepo.On("CreateBulk", mock.Anything, int64(7), mock.Anything).Return(nil)
	repos.OutboxRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	repos.CartRepo.On("DeleteLines", mock.Anything, []int64{11, 12}).Return(int64(1), nil)

	_, err := uc.Checkout(context.Background(), usecase.UserContext{UserID: 1})

	var se *usecase.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "delete cart lines", se.Op)
}

func TestCheckout_RequiresUser(t *testing.T) {
	repos := repotest.NewRepos()
	uc := newOrderUC(repos, &recordingMetrics{})

	_, err := uc.Checkout(context.Background(), usecase.UserContext{})
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestCancel_PendingBecomesCancelled(t *testing.T) {
	repos := repotest.NewRepos()
	uc := newOrderUC(repos, &recordingMetrics{})

	repos.OrderRepo.On("LockByID", mock.Anything, int64(7)).Return(model.Order{
		ID: 7, UserID: 1, Status: model.OrderStatusPending, TotalPrice: decimal.NewFromInt(250),
	}, nil)
	repos.OrderRepo.On("UpdateStatus", mock.Anything, int64(7), model.OrderStatusCancelled).Return(nil)
	repos.AuditLogRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionCancelOrder &&
			l.ResourceID == 7 &&
			l.BeforeJSON == `{"status":"Pending"}` &&
			l.AfterJSON == `{"status":"Cancelled"}`
	})).Return(nil)
	repos.OrderItemRepo.On("ListByOrderID", mock.Anything, int64(7)).Return([]model.OrderItem{}, nil)
	repos.OutboxRepo.On("Insert", mock.Anything, mock.MatchedBy(func(e model.OutboxEvent) bool {
		return e.Topic == usecase.TopicOrdersCancelled && e.Key == "7"
	})).Return(nil)

	res, err := uc.Cancel(context.Background(), usecase.UserContext{UserID: 1}, 7)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "Cancelled", res.Status)

	repos.OrderRepo.AssertExpectations(t)
	repos.AuditLogRepo.AssertExpectations(t)
	repos.OutboxRepo.AssertExpectations(t)
}

func TestCancel_NonPendingIsNoop(t *testing.T) {
	repos := repotest.NewRepos()
	uc := newOrderUC(repos, &recordingMetrics{})

	repos.OrderRepo.On("LockByID", mock.Anything, int64(7)).Return(model.Order{
		ID: 7, UserID: 1, Status: model.OrderStatusCancelled,
	}, nil)

	res, err := uc.Cancel(context.Background(), usecase.UserContext{UserID: 1}, 7)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, "Cancelled", res.Status)

	repos.OrderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	repos.AuditLogRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCancel_OtherUsersOrderIsNotFound(t *testing.T) {
	repos := repotest.NewRepos()
	uc := newOrderUC(repos, &recordingMetrics{})

	repos.OrderRepo.On("LockByID", mock.Anything, int64(7)).Return(model.Order{
		ID: 7, UserID: 2, Status: model.OrderStatusPending,
	}, nil)

	_, err := uc.Cancel(context.Background(), usecase.UserContext{UserID: 1}, 7)
	assert.ErrorIs(t, err, usecase.ErrNotFound)
	repos.OrderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancel_UnknownOrder(t *testing.T) {
	repos := repotest.NewRepos()
	uc := newOrderUC(repos, &recordingMetrics{})

	repos.OrderRepo.On("LockByID", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.Cancel(context.Background(), usecase.UserContext{UserID: 1}, 99)
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	_, err = uc.Cancel(context.Background(), usecase.UserContext{UserID: 1}, 0)
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestListMine_ReturnsItemsPerOrder(t *testing.T) {
	repos := repotest.NewRepos()
	uc := newOrderUC(repos, &recordingMetrics{})

	repos.OrderRepo.On("ListByUserID", mock.Anything, int64(1)).Return([]model.Order{
		{ID: 8, UserID: 1, Status: model.OrderStatusPending},
		{ID: 7, UserID: 1, Status: model.OrderStatusCancelled},
	}, nil)
	repos.OrderItemRepo.On("ListByOrderID", mock.Anything, int64(8)).Return([]model.OrderItem{
		{OrderID: 8, ProductID: 100, Quantity: 3, Price: decimal.NewFromInt(10)},
	}, nil)
	repos.OrderItemRepo.On("ListByOrderID", mock.Anything, int64(7)).Return([]model.OrderItem{}, nil)

	outs, err := uc.ListMine(context.Background(), usecase.UserContext{UserID: 1})
	require.NoError(t, err)
	require.Len(t, outs, 2)
	assert.Equal(t, int64(8), outs[0].ID)
	require.Len(t, outs[0].Items, 1)
	assert.True(t, decimal.NewFromInt(30).Equal(outs[0].Items[0].Subtotal))
	assert.Empty(t, outs[1].Items)
}
