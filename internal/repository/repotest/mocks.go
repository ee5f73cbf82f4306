// Package repotest はusecase/handlerのテストで使うrepositoryのモック。
package repotest

import (
	"context"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/mock"
)

type UserRepo struct{ mock.Mock }

func (m *UserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepo) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type AddressRepo struct{ mock.Mock }

func (m *AddressRepo) Create(ctx context.Context, a model.Address) (model.Address, error) {
	args := m.Called(ctx, a)
	out, _ := args.Get(0).(model.Address)
	return out, args.Error(1)
}

func (m *AddressRepo) ListByUserID(ctx context.Context, userID int64) ([]model.Address, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]model.Address)
	return out, args.Error(1)
}

func (m *AddressRepo) FindByID(ctx context.Context, id int64) (model.Address, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(model.Address)
	return out, args.Error(1)
}

func (m *AddressRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *AddressRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type CategoryRepo struct{ mock.Mock }

func (m *CategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]model.Category)
	return out, args.Error(1)
}

func (m *CategoryRepo) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(model.Category)
	return out, args.Error(1)
}

func (m *CategoryRepo) FindByName(ctx context.Context, name string) (model.Category, error) {
	args := m.Called(ctx, name)
	out, _ := args.Get(0).(model.Category)
	return out, args.Error(1)
}

func (m *CategoryRepo) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(model.Category)
	return out, args.Error(1)
}

type ProductRepo struct{ mock.Mock }

func (m *ProductRepo) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]model.Product)
	return out, args.Error(1)
}

func (m *ProductRepo) ListByCategoryID(ctx context.Context, categoryID int64) ([]model.Product, error) {
	args := m.Called(ctx, categoryID)
	out, _ := args.Get(0).([]model.Product)
	return out, args.Error(1)
}

func (m *ProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *ProductRepo) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	out, _ := args.Get(0).([]model.Product)
	return out, args.Error(1)
}

func (m *ProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *ProductRepo) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductRepo) SoftDeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

type CartRepo struct{ mock.Mock }

func (m *CartRepo) ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]model.CartLine)
	return out, args.Error(1)
}

func (m *CartRepo) LockByUserID(ctx context.Context, userID int64) ([]model.CartLine, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]model.CartLine)
	return out, args.Error(1)
}

func (m *CartRepo) LockLine(ctx context.Context, userID int64, productID int64) (model.CartLine, error) {
	args := m.Called(ctx, userID, productID)
	out, _ := args.Get(0).(model.CartLine)
	return out, args.Error(1)
}

func (m *CartRepo) Increment(ctx context.Context, userID int64, productID int64) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *CartRepo) UpdateQuantity(ctx context.Context, lineID int64, qty int64) error {
	args := m.Called(ctx, lineID, qty)
	return args.Error(0)
}

func (m *CartRepo) DeleteLine(ctx context.Context, lineID int64) error {
	args := m.Called(ctx, lineID)
	return args.Error(0)
}

func (m *CartRepo) DeleteLines(ctx context.Context, lineIDs []int64) (int64, error) {
	args := m.Called(ctx, lineIDs)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

func (m *CartRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *CartRepo) DeleteByProductID(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *CartRepo) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type WishlistRepo struct{ mock.Mock }

func (m *WishlistRepo) ListByUserID(ctx context.Context, userID int64) ([]model.WishlistLine, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]model.WishlistLine)
	return out, args.Error(1)
}

func (m *WishlistRepo) Add(ctx context.Context, userID int64, productID int64) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *WishlistRepo) Remove(ctx context.Context, userID int64, productID int64) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *WishlistRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *WishlistRepo) DeleteByProductID(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *WishlistRepo) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type OrderRepo struct{ mock.Mock }

func (m *OrderRepo) Create(ctx context.Context, o model.Order) (int64, error) {
	args := m.Called(ctx, o)
	id, _ := args.Get(0).(int64)
	return id, args.Error(1)
}

func (m *OrderRepo) FindByID(ctx context.Context, id int64) (model.Order, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(model.Order)
	return out, args.Error(1)
}

func (m *OrderRepo) LockByID(ctx context.Context, id int64) (model.Order, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(model.Order)
	return out, args.Error(1)
}

func (m *OrderRepo) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]model.Order)
	return out, args.Error(1)
}

func (m *OrderRepo) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type OrderItemRepo struct{ mock.Mock }

func (m *OrderItemRepo) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	out, _ := args.Get(0).([]model.OrderItem)
	return out, args.Error(1)
}

type AuditLogRepo struct{ mock.Mock }

func (m *AuditLogRepo) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditLogRepo) ListByResource(ctx context.Context, resourceType model.AuditResourceType, resourceID int64) ([]model.AuditLog, error) {
	args := m.Called(ctx, resourceType, resourceID)
	out, _ := args.Get(0).([]model.AuditLog)
	return out, args.Error(1)
}

type OutboxRepo struct{ mock.Mock }

func (m *OutboxRepo) Insert(ctx context.Context, e model.OutboxEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *OutboxRepo) FetchPending(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	out, _ := args.Get(0).([]model.OutboxEvent)
	return out, args.Error(1)
}

func (m *OutboxRepo) MarkSent(ctx context.Context, id int64, sentAt time.Time) error {
	args := m.Called(ctx, id, sentAt)
	return args.Error(0)
}

var (
	_ repo.UserRepository      = (*UserRepo)(nil)
	_ repo.AddressRepository   = (*AddressRepo)(nil)
	_ repo.CategoryRepository  = (*CategoryRepo)(nil)
	_ repo.ProductRepository   = (*ProductRepo)(nil)
	_ repo.CartRepository      = (*CartRepo)(nil)
	_ repo.WishlistRepository  = (*WishlistRepo)(nil)
	_ repo.OrderRepository     = (*OrderRepo)(nil)
	_ repo.OrderItemRepository = (*OrderItemRepo)(nil)
	_ repo.AuditLogRepository  = (*AuditLogRepo)(nil)
	_ repo.OutboxRepository    = (*OutboxRepo)(nil)
)
