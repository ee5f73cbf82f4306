package repository

import (
	"context"
	"time"

	repo "storefront/internal/repository"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/gorm"
)

type txReposGorm struct {
	users      repo.UserRepository
	addresses  repo.AddressRepository
	categories repo.CategoryRepository
	products   repo.ProductRepository
	carts      repo.CartRepository
	wishlists  repo.WishlistRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	auditLogs  repo.AuditLogRepository
	outbox     repo.OutboxRepository
}

func (r *txReposGorm) Users() repo.UserRepository           { return r.users }
func (r *txReposGorm) Addresses() repo.AddressRepository    { return r.addresses }
func (r *txReposGorm) Categories() repo.CategoryRepository  { return r.categories }
func (r *txReposGorm) Products() repo.ProductRepository     { return r.products }
func (r *txReposGorm) Carts() repo.CartRepository           { return r.carts }
func (r *txReposGorm) Wishlists() repo.WishlistRepository   { return r.wishlists }
func (r *txReposGorm) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository   { return r.auditLogs }
func (r *txReposGorm) Outbox() repo.OutboxRepository        { return r.outbox }

func newTxRepos(tx *gorm.DB) *txReposGorm {
	return &txReposGorm{
		users:      NewUserGormRepository(tx),
		addresses:  NewAddressGormRepository(tx),
		categories: NewCategoryGormRepository(tx),
		products:   NewProductGormRepository(tx),
		carts:      NewCartGormRepository(tx),
		wishlists:  NewWishlistGormRepository(tx),
		orders:     NewOrderGormRepository(tx),
		orderItems: NewOrderItemGormRepository(tx),
		auditLogs:  NewAuditLogGormRepository(tx),
		outbox:     NewOutboxGormRepository(tx),
	}
}

type TxManagerGorm struct {
	db         *gorm.DB
	maxRetries int
}

func NewTxManagerGorm(db *gorm.DB, maxRetries int) *TxManagerGorm {
	return &TxManagerGorm{db: db, maxRetries: maxRetries}
}

// fnは再試行で複数回呼ばれることがある
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return retry(ctx, tm.maxRetries, func() error {
		return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			//repoはtxを持ったDBで作り直す
			return fn(newTxRepos(tx))
		})
	})
}

// シリアライズ失敗・デッドロックだけ指数バックオフでやり直す
func retry(ctx context.Context, maxRetries int, op func() error) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 50 * time.Millisecond
	eb.MaxInterval = time.Second
	eb.MaxElapsedTime = 0

	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(maxRetries)), ctx)

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if IsRetryable(err) {
			return err
		}
		return backoff.Permanent(err)
	}, b)
}
