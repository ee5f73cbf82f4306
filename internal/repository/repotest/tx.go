package repotest

import (
	"context"

	repo "storefront/internal/repository"
)

// Reposは全モックをまとめたTxRepos
type Repos struct {
	UserRepo      *UserRepo
	AddressRepo   *AddressRepo
	CategoryRepo  *CategoryRepo
	ProductRepo   *ProductRepo
	CartRepo      *CartRepo
	WishlistRepo  *WishlistRepo
	OrderRepo     *OrderRepo
	OrderItemRepo *OrderItemRepo
	AuditLogRepo  *AuditLogRepo
	OutboxRepo    *OutboxRepo
}

func NewRepos() *Repos {
	return &Repos{
		UserRepo:      new(UserRepo),
		AddressRepo:   new(AddressRepo),
		CategoryRepo:  new(CategoryRepo),
		ProductRepo:   new(ProductRepo),
		CartRepo:      new(CartRepo),
		WishlistRepo:  new(WishlistRepo),
		OrderRepo:     new(OrderRepo),
		OrderItemRepo: new(OrderItemRepo),
		AuditLogRepo:  new(AuditLogRepo),
		OutboxRepo:    new(OutboxRepo),
	}
}

func (r *Repos) Users() repo.UserRepository           { return r.UserRepo }
func (r *Repos) Addresses() repo.AddressRepository    { return r.AddressRepo }
func (r *Repos) Categories() repo.CategoryRepository  { return r.CategoryRepo }
func (r *Repos) Products() repo.ProductRepository     { return r.ProductRepo }
func (r *Repos) Carts() repo.CartRepository           { return r.CartRepo }
func (r *Repos) Wishlists() repo.WishlistRepository   { return r.WishlistRepo }
func (r *Repos) Orders() repo.OrderRepository         { return r.OrderRepo }
func (r *Repos) OrderItems() repo.OrderItemRepository { return r.OrderItemRepo }
func (r *Repos) AuditLogs() repo.AuditLogRepository   { return r.AuditLogRepo }
func (r *Repos) Outbox() repo.OutboxRepository        { return r.OutboxRepo }

// TxManagerはDBを持たず、fnをそのまま呼ぶ。
// Callsで呼ばれた回数を見る。
type TxManager struct {
	Repos *Repos
	Calls int
}

func NewTxManager(r *Repos) *TxManager {
	return &TxManager{Repos: r}
}

func (tm *TxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	tm.Calls++
	return fn(tm.Repos)
}

var (
	_ repo.TxRepos            = (*Repos)(nil)
	_ repo.TransactionManager = (*TxManager)(nil)
)
