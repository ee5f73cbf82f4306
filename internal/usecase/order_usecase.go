package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// checkout結果のラベル
const (
	CheckoutResultOK    = "ok"
	CheckoutResultEmpty = "empty"
	CheckoutResultError = "error"
)

type OrderUsecase struct {
	tx      repo.TransactionManager
	clock   Clock
	ids     IDGenerator
	log     Logger
	metrics CheckoutMetrics
}

func NewOrderUsecase(tx repo.TransactionManager, clock Clock, ids IDGenerator, log Logger, metrics CheckoutMetrics) *OrderUsecase {
	return &OrderUsecase{tx: tx, clock: clock, ids: ids, log: log, metrics: metrics}
}

type OrderItemOutput struct {
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type OrderOutput struct {
	ID         int64             `json:"id"`
	UserID     int64             `json:"user_id"`
	Status     string            `json:"status"`
	TotalPrice decimal.Decimal   `json:"total_price"`
	CreatedAt  time.Time         `json:"created_at"`
	Items      []OrderItemOutput `json:"items"`
}

// Changed=falseはPending以外だったので何もしていない
type CancelResult struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
	Changed bool   `json:"changed"`
}

// Checkout はカートを1つの注文に変える。
// 途中で失敗したら注文も明細もカート削除も残らない。
func (u *OrderUsecase) Checkout(ctx context.Context, uc UserContext) (OrderOutput, error) {
	if !uc.LoggedIn() {
		return OrderOutput{}, ErrUnauthorized
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カート明細をロック（同じユーザーの同時checkoutはここで直列）
		lines, err := r.Carts().LockByUserID(ctx, uc.UserID)
		if err != nil {
			return storageErr("lock cart lines", err)
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		productIDs := make([]int64, 0, len(lines))
		for _, l := range lines {
			productIDs = append(productIDs, l.ProductID)
		}
		products, err := r.Products().FindByIDs(ctx, productIDs)
		if err != nil {
			return storageErr("load products", err)
		}
		byID := make(map[int64]model.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		now := u.clock.Now()

		//価格はこの時点のスナップショット
		total := decimal.Zero
		items := make([]model.OrderItem, 0, len(lines))
		for _, l := range lines {
			p, ok := byID[l.ProductID]
			if !ok {
				return fmt.Errorf("%w: product %d", ErrNotFound, l.ProductID)
			}
			total = total.Add(p.Price.Mul(decimal.NewFromInt(l.Quantity)))
			items = append(items, model.OrderItem{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				Price:     p.Price,
				CreatedAt: now,
			})
		}

		order := model.Order{
			UserID:     uc.UserID,
			TotalPrice: total,
			Status:     model.OrderStatusPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return storageErr("create order", err)
		}
		order.ID = orderID
		for i := range items {
			items[i].OrderID = orderID
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return storageErr("create order items", err)
		}

		evt, err := newOrderEvent(u.ids.NewID(), TopicOrdersPlaced, order, items, now)
		if err != nil {
			return storageErr("encode order event", err)
		}
		if err := r.Outbox().Insert(ctx, evt); err != nil {
			return storageErr("insert outbox event", err)
		}

		//ロックした明細を全部消す（件数が合わなければrollback）
		lineIDs := make([]int64, 0, len(lines))
		for _, l := range lines {
			lineIDs = append(lineIDs, l.ID)
		}
		deleted, err := r.Carts().DeleteLines(ctx, lineIDs)
		if err != nil {
			return storageErr("delete cart lines", err)
		}
		if deleted != int64(len(lineIDs)) {
			return storageErr("delete cart lines", fmt.Errorf("deleted %d of %d lines", deleted, len(lineIDs)))
		}

		out = toOrderOutput(order, items)
		return nil
	})

	switch {
	case err == nil:
		u.metrics.ObserveCheckout(CheckoutResultOK)
		u.log.Infof("checkout ok order_id=%d user_id=%d total=%s items=%d", out.ID, uc.UserID, out.TotalPrice.StringFixed(2), len(out.Items))
		return out, nil
	case errors.Is(err, ErrEmptyCart):
		u.metrics.ObserveCheckout(CheckoutResultEmpty)
		u.log.Warnf("checkout with empty cart user_id=%d", uc.UserID)
		return OrderOutput{}, err
	default:
		u.metrics.ObserveCheckout(CheckoutResultError)
		u.log.Errorf("checkout failed user_id=%d: %v", uc.UserID, err)
		return OrderOutput{}, err
	}
}

// Cancel はPendingの注文だけCancelledにする。
// 他人の注文は存在しない扱い。
func (u *OrderUsecase) Cancel(ctx context.Context, uc UserContext, orderID int64) (CancelResult, error) {
	if !uc.LoggedIn() {
		return CancelResult{}, ErrUnauthorized
	}
	if orderID <= 0 {
		return CancelResult{}, ErrNotFound
	}

	var res CancelResult

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().LockByID(ctx, orderID)
		if err != nil {
			return notFoundOr("lock order", err)
		}
		if o.UserID != uc.UserID {
			return ErrNotFound
		}

		if o.Status != model.OrderStatusPending {
			res = CancelResult{OrderID: o.ID, Status: string(o.Status), Changed: false}
			return nil
		}

		now := u.clock.Now()
		before := o.Status

		if err := r.Orders().UpdateStatus(ctx, o.ID, model.OrderStatusCancelled); err != nil {
			return storageErr("update order status", err)
		}
		o.Status = model.OrderStatusCancelled
		o.UpdatedAt = now

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  uc.UserID,
			Action:       model.AuditActionCancelOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   o.ID,
			BeforeJSON:   statusJSON(before),
			AfterJSON:    statusJSON(o.Status),
			CreatedAt:    now,
		}); err != nil {
			return storageErr("create audit log", err)
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return storageErr("list order items", err)
		}
		evt, err := newOrderEvent(u.ids.NewID(), TopicOrdersCancelled, o, items, now)
		if err != nil {
			return storageErr("encode order event", err)
		}
		if err := r.Outbox().Insert(ctx, evt); err != nil {
			return storageErr("insert outbox event", err)
		}

		res = CancelResult{OrderID: o.ID, Status: string(o.Status), Changed: true}
		return nil
	})
	if err != nil {
		return CancelResult{}, err
	}

	if !res.Changed {
		u.log.Warnf("cancel skipped order_id=%d status=%s", res.OrderID, res.Status)
	} else {
		u.log.Infof("order cancelled order_id=%d user_id=%d", res.OrderID, uc.UserID)
	}
	return res, nil
}

// 新しい順
func (u *OrderUsecase) ListMine(ctx context.Context, uc UserContext) ([]OrderOutput, error) {
	if !uc.LoggedIn() {
		return []OrderOutput{}, ErrUnauthorized
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, uc.UserID)
		if err != nil {
			return storageErr("list orders", err)
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return storageErr("list order items", err)
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})
	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  it.Price.Mul(decimal.NewFromInt(it.Quantity)),
		})
	}

	return OrderOutput{
		ID:         o.ID,
		UserID:     o.UserID,
		Status:     string(o.Status),
		TotalPrice: o.TotalPrice,
		CreatedAt:  o.CreatedAt,
		Items:      outItems,
	}
}
