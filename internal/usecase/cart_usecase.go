package usecase

import (
	"context"
	"errors"

	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
type CartUsecase struct {
	tx  repo.TransactionManager
	log Logger
}

func NewCartUsecase(tx repo.TransactionManager, log Logger) *CartUsecase {
	return &CartUsecase{tx: tx, log: log}
}

type CartLineOutput struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CartOutput struct {
	Lines []CartLineOutput `json:"lines"`
	Total decimal.Decimal  `json:"total"`
}

// 表示は現在価格で計算する
func (u *CartUsecase) View(ctx context.Context, uc UserContext) (CartOutput, error) {
	if !uc.LoggedIn() {
		return CartOutput{}, ErrUnauthorized
	}

	out := CartOutput{Lines: []CartLineOutput{}, Total: decimal.Zero}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		lines, err := r.Carts().ListByUserID(ctx, uc.UserID)
		if err != nil {
			return storageErr("list cart lines", err)
		}
		for _, l := range lines {
			//論理削除された商品はPreloadされない
			if l.Product.ID == 0 {
				continue
			}
			sub := l.Product.Price.Mul(decimal.NewFromInt(l.Quantity))
			out.Lines = append(out.Lines, CartLineOutput{
				ProductID: l.ProductID,
				Name:      l.Product.Name,
				Image:     l.Product.Image,
				Price:     l.Product.Price,
				Quantity:  l.Quantity,
				Subtotal:  sub,
			})
			out.Total = out.Total.Add(sub)
		}
		return nil
	})
	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

// 同じ商品なら数量+1（upsert 1文）
func (u *CartUsecase) Add(ctx context.Context, uc UserContext, productID int64) error {
	if !uc.LoggedIn() {
		return ErrUnauthorized
	}
	if productID <= 0 {
		return ErrNotFound
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, productID); err != nil {
			return notFoundOr("find product", err)
		}
		if err := r.Carts().Increment(ctx, uc.UserID, productID); err != nil {
			return storageErr("increment cart line", err)
		}
		return nil
	})
}

// 数量1なら行ごと削除。明細が無ければ何もしない（false）
func (u *CartUsecase) Remove(ctx context.Context, uc UserContext, productID int64) (bool, error) {
	if !uc.LoggedIn() {
		return false, ErrUnauthorized
	}

	changed := false

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		changed = false

		line, err := r.Carts().LockLine(ctx, uc.UserID, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		if err != nil {
			return storageErr("lock cart line", err)
		}

		if line.Quantity > 1 {
			if err := r.Carts().UpdateQuantity(ctx, line.ID, line.Quantity-1); err != nil {
				return storageErr("decrement cart line", err)
			}
		} else {
			if err := r.Carts().DeleteLine(ctx, line.ID); err != nil {
				return storageErr("delete cart line", err)
			}
		}
		changed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}
