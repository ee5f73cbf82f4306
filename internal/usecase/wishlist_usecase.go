package usecase

import (
	"context"

	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

type WishlistUsecase struct {
	tx repo.TransactionManager
}

func NewWishlistUsecase(tx repo.TransactionManager) *WishlistUsecase {
	return &WishlistUsecase{tx: tx}
}

type WishlistItemOutput struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
}

func (u *WishlistUsecase) View(ctx context.Context, uc UserContext) ([]WishlistItemOutput, error) {
	if !uc.LoggedIn() {
		return []WishlistItemOutput{}, ErrUnauthorized
	}

	out := []WishlistItemOutput{}
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		lines, err := r.Wishlists().ListByUserID(ctx, uc.UserID)
		if err != nil {
			return storageErr("list wishlist", err)
		}
		for _, l := range lines {
			if l.Product.ID == 0 {
				continue
			}
			out = append(out, WishlistItemOutput{
				ProductID: l.ProductID,
				Name:      l.Product.Name,
				Image:     l.Product.Image,
				Price:     l.Product.Price,
			})
		}
		return nil
	})
	if err != nil {
		return []WishlistItemOutput{}, err
	}
	return out, nil
}

// 既にあれば何もしない（false）
func (u *WishlistUsecase) Add(ctx context.Context, uc UserContext, productID int64) (bool, error) {
	if !uc.LoggedIn() {
		return false, ErrUnauthorized
	}
	if productID <= 0 {
		return false, ErrNotFound
	}

	created := false
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, productID); err != nil {
			return notFoundOr("find product", err)
		}
		ok, err := r.Wishlists().Add(ctx, uc.UserID, productID)
		if err != nil {
			return storageErr("add wishlist line", err)
		}
		created = ok
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func (u *WishlistUsecase) Remove(ctx context.Context, uc UserContext, productID int64) (bool, error) {
	if !uc.LoggedIn() {
		return false, ErrUnauthorized
	}

	removed := false
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ok, err := r.Wishlists().Remove(ctx, uc.UserID, productID)
		if err != nil {
			return storageErr("remove wishlist line", err)
		}
		removed = ok
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}
