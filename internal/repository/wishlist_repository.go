package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type WishlistRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.WishlistLine, error)
	// 既にあれば何もしない。作成したらtrue
	Add(ctx context.Context, userID int64, productID int64) (bool, error)
	// 消したらtrue
	Remove(ctx context.Context, userID int64, productID int64) (bool, error)
	DeleteByUserID(ctx context.Context, userID int64) error
	DeleteByProductID(ctx context.Context, productID int64) error
	DeleteAll(ctx context.Context) error
}
