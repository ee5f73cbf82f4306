package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CartRepository interface {
	// 商品をPreloadして返す（表示用）
	ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error)

	// SELECT ... FOR UPDATE（チェックアウト用）
	LockByUserID(ctx context.Context, userID int64) ([]model.CartLine, error)
	LockLine(ctx context.Context, userID int64, productID int64) (model.CartLine, error)

	// 無ければ数量1で作成、あれば+1（1文のupsert）
	Increment(ctx context.Context, userID int64, productID int64) error
	UpdateQuantity(ctx context.Context, lineID int64, qty int64) error

	DeleteLine(ctx context.Context, lineID int64) error
	// 削除件数を返す
	DeleteLines(ctx context.Context, lineIDs []int64) (int64, error)
	DeleteByUserID(ctx context.Context, userID int64) error
	DeleteByProductID(ctx context.Context, productID int64) error
	DeleteAll(ctx context.Context) error
}
