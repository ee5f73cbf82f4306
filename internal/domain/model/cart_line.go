package model

import "time"

// カートの明細
// (user_id, product_id)で一意。数量が0になる前に行ごと消す。
type CartLine struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_cart_lines_user_product" json:"user_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_cart_lines_user_product;index" json:"product_id"`
	Quantity  int64     `gorm:"not null;check:chk_cart_lines_quantity,quantity >= 1" json:"quantity"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"-"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
