package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 削除は論理削除。注文明細からは参照され続ける。
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Image       string          `gorm:"type:varchar(512)" json:"image"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null;check:chk_products_price,price > 0" json:"price"`
	Stock       int64           `gorm:"not null;default:0;check:chk_products_stock,stock >= 0" json:"stock"`
	CategoryID  *int64          `gorm:"index" json:"category_id"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}
