package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductVariant is a sized configuration of a product with its own price and MOQ.
type ProductVariant struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID        uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Size             string          `gorm:"column:size;not null"`
	Price            decimal.Decimal `gorm:"column:price;type:numeric(12,4);not null"`
	MinOrderQuantity int             `gorm:"column:min_order_quantity;not null;default:1"`
	IsDefault        bool            `gorm:"column:is_default;not null;default:false"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
}
