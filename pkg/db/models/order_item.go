package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem snapshots a cart line at order time.
type OrderItem struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID         uuid.UUID       `gorm:"column:order_id;type:uuid;not null"`
	ClientProductID uuid.UUID       `gorm:"column:client_product_id;type:uuid;not null"`
	Quantity        int             `gorm:"column:quantity;not null"`
	UnitPrice       decimal.Decimal `gorm:"column:unit_price;type:numeric(12,4);not null"`
	LineTotal       decimal.Decimal `gorm:"column:total_price;type:numeric(12,2);not null"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}
