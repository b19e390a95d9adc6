package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Promotion is a time-bounded percentage reduction on a single product.
type Promotion struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID       *uuid.UUID      `gorm:"column:product_id;type:uuid"`
	Title           string          `gorm:"column:title;not null;default:''"`
	DiscountPercent decimal.Decimal `gorm:"column:discount_percent;type:numeric(5,2);not null"`
	ValidUntil      time.Time       `gorm:"column:valid_until;not null"`
	IsActive        bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}
