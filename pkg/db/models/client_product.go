package models

import (
	"time"

	"github.com/google/uuid"
)

// ClientProduct is the client-specific sellable reference for a product and variant.
type ClientProduct struct {
	ID                   uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClientID             uuid.UUID  `gorm:"column:client_id;type:uuid;not null"`
	ProductID            uuid.UUID  `gorm:"column:product_id;type:uuid;not null"`
	VariantID            *uuid.UUID `gorm:"column:variant_id;type:uuid"`
	DisplayName          string     `gorm:"column:custom_name;not null"`
	IsActive             bool       `gorm:"column:is_active;not null;default:true"`
	TotalOrdered         int        `gorm:"column:total_ordered;not null;default:0"`
	LastOrderDate        *time.Time `gorm:"column:last_order_date"`
	ClientStock          *int       `gorm:"column:client_stock"`
	ClientStockUpdatedAt *time.Time `gorm:"column:client_stock_updated_at"`
	CreatedAt            time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
