package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eonite/portal-backend/pkg/enums"
)

// Product is a catalog entry sold by the vendor. Products are deactivated, never deleted.
type Product struct {
	ID               uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name             string                `gorm:"column:name;not null"`
	Size             string                `gorm:"column:size;not null;default:''"`
	Category         enums.ProductCategory `gorm:"column:category;not null;default:'standard'"`
	Description      *string               `gorm:"column:description"`
	ImageURL         *string               `gorm:"column:image_url"`
	BasePrice        decimal.Decimal       `gorm:"column:base_price;type:numeric(12,4);not null"`
	MinOrderQuantity int                   `gorm:"column:min_order_quantity;not null;default:1"`
	IsActive         bool                  `gorm:"column:is_active;not null;default:true"`
	Variants         []ProductVariant      `gorm:"foreignKey:ProductID"`
	CreatedAt        time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
