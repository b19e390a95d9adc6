package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Offer is a promotional code. An offer without linked products applies to the whole cart.
type Offer struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code            *string         `gorm:"column:code;uniqueIndex"`
	Title           string          `gorm:"column:title;not null"`
	Description     *string         `gorm:"column:description"`
	DiscountPercent decimal.Decimal `gorm:"column:discount_percent;type:numeric(5,2);not null;default:0"`
	IsActive        bool            `gorm:"column:is_active;not null;default:true"`
	Products        []OfferProduct  `gorm:"foreignKey:OfferID"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// OfferProduct links an offer to a catalog product it is scoped to.
type OfferProduct struct {
	OfferID   uuid.UUID `gorm:"column:offer_id;type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
}

// ProductIDs returns the scoped product set; empty means a global offer.
func (o Offer) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(o.Products))
	for _, link := range o.Products {
		ids = append(ids, link.ProductID)
	}
	return ids
}
