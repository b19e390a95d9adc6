package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eonite/portal-backend/pkg/db/models"
	"github.com/eonite/portal-backend/pkg/enums"
)

// Product is the typed catalog entry the pricing and cart code operate on.
type Product struct {
	ID               uuid.UUID             `json:"id"`
	Name             string                `json:"name"`
	Size             string                `json:"size"`
	Category         enums.ProductCategory `json:"category"`
	Description      *string               `json:"description,omitempty"`
	ImageURL         *string               `json:"image_url,omitempty"`
	BasePrice        decimal.Decimal       `json:"base_price"`
	MinOrderQuantity int                   `json:"min_order_quantity"`
	IsActive         bool                  `json:"is_active"`
	Variants         []Variant             `json:"variants"`
}

// Variant is a sized configuration of a product.
type Variant struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        uuid.UUID       `json:"product_id"`
	Size             string          `json:"size"`
	Price            decimal.Decimal `json:"price"`
	MinOrderQuantity int             `json:"min_order_quantity"`
	IsDefault        bool            `json:"is_default"`
}

// Promotion is an active percentage reduction on one product.
type Promotion struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	Title           string          `json:"title"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	ValidUntil      time.Time       `json:"valid_until"`
}

// HasVariants reports whether price and MOQ must come from a variant.
func (p Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// Variant returns the variant with the given id.
func (p Product) Variant(id uuid.UUID) (*Variant, bool) {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i], true
		}
	}
	return nil, false
}

// DefaultVariant returns the variant flagged as default, else the first one.
func (p Product) DefaultVariant() *Variant {
	if len(p.Variants) == 0 {
		return nil
	}
	for i := range p.Variants {
		if p.Variants[i].IsDefault {
			return &p.Variants[i]
		}
	}
	return &p.Variants[0]
}

// DisplaySize is the size label shown for the product, or the variant when selected.
func (p Product) DisplaySize(variant *Variant) string {
	if variant != nil {
		return variant.Size
	}
	return p.Size
}

func productFromModel(m models.Product) Product {
	product := Product{
		ID:               m.ID,
		Name:             m.Name,
		Size:             m.Size,
		Category:         m.Category,
		Description:      m.Description,
		ImageURL:         m.ImageURL,
		BasePrice:        m.BasePrice,
		MinOrderQuantity: m.MinOrderQuantity,
		IsActive:         m.IsActive,
		Variants:         make([]Variant, 0, len(m.Variants)),
	}
	for _, v := range m.Variants {
		product.Variants = append(product.Variants, Variant{
			ID:               v.ID,
			ProductID:        v.ProductID,
			Size:             v.Size,
			Price:            v.Price,
			MinOrderQuantity: v.MinOrderQuantity,
			IsDefault:        v.IsDefault,
		})
	}
	return product
}

func promotionFromModel(m models.Promotion) Promotion {
	promo := Promotion{
		ID:              m.ID,
		Title:           m.Title,
		DiscountPercent: m.DiscountPercent,
		ValidUntil:      m.ValidUntil,
	}
	if m.ProductID != nil {
		promo.ProductID = *m.ProductID
	}
	return promo
}
