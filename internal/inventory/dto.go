package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/eonite/portal-backend/internal/stock"
	"github.com/eonite/portal-backend/pkg/enums"
)

// Record is an inventory row joined with its sellable product and classified.
type Record struct {
	ID                uuid.UUID        `json:"id"`
	ClientProductID   uuid.UUID        `json:"client_product_id"`
	ClientID          uuid.UUID        `json:"client_id"`
	DisplayName       string           `json:"display_name"`
	ProductName       string           `json:"product_name"`
	ProductSize       string           `json:"product_size"`
	Quantity          int              `json:"quantity"`
	AlertThreshold    int              `json:"alert_threshold"`
	CriticalThreshold int              `json:"critical_threshold"`
	Level             enums.StockLevel `json:"stock_level"`
	Notes             *string          `json:"notes,omitempty"`
	ClientStock       *int             `json:"client_stock,omitempty"`
	LastUpdated       time.Time        `json:"last_updated"`
}

// Summary is the inventory list plus its stock-level counts.
type Summary struct {
	Records []Record     `json:"records"`
	Counts  stock.Counts `json:"counts"`
	// LowStock counts records at or below their alert threshold, critical included.
	LowStock int `json:"low_stock"`
}

// Filter narrows inventory listings.
type Filter struct {
	ClientID *uuid.UUID
}

// UpdateInput is an operator edit of an inventory record.
type UpdateInput struct {
	Quantity          int     `json:"quantity" validate:"gte=0"`
	AlertThreshold    int     `json:"alert_threshold" validate:"gte=0"`
	CriticalThreshold int     `json:"critical_threshold" validate:"gte=0"`
	Notes             *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// CreateInput opens an inventory record for a client product.
type CreateInput struct {
	ClientProductID uuid.UUID `json:"client_product_id" validate:"required"`
	UpdateInput
}
