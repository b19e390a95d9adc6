package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eonite/portal-backend/pkg/db/models"
	"github.com/eonite/portal-backend/pkg/enums"
)

// ListFilters narrow order listings. Nil fields are ignored.
type ListFilters struct {
	ClientID      *uuid.UUID
	Status        *enums.OrderStatus
	PaymentStatus *enums.PaymentStatus
}

// OrderSummary is one row of an order listing.
type OrderSummary struct {
	ID                 uuid.UUID           `json:"id"`
	OrderNumber        string              `json:"order_number"`
	ClientID           uuid.UUID           `json:"client_id"`
	CreatedAt          time.Time           `json:"created_at"`
	Quantity           int                 `json:"quantity"`
	Subtotal           decimal.Decimal     `json:"total_excl_tax"`
	DiscountCode       *string             `json:"discount_code,omitempty"`
	DiscountAmount     decimal.Decimal     `json:"discount_amount"`
	Total              decimal.Decimal     `json:"total_incl_tax"`
	Status             enums.OrderStatus   `json:"status"`
	PaymentStatus      enums.PaymentStatus `json:"payment_status"`
	ProductionProgress int                 `json:"production_progress"`
}

// OrderList wraps a page of orders plus the cursor of the next page.
type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// OrderItemDetail is a persisted line item with its sellable product label.
type OrderItemDetail struct {
	ID              uuid.UUID       `json:"id"`
	ClientProductID uuid.UUID       `json:"client_product_id"`
	DisplayName     string          `json:"display_name"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// OrderDetail is the full view of one order.
type OrderDetail struct {
	OrderSummary
	Notes               *string           `json:"notes,omitempty"`
	EstimatedCompletion *time.Time        `json:"estimated_completion,omitempty"`
	ActualCompletion    *time.Time        `json:"actual_completion,omitempty"`
	UpdatedAt           time.Time         `json:"updated_at"`
	Items               []OrderItemDetail `json:"items"`
}

func summaryFromModel(o models.Order) OrderSummary {
	return OrderSummary{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		ClientID:           o.ClientID,
		CreatedAt:          o.CreatedAt,
		Quantity:           o.Quantity,
		Subtotal:           o.Subtotal,
		DiscountCode:       o.DiscountCode,
		DiscountAmount:     o.DiscountAmount,
		Total:              o.Total,
		Status:             o.Status,
		PaymentStatus:      o.PaymentStatus,
		ProductionProgress: o.ProductionProgress,
	}
}

func detailFromModel(o models.Order, names map[uuid.UUID]string) *OrderDetail {
	detail := &OrderDetail{
		OrderSummary:        summaryFromModel(o),
		Notes:               o.Notes,
		EstimatedCompletion: o.EstimatedCompletion,
		ActualCompletion:    o.ActualCompletion,
		UpdatedAt:           o.UpdatedAt,
		Items:               make([]OrderItemDetail, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		detail.Items = append(detail.Items, OrderItemDetail{
			ID:              item.ID,
			ClientProductID: item.ClientProductID,
			DisplayName:     names[item.ClientProductID],
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			LineTotal:       item.LineTotal,
		})
	}
	return detail
}
