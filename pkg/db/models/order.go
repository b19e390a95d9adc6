package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eonite/portal-backend/pkg/enums"
)

// Order is the persisted header of a placed order. Only the status, progress
// and payment columns change after creation.
type Order struct {
	ID                  uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber         string              `gorm:"column:order_number;not null;uniqueIndex"`
	ClientID            uuid.UUID           `gorm:"column:client_id;type:uuid;not null"`
	Quantity            int                 `gorm:"column:quantity;not null"`
	Subtotal            decimal.Decimal     `gorm:"column:total_ht;type:numeric(12,2);not null"`
	Total               decimal.Decimal     `gorm:"column:total_ttc;type:numeric(12,2);not null"`
	TaxRate             decimal.Decimal     `gorm:"column:tva_rate;type:numeric(5,2);not null;default:20"`
	DiscountCode        *string             `gorm:"column:discount_code"`
	DiscountAmount      decimal.Decimal     `gorm:"column:discount_amount;type:numeric(12,2);not null;default:0"`
	Status              enums.OrderStatus   `gorm:"column:status;not null;default:'confirmed'"`
	PaymentStatus       enums.PaymentStatus `gorm:"column:payment_status;not null;default:'pending'"`
	ProductionProgress  int                 `gorm:"column:production_progress;not null;default:0"`
	EstimatedCompletion *time.Time          `gorm:"column:estimated_completion"`
	ActualCompletion    *time.Time          `gorm:"column:actual_completion"`
	Notes               *string             `gorm:"column:notes"`
	Items               []OrderItem         `gorm:"foreignKey:OrderID"`
	CreatedAt           time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
