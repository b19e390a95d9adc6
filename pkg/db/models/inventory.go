package models

import (
	"time"

	"github.com/google/uuid"
)

// Inventory tracks stock held for a client product and its warning thresholds.
type Inventory struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClientProductID   uuid.UUID `gorm:"column:client_product_id;type:uuid;not null;uniqueIndex"`
	Quantity          int       `gorm:"column:quantity;not null;default:0"`
	AlertThreshold    int       `gorm:"column:alert_threshold;not null;default:0"`
	CriticalThreshold int       `gorm:"column:critical_threshold;not null;default:0"`
	Notes             *string   `gorm:"column:notes"`
	LastUpdated       time.Time `gorm:"column:last_updated;not null"`
}

func (Inventory) TableName() string {
	return "inventory"
}
