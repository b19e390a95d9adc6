package dashboard

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/eonite/portal-backend/pkg/db/models"
	"github.com/eonite/portal-backend/pkg/enums"
)

// Repository reads the aggregate figures shown on the operator dashboard.
type Repository interface {
	CountClients(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context, statuses ...enums.OrderStatus) (int64, error)
	PaidRevenue(ctx context.Context) (decimal.Decimal, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CountClients counts distinct clients that own a sellable product or an order.
func (r *repository) CountClients(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM (
			SELECT client_id FROM orders
			UNION
			SELECT client_id FROM client_products
		) AS clients`).
		Scan(&count).Error
	return count, err
}

func (r *repository) CountOrders(ctx context.Context, statuses ...enums.OrderStatus) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Order{})
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Count(&count).Error
	return count, err
}

// PaidRevenue sums the tax-inclusive totals of paid orders.
func (r *repository) PaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	var totals []decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("payment_status = ?", enums.PaymentStatusPaid).
		Pluck("total_ttc", &totals).Error; err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, total := range totals {
		sum = sum.Add(total)
	}
	return sum, nil
}
