package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eonite/portal-backend/pkg/db/models"
)

// Repository defines persistence operations for inventory records and the
// client-declared stock on client products.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Record, error)
	Find(ctx context.Context, id uuid.UUID) (*Record, error)
	FindClientProduct(ctx context.Context, id uuid.UUID) (*models.ClientProduct, error)
	Create(ctx context.Context, record *models.Inventory) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error)
	UpdateClientStock(ctx context.Context, clientProductID uuid.UUID, quantity int, at time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("inventory AS i").
		Select(`i.id, i.client_product_id, cp.client_id, cp.custom_name AS display_name,
			COALESCE(p.name, '') AS product_name, COALESCE(p.size, '') AS product_size,
			i.quantity, i.alert_threshold, i.critical_threshold, i.notes,
			cp.client_stock, i.last_updated`).
		Joins("JOIN client_products AS cp ON cp.id = i.client_product_id").
		Joins("LEFT JOIN products AS p ON p.id = cp.product_id")
}

// List returns records ordered by ascending quantity, the most depleted first.
func (r *repository) List(ctx context.Context, filter Filter) ([]Record, error) {
	query := r.joined(ctx)
	if filter.ClientID != nil {
		query = query.Where("cp.client_id = ?", *filter.ClientID)
	}
	var rows []Record
	if err := query.Order("i.quantity ASC").Order("i.id ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*Record, error) {
	var rows []Record
	if err := r.joined(ctx).Where("i.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *repository) FindClientProduct(ctx context.Context, id uuid.UUID) (*models.ClientProduct, error) {
	var cp models.ClientProduct
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *repository) Create(ctx context.Context, record *models.Inventory) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Inventory{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) UpdateClientStock(ctx context.Context, clientProductID uuid.UUID, quantity int, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ClientProduct{}).
		Where("id = ?", clientProductID).
		Updates(map[string]any{
			"client_stock":            quantity,
			"client_stock_updated_at": at,
			"updated_at":              at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
