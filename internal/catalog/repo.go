package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eonite/portal-backend/pkg/db/models"
)

// Repository reads catalog products, variants and promotions.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func preloadVariants(db *gorm.DB) *gorm.DB {
	return db.Order("is_default DESC").Order("created_at ASC")
}

// FindProduct loads a product with its variants. Returns nil when missing.
func (r *Repository) FindProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	var row models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants", preloadVariants).
		First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	product := productFromModel(row)
	return &product, nil
}

// ListActiveProducts returns active products ordered by category then name.
func (r *Repository) ListActiveProducts(ctx context.Context) ([]Product, error) {
	var rows []models.Product
	if err := r.db.WithContext(ctx).
		Preload("Variants", preloadVariants).
		Where("is_active = ?", true).
		Order("category ASC").
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, productFromModel(row))
	}
	return products, nil
}

// ActivePromotions returns the active promotion per product at now. When several
// overlap for one product, the most recently created wins.
func (r *Repository) ActivePromotions(ctx context.Context, now time.Time) (map[uuid.UUID]Promotion, error) {
	var rows []models.Promotion
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND valid_until >= ? AND product_id IS NOT NULL", true, now).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]Promotion, len(rows))
	for _, row := range rows {
		promo := promotionFromModel(row)
		if _, seen := out[promo.ProductID]; seen {
			continue
		}
		out[promo.ProductID] = promo
	}
	return out, nil
}

// ActivePromotion returns the active promotion for a single product, or nil.
func (r *Repository) ActivePromotion(ctx context.Context, productID uuid.UUID, now time.Time) (*Promotion, error) {
	var row models.Promotion
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND is_active = ? AND valid_until >= ?", productID, true, now).
		Order("created_at DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	promo := promotionFromModel(row)
	return &promo, nil
}
