package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eonite/portal-backend/pkg/db"
	"github.com/eonite/portal-backend/pkg/db/models"
)

const clientProductIdentityConstraint = "client_products_identity_key"

// ClientProductRepository finds or creates the sellable product a client orders against.
type ClientProductRepository interface {
	WithTx(tx *gorm.DB) ClientProductRepository
	Find(ctx context.Context, clientID, productID uuid.UUID, variantID *uuid.UUID) (*models.ClientProduct, error)
	FindOrCreate(ctx context.Context, clientID, productID uuid.UUID, variantID *uuid.UUID, displayName string) (*models.ClientProduct, error)
}

type clientProductRepository struct {
	db *gorm.DB
}

func NewClientProductRepository(db *gorm.DB) ClientProductRepository {
	return &clientProductRepository{db: db}
}

func (r *clientProductRepository) WithTx(tx *gorm.DB) ClientProductRepository {
	if tx == nil {
		return r
	}
	return &clientProductRepository{db: tx}
}

// Find returns the client product for the identity, or nil when none exists.
func (r *clientProductRepository) Find(ctx context.Context, clientID, productID uuid.UUID, variantID *uuid.UUID) (*models.ClientProduct, error) {
	query := r.db.WithContext(ctx).
		Where("client_id = ? AND product_id = ?", clientID, productID)
	if variantID == nil {
		query = query.Where("variant_id IS NULL")
	} else {
		query = query.Where("variant_id = ?", *variantID)
	}

	var row models.ClientProduct
	err := query.First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindOrCreate returns the existing client product for the identity or inserts
// one. A concurrent insert losing the unique race re-reads the winner's row.
func (r *clientProductRepository) FindOrCreate(ctx context.Context, clientID, productID uuid.UUID, variantID *uuid.UUID, displayName string) (*models.ClientProduct, error) {
	existing, err := r.Find(ctx, clientID, productID, variantID)
	if err != nil || existing != nil {
		return existing, err
	}

	row := models.ClientProduct{
		ID:          uuid.New(),
		ClientID:    clientID,
		ProductID:   productID,
		VariantID:   variantID,
		DisplayName: displayName,
		IsActive:    true,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if !db.IsUniqueViolation(err, clientProductIdentityConstraint) {
			return nil, err
		}
		winner, findErr := r.Find(ctx, clientID, productID, variantID)
		if findErr != nil {
			return nil, findErr
		}
		if winner == nil {
			return nil, err
		}
		return winner, nil
	}
	return &row, nil
}
