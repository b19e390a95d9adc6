package discounts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eonite/portal-backend/pkg/db/models"
)

// OfferRepository is the persistence surface used by the offer admin service.
type OfferRepository interface {
	WithTx(tx *gorm.DB) OfferRepository
	FindActiveByCode(ctx context.Context, code string) (*Offer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Offer, error)
	List(ctx context.Context) ([]Offer, error)
	Create(ctx context.Context, offer *models.Offer, productIDs []uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// Repository persists offers and their product scope.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) OfferRepository {
	return &Repository{db: tx}
}

// FindActiveByCode implements OfferLookup.
func (r *Repository) FindActiveByCode(ctx context.Context, code string) (*Offer, error) {
	var row models.Offer
	err := r.db.WithContext(ctx).
		Preload("Products").
		Where("code = ? AND is_active = ?", code, true).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	offer := offerFromModel(row)
	return &offer, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*Offer, error) {
	var row models.Offer
	err := r.db.WithContext(ctx).Preload("Products").First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	offer := offerFromModel(row)
	return &offer, nil
}

func (r *Repository) List(ctx context.Context) ([]Offer, error) {
	var rows []models.Offer
	if err := r.db.WithContext(ctx).
		Preload("Products").
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	offers := make([]Offer, 0, len(rows))
	for _, row := range rows {
		offers = append(offers, offerFromModel(row))
	}
	return offers, nil
}

// Create inserts the offer and its product links.
func (r *Repository) Create(ctx context.Context, offer *models.Offer, productIDs []uuid.UUID) error {
	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}
	db := r.db.WithContext(ctx)
	if err := db.Omit("Products").Create(offer).Error; err != nil {
		return err
	}
	if !offer.IsActive {
		if err := db.Model(offer).Update("is_active", false).Error; err != nil {
			return err
		}
	}
	if len(productIDs) == 0 {
		return nil
	}
	links := make([]models.OfferProduct, 0, len(productIDs))
	for _, id := range productIDs {
		links = append(links, models.OfferProduct{OfferID: offer.ID, ProductID: id})
	}
	return db.Create(&links).Error
}

// SetActive flips the activity flag. It reports false when the offer does not exist.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Offer{}).Where("id = ?", id).Update("is_active", active)
	return res.RowsAffected > 0, res.Error
}

// Delete removes the offer and its links. It reports false when nothing was deleted.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	db := r.db.WithContext(ctx)
	if err := db.Where("offer_id = ?", id).Delete(&models.OfferProduct{}).Error; err != nil {
		return false, err
	}
	res := db.Where("id = ?", id).Delete(&models.Offer{})
	return res.RowsAffected > 0, res.Error
}

func offerFromModel(row models.Offer) Offer {
	offer := Offer{
		ID:              row.ID,
		Title:           row.Title,
		DiscountPercent: row.DiscountPercent,
		IsActive:        row.IsActive,
		ProductIDs:      row.ProductIDs(),
	}
	if row.Code != nil {
		offer.Code = *row.Code
	}
	return offer
}
