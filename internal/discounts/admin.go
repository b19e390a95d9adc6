package discounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/eonite/portal-backend/pkg/db"
	"github.com/eonite/portal-backend/pkg/db/models"
	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CreateOfferInput carries an operator's new offer.
type CreateOfferInput struct {
	Title           string
	Description     *string
	Code            *string
	DiscountPercent decimal.Decimal
	IsActive        bool
	ProductIDs      []uuid.UUID
}

// AdminService manages offers on behalf of operators.
type AdminService interface {
	List(ctx context.Context) ([]Offer, error)
	Create(ctx context.Context, input CreateOfferInput) (*Offer, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type adminService struct {
	repo OfferRepository
	tx   txRunner
}

func NewAdminService(repo OfferRepository, tx txRunner) (AdminService, error) {
	if repo == nil {
		return nil, fmt.Errorf("offer repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &adminService{repo: repo, tx: tx}, nil
}

func (s *adminService) List(ctx context.Context) ([]Offer, error) {
	offers, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list offers")
	}
	return offers, nil
}

func (s *adminService) Create(ctx context.Context, input CreateOfferInput) (*Offer, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.DiscountPercent.IsNegative() || input.DiscountPercent.GreaterThan(hundred) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount percent must be between 0 and 100")
	}

	row := &models.Offer{
		ID:              uuid.New(),
		Title:           title,
		Description:     input.Description,
		DiscountPercent: input.DiscountPercent,
		IsActive:        input.IsActive,
	}
	if input.Code != nil {
		if code := NormalizeCode(*input.Code); code != "" {
			row.Code = &code
		}
	}
	productIDs := dedupeIDs(input.ProductIDs)

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, row, productIDs)
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "offer code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create offer")
	}

	offer, err := s.repo.FindByID(ctx, row.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload offer")
	}
	if offer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "offer missing after create")
	}
	return offer, nil
}

func (s *adminService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	found, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update offer")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
	}
	return nil
}

func (s *adminService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete offer")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
	}
	return nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
