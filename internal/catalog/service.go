package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
)

type reader interface {
	FindProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	ListActiveProducts(ctx context.Context) ([]Product, error)
	ActivePromotions(ctx context.Context, now time.Time) (map[uuid.UUID]Promotion, error)
	ActivePromotion(ctx context.Context, productID uuid.UUID, now time.Time) (*Promotion, error)
}

// Quote is a priced product selection, ready to become a cart line.
type Quote struct {
	Product          Product         `json:"product"`
	Variant          *Variant        `json:"variant,omitempty"`
	Promotion        *Promotion      `json:"promotion,omitempty"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	MinOrderQuantity int             `json:"min_order_quantity"`
}

// DisplayName is the label used for the client's sellable product.
func (q Quote) DisplayName() string {
	size := q.Product.DisplaySize(q.Variant)
	if size == "" {
		return q.Product.Name
	}
	return fmt.Sprintf("%s (%s)", q.Product.Name, size)
}

// VariantID returns the selected variant id, if any.
func (q Quote) VariantID() *uuid.UUID {
	if q.Variant == nil {
		return nil
	}
	id := q.Variant.ID
	return &id
}

// Entry is one catalog product with prices resolved for display.
type Entry struct {
	Product
	Promotion     *Promotion        `json:"promotion,omitempty"`
	UnitPrice     decimal.Decimal   `json:"unit_price"`
	VariantPrices []VariantPriceRow `json:"variant_prices,omitempty"`
}

// VariantPriceRow is the resolved price of one variant.
type VariantPriceRow struct {
	VariantID        uuid.UUID       `json:"variant_id"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	MinOrderQuantity int             `json:"min_order_quantity"`
}

type Service interface {
	List(ctx context.Context) ([]Entry, error)
	Quote(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (*Quote, error)
}

type service struct {
	repo reader
	now  func() time.Time
}

func NewService(repo reader, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, now: now}, nil
}

func (s *service) List(ctx context.Context) ([]Entry, error) {
	products, err := s.repo.ListActiveProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list catalog products")
	}
	promos, err := s.repo.ActivePromotions(ctx, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active promotions")
	}

	entries := make([]Entry, 0, len(products))
	for _, product := range products {
		entry := Entry{Product: product}
		if promo, ok := promos[product.ID]; ok {
			p := promo
			entry.Promotion = &p
		}
		entry.UnitPrice = ResolvePrice(product, product.DefaultVariant(), entry.Promotion)
		for i := range product.Variants {
			variant := &product.Variants[i]
			entry.VariantPrices = append(entry.VariantPrices, VariantPriceRow{
				VariantID:        variant.ID,
				UnitPrice:        ResolvePrice(product, variant, entry.Promotion),
				MinOrderQuantity: EffectiveMinimumOrderQuantity(product, variant),
			})
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Quote resolves the variant, promotion and unit price for a selection. A
// product with variants always prices from one: the requested variant, else
// its default.
func (s *service) Quote(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (*Quote, error) {
	product, err := s.repo.FindProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product == nil || !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	var variant *Variant
	switch {
	case variantID != nil:
		v, ok := product.Variant(*variantID)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant does not belong to product").
				WithDetails(map[string]any{"variant_id": variantID.String()})
		}
		variant = v
	case product.HasVariants():
		variant = product.DefaultVariant()
	}

	promo, err := s.repo.ActivePromotion(ctx, product.ID, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active promotion")
	}

	return &Quote{
		Product:          *product,
		Variant:          variant,
		Promotion:        promo,
		UnitPrice:        ResolvePrice(*product, variant, promo),
		MinOrderQuantity: EffectiveMinimumOrderQuantity(*product, variant),
	}, nil
}
