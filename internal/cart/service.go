package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eonite/portal-backend/internal/catalog"
	"github.com/eonite/portal-backend/internal/discounts"
	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
	"github.com/eonite/portal-backend/pkg/logger"
)

const (
	NoticeDiscountRemoved      = "discount_removed"
	NoticeQuantityBelowMinimum = "quantity_below_minimum"
)

type quoter interface {
	Quote(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (*catalog.Quote, error)
}

type codeValidator interface {
	Validate(ctx context.Context, code string, cart discounts.Cart) (*discounts.Applied, error)
}

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// AddItemInput selects a catalog product. A zero Quantity means the minimum
// order quantity.
type AddItemInput struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  int        `json:"quantity" validate:"gte=0"`
}

// View is the cart as returned to clients.
type View struct {
	Lines    []Line             `json:"lines"`
	Discount *discounts.Applied `json:"discount,omitempty"`
	Totals   Totals             `json:"totals"`
	Notices  []string           `json:"notices,omitempty"`
}

func newView(session *Session, notices ...string) *View {
	lines := session.Ledger.Lines
	if lines == nil {
		lines = []Line{}
	}
	return &View{
		Lines:    lines,
		Discount: session.Discount,
		Totals:   ComputeTotals(session.Ledger, session.Discount),
		Notices:  notices,
	}
}

type Service interface {
	Get(ctx context.Context, clientID uuid.UUID) (*View, error)
	AddItem(ctx context.Context, clientID uuid.UUID, input AddItemInput) (*View, error)
	RemoveItem(ctx context.Context, clientID uuid.UUID, index int) (*View, error)
	SetQuantity(ctx context.Context, clientID uuid.UUID, index, quantity int) (*View, error)
	ApplyDiscount(ctx context.Context, clientID uuid.UUID, code string) (*View, error)
	RemoveDiscount(ctx context.Context, clientID uuid.UUID) (*View, error)
	Clear(ctx context.Context, clientID uuid.UUID) error
	Session(ctx context.Context, clientID uuid.UUID) (*Session, error)
}

// DiscountLimit bounds how many codes a client may try per window.
type DiscountLimit struct {
	Attempts int64
	Window   time.Duration
}

type ServiceParams struct {
	Catalog        quoter
	ClientProducts ClientProductRepository
	Sessions       SessionStore
	Discounts      codeValidator
	Limiter        rateLimiter
	DiscountLimit  DiscountLimit
	Logger         *logger.Logger
	Now            func() time.Time
}

type service struct {
	catalog        quoter
	clientProducts ClientProductRepository
	sessions       SessionStore
	discounts      codeValidator
	limiter        rateLimiter
	limit          DiscountLimit
	logg           *logger.Logger
	now            func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if params.ClientProducts == nil {
		return nil, fmt.Errorf("client product repository required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("cart session store required")
	}
	if params.Discounts == nil {
		return nil, fmt.Errorf("discount engine required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		catalog:        params.Catalog,
		clientProducts: params.ClientProducts,
		sessions:       params.Sessions,
		discounts:      params.Discounts,
		limiter:        params.Limiter,
		limit:          params.DiscountLimit,
		logg:           logg,
		now:            now,
	}, nil
}

func (s *service) Session(ctx context.Context, clientID uuid.UUID) (*Session, error) {
	session, err := s.sessions.Load(ctx, clientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return session, nil
}

func (s *service) Get(ctx context.Context, clientID uuid.UUID) (*View, error) {
	session, err := s.Session(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return newView(session), nil
}

func (s *service) AddItem(ctx context.Context, clientID uuid.UUID, input AddItemInput) (*View, error) {
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}
	quote, err := s.catalog.Quote(ctx, input.ProductID, input.VariantID)
	if err != nil {
		return nil, err
	}
	quantity := input.Quantity
	if quantity == 0 {
		quantity = quote.MinOrderQuantity
	}

	session, err := s.Session(ctx, clientID)
	if err != nil {
		return nil, err
	}

	sellable, err := s.clientProducts.FindOrCreate(ctx, clientID, quote.Product.ID, quote.VariantID(), quote.DisplayName())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "provision client product")
	}

	line := Line{
		ClientProductID:  sellable.ID,
		ProductID:        quote.Product.ID,
		VariantID:        quote.VariantID(),
		DisplayName:      sellable.DisplayName,
		Quantity:         quantity,
		MinOrderQuantity: quote.MinOrderQuantity,
		UnitPrice:        quote.UnitPrice,
	}
	if err := session.Ledger.Add(line); err != nil {
		return nil, err
	}
	return s.commit(ctx, session)
}

func (s *service) RemoveItem(ctx context.Context, clientID uuid.UUID, index int) (*View, error) {
	session, err := s.Session(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if err := session.Ledger.Remove(index); err != nil {
		return nil, err
	}
	return s.commit(ctx, session)
}

// SetQuantity ignores quantities below the line minimum and reports it as a
// notice rather than an error.
func (s *service) SetQuantity(ctx context.Context, clientID uuid.UUID, index, quantity int) (*View, error) {
	session, err := s.Session(ctx, clientID)
	if err != nil {
		return nil, err
	}
	changed, err := session.Ledger.SetQuantity(index, quantity)
	if err != nil {
		return nil, err
	}
	if !changed {
		if quantity < session.Ledger.Lines[index].MinOrderQuantity {
			return newView(session, NoticeQuantityBelowMinimum), nil
		}
		return newView(session), nil
	}
	return s.commit(ctx, session)
}

func (s *service) ApplyDiscount(ctx context.Context, clientID uuid.UUID, code string) (*View, error) {
	if err := s.allowDiscountAttempt(ctx, clientID); err != nil {
		return nil, err
	}
	session, err := s.Session(ctx, clientID)
	if err != nil {
		return nil, err
	}
	applied, err := s.discounts.Validate(ctx, code, session.Ledger)
	if err != nil {
		return nil, err
	}
	session.Discount = applied
	return s.commit(ctx, session)
}

func (s *service) RemoveDiscount(ctx context.Context, clientID uuid.UUID) (*View, error) {
	session, err := s.Session(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if session.Discount == nil {
		return newView(session), nil
	}
	session.Discount = nil
	return s.commit(ctx, session)
}

func (s *service) Clear(ctx context.Context, clientID uuid.UUID) error {
	if err := s.sessions.Delete(ctx, clientID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

// commit refreshes the applied discount against the mutated ledger and saves.
func (s *service) commit(ctx context.Context, session *Session) (*View, error) {
	removed, err := session.refreshDiscount()
	if err != nil {
		return nil, err
	}
	session.UpdatedAt = s.now().UTC()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	if removed {
		ctx = s.logg.WithClientID(ctx, session.ClientID.String())
		s.logg.Info(ctx, "discount removed from cart: no matching line")
		return newView(session, NoticeDiscountRemoved), nil
	}
	return newView(session), nil
}

func (s *service) allowDiscountAttempt(ctx context.Context, clientID uuid.UUID) error {
	if s.limiter == nil || s.limit.Attempts <= 0 {
		return nil
	}
	allowed, _, err := s.limiter.FixedWindowAllow(ctx, "discount:"+clientID.String(), s.limit.Attempts, s.limit.Window)
	if err != nil {
		s.logg.Warn(s.logg.WithClientID(ctx, clientID.String()), "discount rate limiter unavailable")
		return nil
	}
	if !allowed {
		return pkgerrors.New(pkgerrors.CodeRateLimit, "too many discount code attempts")
	}
	return nil
}
