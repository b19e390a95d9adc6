// Package discounts validates promotional codes and computes the discount a
// code grants on a cart.
package discounts

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
)

var hundred = decimal.NewFromInt(100)

// Offer is the typed view of an offer record.
type Offer struct {
	ID              uuid.UUID       `json:"id"`
	Code            string          `json:"code"`
	Title           string          `json:"title"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	IsActive        bool            `json:"is_active"`
	ProductIDs      []uuid.UUID     `json:"product_ids"`
}

// Applied is the discount currently attached to a cart. An empty ProductIDs
// set means the discount applies to the whole cart.
type Applied struct {
	OfferID    uuid.UUID       `json:"offer_id"`
	Code       string          `json:"code"`
	Percent    decimal.Decimal `json:"percent"`
	ProductIDs []uuid.UUID     `json:"product_ids"`
	Amount     decimal.Decimal `json:"amount"`
}

// IsGlobal reports whether the discount is unscoped.
func (a Applied) IsGlobal() bool {
	return len(a.ProductIDs) == 0
}

// LineAmount is one cart line as seen by the engine.
type LineAmount struct {
	ProductID uuid.UUID
	Subtotal  decimal.Decimal
}

// Cart is the read view of a cart the engine computes against.
type Cart interface {
	DiscountLines() []LineAmount
}

// OfferLookup finds an active offer by exact code. It returns nil when no
// active offer carries the code.
type OfferLookup interface {
	FindActiveByCode(ctx context.Context, code string) (*Offer, error)
}

type validationRecorder interface {
	IncDiscountValidation(result string)
}

// Engine validates codes against the offer store.
type Engine struct {
	offers  OfferLookup
	metrics validationRecorder
}

func NewEngine(offers OfferLookup, metrics validationRecorder) *Engine {
	return &Engine{offers: offers, metrics: metrics}
}

// NormalizeCode trims and upper-cases a code as entered by a client.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate looks the code up and computes its discount on cart.
func (e *Engine) Validate(ctx context.Context, code string, cart Cart) (*Applied, error) {
	applied, err := e.validate(ctx, code, cart)
	e.record(err)
	return applied, err
}

func (e *Engine) validate(ctx context.Context, code string, cart Cart) (*Applied, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidDiscountCode, "discount code is empty")
	}

	offer, err := e.offers.FindActiveByCode(ctx, code)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup offer")
	}
	if offer == nil || !offer.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidDiscountCode, "no active offer for code")
	}
	if !offer.DiscountPercent.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeNoDiscountOffered, "offer discount is not positive")
	}

	return Recompute(Applied{
		OfferID:    offer.ID,
		Code:       offer.Code,
		Percent:    offer.DiscountPercent,
		ProductIDs: offer.ProductIDs,
	}, cart)
}

func (e *Engine) record(err error) {
	if e.metrics == nil {
		return
	}
	if err == nil {
		e.metrics.IncDiscountValidation("applied")
		return
	}
	if typed := pkgerrors.As(err); typed != nil {
		e.metrics.IncDiscountValidation(string(typed.Code()))
		return
	}
	e.metrics.IncDiscountValidation(string(pkgerrors.CodeInternal))
}

// Recompute reapplies a previously accepted discount to the current cart
// without looking the code up again. A scoped discount with no matching line
// yields a DISCOUNT_NOT_APPLICABLE error.
func Recompute(applied Applied, cart Cart) (*Applied, error) {
	amount, ok := Amount(applied.Percent, applied.ProductIDs, cart)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeDiscountNotApplicable, "no cart line matches the offer").
			WithDetails(map[string]any{"code": applied.Code})
	}
	applied.Amount = amount
	return &applied, nil
}

// Amount computes the discount for percent over cart, rounded to cents. A
// global discount applies to the whole subtotal; a scoped one only to lines
// whose product is in productIDs. ok is false when a scoped discount matches
// no line.
func Amount(percent decimal.Decimal, productIDs []uuid.UUID, cart Cart) (decimal.Decimal, bool) {
	rate := percent.Div(hundred)
	lines := cart.DiscountLines()

	if len(productIDs) == 0 {
		subtotal := decimal.Zero
		for _, line := range lines {
			subtotal = subtotal.Add(line.Subtotal)
		}
		return subtotal.Mul(rate).Round(2), true
	}

	scope := make(map[uuid.UUID]struct{}, len(productIDs))
	for _, id := range productIDs {
		scope[id] = struct{}{}
	}

	total := decimal.Zero
	matched := false
	for _, line := range lines {
		if _, ok := scope[line.ProductID]; !ok {
			continue
		}
		matched = true
		total = total.Add(line.Subtotal.Mul(rate))
	}
	if !matched {
		return decimal.Zero, false
	}
	return total.Round(2), true
}

// IsNotApplicable reports whether err means the discount no longer matches the cart.
func IsNotApplicable(err error) bool {
	return pkgerrors.HasCode(err, pkgerrors.CodeDiscountNotApplicable)
}
