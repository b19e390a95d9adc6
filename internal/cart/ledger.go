// Package cart holds a client's pending order lines and the discount applied to them.
package cart

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eonite/portal-backend/internal/discounts"
	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
)

// Line is one cart entry. UnitPrice is captured when the line is first added
// and is never re-resolved afterwards.
type Line struct {
	ClientProductID  uuid.UUID       `json:"client_product_id"`
	ProductID        uuid.UUID       `json:"product_id"`
	VariantID        *uuid.UUID      `json:"variant_id,omitempty"`
	DisplayName      string          `json:"display_name"`
	Quantity         int             `json:"quantity"`
	MinOrderQuantity int             `json:"min_order_quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
}

// Subtotal is unit price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Ledger is the ordered set of cart lines, keyed by client product.
type Ledger struct {
	Lines []Line `json:"lines"`
}

// Add appends line, or sums its quantity into the existing line for the same
// client product. The existing line keeps its captured price.
func (l *Ledger) Add(line Line) error {
	if line.ClientProductID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "client product reference is required")
	}
	if line.Quantity < line.MinOrderQuantity || line.Quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity is below the minimum order quantity").
			WithDetails(map[string]any{"quantity": line.Quantity, "min_order_quantity": line.MinOrderQuantity})
	}
	for i := range l.Lines {
		if l.Lines[i].ClientProductID == line.ClientProductID {
			l.Lines[i].Quantity += line.Quantity
			return nil
		}
	}
	l.Lines = append(l.Lines, line)
	return nil
}

// Remove deletes the line at index.
func (l *Ledger) Remove(index int) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	l.Lines = append(l.Lines[:index], l.Lines[index+1:]...)
	return nil
}

// SetQuantity overwrites the quantity of the line at index. A quantity below the
// line's minimum leaves the ledger untouched and reports changed=false.
func (l *Ledger) SetQuantity(index, quantity int) (bool, error) {
	if err := l.checkIndex(index); err != nil {
		return false, err
	}
	line := &l.Lines[index]
	if quantity < line.MinOrderQuantity || quantity <= 0 {
		return false, nil
	}
	if line.Quantity == quantity {
		return false, nil
	}
	line.Quantity = quantity
	return true, nil
}

func (l *Ledger) checkIndex(index int) error {
	if index < 0 || index >= len(l.Lines) {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("no cart line at index %d", index))
	}
	return nil
}

// Subtotal sums every line subtotal.
func (l Ledger) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range l.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// ItemCount sums quantities across lines.
func (l Ledger) ItemCount() int {
	count := 0
	for _, line := range l.Lines {
		count += line.Quantity
	}
	return count
}

func (l Ledger) Len() int {
	return len(l.Lines)
}

func (l Ledger) IsEmpty() bool {
	return len(l.Lines) == 0
}

// DiscountLines implements discounts.Cart.
func (l Ledger) DiscountLines() []discounts.LineAmount {
	out := make([]discounts.LineAmount, 0, len(l.Lines))
	for _, line := range l.Lines {
		out = append(out, discounts.LineAmount{ProductID: line.ProductID, Subtotal: line.Subtotal()})
	}
	return out
}
