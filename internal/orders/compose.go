package orders

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eonite/portal-backend/internal/cart"
	"github.com/eonite/portal-backend/internal/discounts"
	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
)

// Draft is a composed order that has not been given a number or persisted.
type Draft struct {
	ClientID     uuid.UUID   `json:"client_id"`
	Totals       cart.Totals `json:"totals"`
	DiscountCode *string     `json:"discount_code,omitempty"`
	Notes        *string     `json:"notes,omitempty"`
	Items        []DraftItem `json:"items"`
}

// DraftItem snapshots one cart line.
type DraftItem struct {
	ClientProductID uuid.UUID       `json:"client_product_id"`
	DisplayName     string          `json:"display_name"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// Compose turns a ledger and its applied discount into an order draft. It
// does not mutate its inputs and yields identical drafts for identical inputs.
func Compose(clientID uuid.UUID, ledger cart.Ledger, applied *discounts.Applied, notes string) (*Draft, error) {
	if clientID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "client id is required")
	}
	if ledger.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	draft := &Draft{
		ClientID: clientID,
		Totals:   cart.ComputeTotals(ledger, applied),
		Items:    make([]DraftItem, 0, ledger.Len()),
	}
	if applied != nil {
		code := applied.Code
		draft.DiscountCode = &code
	}

	for _, line := range ledger.Lines {
		draft.Items = append(draft.Items, DraftItem{
			ClientProductID: line.ClientProductID,
			DisplayName:     line.DisplayName,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			LineTotal:       line.Subtotal().Round(2),
		})
	}

	if ledger.Len() > 1 {
		notes += fmt.Sprintf("\n[%d products in order]", ledger.Len())
	}
	if strings.TrimSpace(notes) != "" {
		draft.Notes = &notes
	}
	return draft, nil
}
