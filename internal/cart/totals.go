package cart

import (
	"github.com/shopspring/decimal"

	"github.com/eonite/portal-backend/internal/discounts"
)

// VATRate is the fixed tax rate applied to every order.
var VATRate = decimal.RequireFromString("0.20")

// Totals are the monetary figures of a cart or order.
type Totals struct {
	Quantity       int             `json:"quantity"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalExclTax   decimal.Decimal `json:"total_excl_tax"`
	TotalInclTax   decimal.Decimal `json:"total_incl_tax"`
}

// ComputeTotals derives totals from the ledger and the applied discount, if any.
// Monetary figures are rounded to cents.
func ComputeTotals(ledger Ledger, applied *discounts.Applied) Totals {
	subtotal := ledger.Subtotal().Round(2)
	discount := decimal.Zero
	if applied != nil {
		discount = applied.Amount.Round(2)
	}
	exclTax := subtotal.Sub(discount)
	inclTax := exclTax.Mul(decimal.NewFromInt(1).Add(VATRate)).Round(2)
	return Totals{
		Quantity:       ledger.ItemCount(),
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TotalExclTax:   exclTax,
		TotalInclTax:   inclTax,
	}
}
