package catalog

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ResolvePrice returns the unit price of a catalog line. The variant price
// replaces the base price when a variant is given, and an active promotion
// reduces the result by its percentage. The value is not rounded.
func ResolvePrice(product Product, variant *Variant, promotion *Promotion) decimal.Decimal {
	price := product.BasePrice
	if variant != nil {
		price = variant.Price
	}
	if promotion == nil || promotion.ProductID != product.ID {
		return price
	}
	factor := decimal.NewFromInt(1).Sub(promotion.DiscountPercent.Div(hundred))
	return price.Mul(factor)
}

// EffectiveMinimumOrderQuantity is the order floor for the product or selected variant.
func EffectiveMinimumOrderQuantity(product Product, variant *Variant) int {
	moq := product.MinOrderQuantity
	if variant != nil {
		moq = variant.MinOrderQuantity
	}
	if moq < 1 {
		return 1
	}
	return moq
}
