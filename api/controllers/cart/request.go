package cart

import (
	"github.com/google/uuid"

	cartsvc "github.com/eonite/portal-backend/internal/cart"
)

type addItemRequest struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  int        `json:"quantity" validate:"gte=0"`
}

func (r addItemRequest) toInput() cartsvc.AddItemInput {
	return cartsvc.AddItemInput{
		ProductID: r.ProductID,
		VariantID: r.VariantID,
		Quantity:  r.Quantity,
	}
}

type setQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=1"`
}

type applyDiscountRequest struct {
	Code string `json:"code" validate:"required,max=64"`
}
