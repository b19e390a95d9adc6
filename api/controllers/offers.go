package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eonite/portal-backend/api/responses"
	"github.com/eonite/portal-backend/api/validators"
	"github.com/eonite/portal-backend/internal/discounts"
	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
	"github.com/eonite/portal-backend/pkg/logger"
)

type createOfferRequest struct {
	Title           string          `json:"title" validate:"required,max=200"`
	Description     *string         `json:"description,omitempty" validate:"omitempty,max=2000"`
	Code            *string         `json:"code,omitempty" validate:"omitempty,max=64"`
	DiscountPercent decimal.Decimal `json:"discount_percent" validate:"gte=0,lte=100"`
	IsActive        *bool           `json:"is_active,omitempty"`
	ProductIDs      []uuid.UUID     `json:"product_ids"`
}

func (r createOfferRequest) toInput() discounts.CreateOfferInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return discounts.CreateOfferInput{
		Title:           validators.SanitizeString(r.Title, 200),
		Description:     r.Description,
		Code:            r.Code,
		DiscountPercent: r.DiscountPercent,
		IsActive:        active,
		ProductIDs:      r.ProductIDs,
	}
}

type toggleOfferRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func AdminOffers(svc discounts.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offer service unavailable"))
			return
		}
		offers, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"offers": offers})
	}
}

// AdminOfferCreate creates an offer. Offers are active unless the request
// says otherwise.
func AdminOfferCreate(svc discounts.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offer service unavailable"))
			return
		}
		var payload createOfferRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offer, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, offer)
	}
}

// AdminOfferToggle switches an offer on or off.
func AdminOfferToggle(svc discounts.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offer service unavailable"))
			return
		}
		offerID, err := validators.ParseUUIDParam(r, "offerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload toggleOfferRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetActive(r.Context(), offerID, *payload.IsActive); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"id": offerID, "is_active": *payload.IsActive})
	}
}

func AdminOfferDelete(svc discounts.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offer service unavailable"))
			return
		}
		offerID, err := validators.ParseUUIDParam(r, "offerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), offerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
