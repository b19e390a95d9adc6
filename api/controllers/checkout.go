package controllers

import (
	"net/http"

	"github.com/eonite/portal-backend/api/responses"
	"github.com/eonite/portal-backend/api/validators"
	checkoutsvc "github.com/eonite/portal-backend/internal/checkout"
	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
	"github.com/eonite/portal-backend/pkg/logger"
)

type checkoutRequest struct {
	Notes string `json:"notes" validate:"max=2000"`
}

// CheckoutPreview composes the order the client's cart would produce.
func CheckoutPreview(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		clientID, err := clientIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeOptionalJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := svc.Preview(r.Context(), clientID, checkoutsvc.Input{Notes: payload.Notes})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// Checkout submits the client's cart as an order.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		clientID, err := clientIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeOptionalJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Execute(r.Context(), clientID, checkoutsvc.Input{Notes: payload.Notes})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, detail)
	}
}
