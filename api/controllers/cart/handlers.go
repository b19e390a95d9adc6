package cart

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/eonite/portal-backend/api/middleware"
	"github.com/eonite/portal-backend/api/responses"
	"github.com/eonite/portal-backend/api/validators"
	cartsvc "github.com/eonite/portal-backend/internal/cart"
	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
	"github.com/eonite/portal-backend/pkg/logger"
)

// CartFetch returns the client's current cart with its totals.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withClient(svc, logg, func(w http.ResponseWriter, r *http.Request, clientID uuid.UUID) {
		view, err := svc.Get(r.Context(), clientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	})
}

// CartAddItem adds a catalog product to the cart.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withClient(svc, logg, func(w http.ResponseWriter, r *http.Request, clientID uuid.UUID) {
		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.AddItem(r.Context(), clientID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	})
}

// CartSetQuantity changes the quantity of the line at {index}.
func CartSetQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withClient(svc, logg, func(w http.ResponseWriter, r *http.Request, clientID uuid.UUID) {
		index, err := validators.ParseIndexParam(r, "index")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.SetQuantity(r.Context(), clientID, index, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	})
}

// CartRemoveItem drops the line at {index}.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withClient(svc, logg, func(w http.ResponseWriter, r *http.Request, clientID uuid.UUID) {
		index, err := validators.ParseIndexParam(r, "index")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.RemoveItem(r.Context(), clientID, index)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	})
}

// CartApplyDiscount validates a promotional code against the cart.
func CartApplyDiscount(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withClient(svc, logg, func(w http.ResponseWriter, r *http.Request, clientID uuid.UUID) {
		var payload applyDiscountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.ApplyDiscount(r.Context(), clientID, validators.SanitizeString(payload.Code, 64))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	})
}

func CartRemoveDiscount(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withClient(svc, logg, func(w http.ResponseWriter, r *http.Request, clientID uuid.UUID) {
		view, err := svc.RemoveDiscount(r.Context(), clientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	})
}

// CartClear empties the cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withClient(svc, logg, func(w http.ResponseWriter, r *http.Request, clientID uuid.UUID) {
		if err := svc.Clear(r.Context(), clientID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func withClient(svc cartsvc.Service, logg *logger.Logger, fn func(http.ResponseWriter, *http.Request, uuid.UUID)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		clientID, ok := middleware.ClientIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "client context missing"))
			return
		}
		fn(w, r, clientID)
	}
}
