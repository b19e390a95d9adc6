package controllers

import (
	"net/http"

	"github.com/eonite/portal-backend/api/responses"
	"github.com/eonite/portal-backend/api/validators"
	"github.com/eonite/portal-backend/internal/orders"
	"github.com/eonite/portal-backend/pkg/enums"
	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
	"github.com/eonite/portal-backend/pkg/logger"
)

type orderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed production delivered_eonite available cancelled"`
}

type orderProgressRequest struct {
	Progress *int `json:"production_progress" validate:"required,gte=0,lte=100"`
}

type orderPaymentRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=pending paid refunded"`
}

// AdminOrders lists every order, optionally filtered by status, payment
// status or client.
func AdminOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		filters, err := orderFiltersFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params, err := paginationFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), filters, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func orderFiltersFromRequest(r *http.Request) (orders.ListFilters, error) {
	var (
		filters orders.ListFilters
		err     error
	)
	if filters.Status, err = validators.ParseQueryEnum(r, "status", enums.ParseOrderStatus); err != nil {
		return filters, err
	}
	if filters.PaymentStatus, err = validators.ParseQueryEnum(r, "payment_status", enums.ParsePaymentStatus); err != nil {
		return filters, err
	}
	if filters.ClientID, err = validators.ParseQueryUUID(r, "client_id"); err != nil {
		return filters, err
	}
	return filters, nil
}

// AdminOrderDetail returns any order with its items.
func AdminOrderDetail(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Get(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// AdminOrderStatus moves an order through its lifecycle.
func AdminOrderStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload orderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.UpdateStatus(r.Context(), orderID, enums.OrderStatus(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// AdminOrderProgress records production progress.
func AdminOrderProgress(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload orderProgressRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.UpdateProgress(r.Context(), orderID, *payload.Progress)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// AdminOrderPayment sets the payment label of an order.
func AdminOrderPayment(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload orderPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.UpdatePayment(r.Context(), orderID, enums.PaymentStatus(payload.PaymentStatus))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}
