package controllers

import (
	"net/http"

	"github.com/eonite/portal-backend/api/responses"
	"github.com/eonite/portal-backend/internal/dashboard"
	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
	"github.com/eonite/portal-backend/pkg/logger"
)

// AdminDashboard returns the operator overview.
func AdminDashboard(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}
		overview, err := svc.Overview(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, overview)
	}
}
