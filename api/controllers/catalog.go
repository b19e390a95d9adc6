package controllers

import (
	"net/http"

	"github.com/eonite/portal-backend/api/responses"
	"github.com/eonite/portal-backend/internal/catalog"
	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
	"github.com/eonite/portal-backend/pkg/logger"
)

// CatalogList returns active products with resolved prices.
func CatalogList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		entries, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": entries})
	}
}
