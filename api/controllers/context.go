package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/eonite/portal-backend/api/middleware"
	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
)

func clientIDFromRequest(r *http.Request) (uuid.UUID, error) {
	clientID, ok := middleware.ClientIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "client context missing")
	}
	return clientID, nil
}
