package middleware

import (
	"net/http"
	"strings"

	"github.com/eonite/portal-backend/api/responses"
	pkgAuth "github.com/eonite/portal-backend/pkg/auth"
	"github.com/eonite/portal-backend/pkg/config"
	"github.com/eonite/portal-backend/pkg/enums"
	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
	"github.com/eonite/portal-backend/pkg/logger"
)

// Auth validates the bearer token and seeds the request context with the
// caller's id and role. Client tokens also tag log lines with client_id.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			userID := claims.UserID.String()
			ctx := WithRole(WithUserID(r.Context(), userID), claims.Role.String())
			if logg != nil {
				ctx = logg.WithUserID(ctx, userID)
				ctx = logg.WithActorRole(ctx, claims.Role.String())
				if claims.Role == enums.RoleClient {
					ctx = logg.WithClientID(ctx, userID)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}
	return raw, raw != ""
}
