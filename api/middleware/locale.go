package middleware

import (
	"net/http"

	"github.com/eonite/portal-backend/pkg/i18n"
)

const contentLanguageHeader = "Content-Language"

// Locale resolves the request language from Accept-Language and attaches the
// translator used to localize error messages.
func Locale(tr *i18n.Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if tr == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag := tr.Match(r.Header.Get("Accept-Language"))
			w.Header().Set(contentLanguageHeader, tag.String())
			next.ServeHTTP(w, r.WithContext(tr.Attach(r.Context(), tag)))
		})
	}
}
