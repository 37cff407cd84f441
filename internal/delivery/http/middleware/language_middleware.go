package middleware

import (
	"net/http"

	"dawaksahl-api/pkg/i18n"
)

// Language negotiates the response language from ?lang= or Accept-Language and stores
// it in the request context.
func Language(fallback i18n.Lang) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := i18n.Negotiate(r.Header.Get("Accept-Language"), fallback)
			if q := r.URL.Query().Get("lang"); q != "" {
				lang = i18n.Parse(q, lang)
			}

			w.Header().Set("Content-Language", string(lang))
			next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
		})
	}
}
