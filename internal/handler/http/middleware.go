package http

import (
	"net/http"
	"strings"

	"github.com/utafrali/storefront/internal/gateway"
	"github.com/utafrali/storefront/pkg/logger"
	"github.com/utafrali/storefront/pkg/middleware"
)

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json"}}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDForLogs copies the user id claim of the resolved token into the
// logging context. Must run after middleware.Token and before
// middleware.RequestLogger.
func UserIDForLogs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if token := middleware.TokenFromContext(ctx); token != "" {
			if id, err := gateway.UserIDFromToken(token); err == nil {
				ctx = logger.WithUserID(ctx, id)
			}
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
