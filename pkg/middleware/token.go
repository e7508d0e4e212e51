package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/logger"
)

type contextKeyType string

const (
	tokenKey     contextKeyType = "gateway_token"
	sessionIDKey contextKeyType = "session_id"
)

// SessionLookup resolves a session id to the gateway token stored for it.
// It returns an empty token and a nil error when the session does not exist.
type SessionLookup func(ctx context.Context, sessionID string) (string, error)

// TokenConfig configures where the Token middleware looks for credentials.
type TokenConfig struct {
	// Header is the request header carrying a raw gateway token. Defaults to "token".
	Header string
	// Cookie is the cookie carrying a session id. Defaults to "sid".
	Cookie string
	// Lookup resolves session ids. When nil, only the header is consulted.
	Lookup SessionLookup
}

// Token resolves the caller's gateway token and stores it in the request
// context. The token header wins over the session cookie. Requests without
// credentials pass through anonymously; protected operations reject them later.
func Token(cfg TokenConfig) func(http.Handler) http.Handler {
	if cfg.Header == "" {
		cfg.Header = "token"
	}
	if cfg.Cookie == "" {
		cfg.Cookie = "sid"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if tok := strings.TrimSpace(r.Header.Get(cfg.Header)); tok != "" {
				next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, tokenKey, tok)))
				return
			}

			c, err := r.Cookie(cfg.Cookie)
			if err != nil || c.Value == "" || cfg.Lookup == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx = context.WithValue(ctx, sessionIDKey, c.Value)
			tok, err := cfg.Lookup(ctx, c.Value)
			if err != nil {
				logger.FromContext(ctx).WarnContext(ctx, "session lookup failed",
					slog.String("error", err.Error()),
				)
			}
			if tok != "" {
				ctx = context.WithValue(ctx, tokenKey, tok)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireToken rejects requests that carry no resolved gateway token.
func RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if TokenFromContext(r.Context()) == "" {
			httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
				Error: &httputil.ErrorResponse{
					Code:      "UNAUTHENTICATED",
					Message:   "sign in to continue",
					RequestID: logger.CorrelationIDFromContext(r.Context()),
				},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TokenFromContext returns the gateway token resolved by Token, if any.
func TokenFromContext(ctx context.Context) string {
	if tok, ok := ctx.Value(tokenKey).(string); ok {
		return tok
	}
	return ""
}

// SessionIDFromContext returns the session id from the sid cookie, if any.
func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// WithToken stores a gateway token in ctx. Used by handlers that obtain a
// token mid-request (sign-in) and by tests.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}
