package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey int

const claimsKey contextKey = iota

// ClaimsFromContext returns the verified claims the middleware stored, or
// nil on an unauthenticated request.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey).(*Claims)
	return claims
}

// BearerToken extracts the token from an Authorization header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// Middleware verifies the bearer token on every request and stores the
// claims in the request context. Revoked tokens are rejected even when the
// signature still checks out.
func Middleware(manager *Manager, blacklist Blacklist, unauthorized func(w http.ResponseWriter, code, message string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				unauthorized(w, "MISSING_TOKEN", "authorization header is required")
				return
			}

			claims, err := manager.Verify(token, TokenTypeAccess)
			if err != nil {
				unauthorized(w, "INVALID_TOKEN", "token is invalid or expired")
				return
			}

			revoked, err := blacklist.IsRevoked(r.Context(), token)
			if err != nil || revoked {
				unauthorized(w, "TOKEN_REVOKED", "token has been revoked")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
