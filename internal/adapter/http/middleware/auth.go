package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/fondocore/fondo/internal/infrastructure/auth"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// ManagerContextKey is the context key for the authenticated manager
	ManagerContextKey ContextKey = "manager"
)

// AuthMiddleware creates an authentication middleware. The verified manager
// identity is what gets stamped onto movements and closings.
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ManagerContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth extracts the manager if a token is present but doesn't require it
func OptionalAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				claims, err := jwtManager.Verify(parts[1])
				if err == nil {
					ctx := context.WithValue(r.Context(), ManagerContextKey, claims)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			// Invalid auth, but don't fail - just continue without a manager
			next.ServeHTTP(w, r)
		})
	}
}

// ManagerFromContext extracts the authenticated manager claims from context
func ManagerFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ManagerContextKey).(*auth.Claims)
	return claims, ok
}
