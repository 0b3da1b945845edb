package middleware

import (
	"net/http"
	"strings"

	"github.com/expense-tools/expense-atlas/pkg/handlers/respond"
	"github.com/expense-tools/expense-atlas/pkg/models/api"
	"github.com/expense-tools/expense-atlas/pkg/services/auth"
)

// Authenticator rejects requests without a valid bearer token and stores
// the caller identity on the context.
func Authenticator(issuer *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respond.JSON(w, r, api.Fail(http.StatusUnauthorized, "Authentication required", "missing bearer token"))
				return
			}

			id, err := issuer.Parse(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respond.JSON(w, r, api.Fail(http.StatusUnauthorized, "Authentication required", "invalid token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithIdentity(r.Context(), id)))
		})
	}
}

// RequireRole gates a route group behind an exact role match.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.IdentityFromContext(r.Context())
			if !ok || id.Role != role {
				respond.JSON(w, r, api.Fail(http.StatusForbidden, "Insufficient permissions"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
