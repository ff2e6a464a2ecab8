package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/staffdesk/api/internal/auth"
	"github.com/staffdesk/api/internal/models"
)

type adminKeyType string

const (
	AdminKey  adminKeyType = "admin"
	ClaimsKey adminKeyType = "claims"
)

// AdminFinder looks up the account behind a verified token.
type AdminFinder interface {
	FindActiveByID(ctx context.Context, id uint) (*models.Admin, error)
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	ah := r.Header.Get("Authorization")
	if !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
		return "", false
	}
	return strings.TrimSpace(ah[len("Bearer "):]), true
}

// RequireAdmin validates a Bearer access token and loads the admin
// account into the request context. Revoked tokens and tokens for
// deactivated accounts are rejected.
func RequireAdmin(issuer *auth.Issuer, admins AdminFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := BearerToken(r)
			if !ok {
				deny(w, http.StatusUnauthorized, "Unauthorized", "Missing or invalid authorization header")
				return
			}
			claims, err := issuer.ParseAccess(tokenStr)
			if err != nil {
				deny(w, http.StatusUnauthorized, "Unauthorized", "Token is invalid or has been revoked")
				return
			}
			id, err := claims.AdminID()
			if err != nil {
				deny(w, http.StatusUnauthorized, "Unauthorized", "Token is invalid or has been revoked")
				return
			}
			admin, err := admins.FindActiveByID(r.Context(), id)
			if err != nil {
				deny(w, http.StatusUnauthorized, "Unauthorized", "Admin account not found or inactive")
				return
			}
			ctx := context.WithValue(r.Context(), AdminKey, admin)
			ctx = context.WithValue(ctx, ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdmin returns the authenticated admin from context, nil outside a
// protected route.
func GetAdmin(ctx context.Context) *models.Admin {
	if v := ctx.Value(AdminKey); v != nil {
		if a, ok := v.(*models.Admin); ok {
			return a
		}
	}
	return nil
}

// GetClaims returns the verified token claims from context.
func GetClaims(ctx context.Context) *auth.Claims {
	if v := ctx.Value(ClaimsKey); v != nil {
		if c, ok := v.(*auth.Claims); ok {
			return c
		}
	}
	return nil
}
