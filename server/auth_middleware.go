package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-org-service/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyClaims stores the verified access-token claims
	ContextKeyClaims ContextKey = "claims"
)

// RequireAuth validates a Bearer access token and injects its claims into
// the request context. Refresh tokens are rejected here; they are only
// accepted by the refresh endpoint's body.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeErrorMessage(w, http.StatusUnauthorized, "unauthorized", "missing Authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				writeErrorMessage(w, http.StatusUnauthorized, "unauthorized", "invalid Authorization header format")
				return
			}

			claims, err := s.tokens.Verify(parts[1])
			if err != nil || claims.TokenType != token.TypeAccess {
				writeErrorMessage(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next(w, r.WithContext(ctx))
		}
	}
}

// claimsFromContext returns the verified claims injected by RequireAuth.
func claimsFromContext(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(ContextKeyClaims).(*token.Claims)
	return claims
}
