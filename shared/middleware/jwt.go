package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vasapolrittideah/account-api/shared/auth"
	"github.com/vasapolrittideah/account-api/shared/response"
)

type contextKey struct{}

var userClaimsKey = contextKey{}

// ClaimsFromContext returns the access claims stored by NewJWTMiddleware.
func ClaimsFromContext(ctx context.Context) (*auth.AccessClaims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(*auth.AccessClaims)
	return claims, ok && claims != nil
}

// WithClaims stores claims in ctx.
func WithClaims(ctx context.Context, claims *auth.AccessClaims) context.Context {
	return context.WithValue(ctx, userClaimsKey, claims)
}

// NewJWTMiddleware requires a valid "Authorization: Bearer <token>" header signed with secret.
func NewJWTMiddleware(jwtAuth auth.JWTAuthenticator, secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := extractAndValidateJWT(r, jwtAuth, secret)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "token_invalid", err.Error(), nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func extractAndValidateJWT(r *http.Request, jwtAuth auth.JWTAuthenticator, secret []byte) (*auth.AccessClaims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.New("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return nil, errors.New("invalid authorization header format")
	}

	claims := &auth.AccessClaims{}
	if _, err := jwtAuth.ValidateTokenWithClaims(parts[1], secret, claims); err != nil {
		return nil, errors.New("invalid or expired access token")
	}

	return claims, nil
}
