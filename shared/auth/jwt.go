package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token parses but is not valid.
var ErrInvalidToken = errors.New("invalid token")

// JWTAuthenticator signs and verifies HS256 tokens for a fixed audience and issuer.
type JWTAuthenticator struct {
	audience string
	issuer   string
	now      func() time.Time
}

// NewJWTAuthenticator creates a new JWTAuthenticator instance.
func NewJWTAuthenticator(audience, issuer string) JWTAuthenticator {
	return JWTAuthenticator{
		audience: audience,
		issuer:   issuer,
		now:      time.Now,
	}
}

// WithClock returns a copy of the authenticator that validates expiry against now.
func (a JWTAuthenticator) WithClock(now func() time.Time) JWTAuthenticator {
	if now != nil {
		a.now = now
	}
	return a
}

// Audience returns the audience tokens are issued for.
func (a JWTAuthenticator) Audience() string { return a.audience }

// Issuer returns the issuer written into and required from tokens.
func (a JWTAuthenticator) Issuer() string { return a.issuer }

// Now returns the authenticator's current time.
func (a JWTAuthenticator) Now() time.Time { return a.now() }

// GenerateToken signs claims with secret.
func (a *JWTAuthenticator) GenerateToken(claims jwt.Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenStr, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return tokenStr, nil
}

// ValidateTokenWithClaims verifies tokenString and decodes it into claims, which must be a
// pointer to a type implementing jwt.Claims. Expiry, audience and issuer are always enforced;
// opts add further checks such as jwt.WithSubject.
func (a *JWTAuthenticator) ValidateTokenWithClaims(
	tokenString string,
	secret []byte,
	claims jwt.Claims,
	opts ...jwt.ParserOption,
) (*jwt.Token, error) {
	parserOpts := append([]jwt.ParserOption{
		jwt.WithExpirationRequired(),
		jwt.WithAudience(a.audience),
		jwt.WithIssuer(a.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(a.now),
	}, opts...)

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return secret, nil
	}, parserOpts...)
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return token, nil
}
