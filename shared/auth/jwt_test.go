package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccessClaims(a JWTAuthenticator, ttl time.Duration) AccessClaims {
	now := a.Now()
	return AccessClaims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    a.Issuer(),
			Audience:  jwt.ClaimStrings{a.Audience()},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

func TestJWTAuthenticator_RoundTrip(t *testing.T) {
	a := NewJWTAuthenticator("account-service", "account-service")
	secret := []byte("access-secret")

	tokenStr, err := a.GenerateToken(newAccessClaims(a, time.Minute), secret)
	require.NoError(t, err)

	var claims AccessClaims
	_, err = a.ValidateTokenWithClaims(tokenStr, secret, &claims)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
}

func TestJWTAuthenticator_RejectsWrongSecret(t *testing.T) {
	a := NewJWTAuthenticator("aud", "iss")

	tokenStr, err := a.GenerateToken(newAccessClaims(a, time.Minute), []byte("one"))
	require.NoError(t, err)

	_, err = a.ValidateTokenWithClaims(tokenStr, []byte("two"), &AccessClaims{})
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWTAuthenticator_RejectsWrongAudience(t *testing.T) {
	issuer := NewJWTAuthenticator("aud-a", "iss")
	verifier := NewJWTAuthenticator("aud-b", "iss")
	secret := []byte("s")

	tokenStr, err := issuer.GenerateToken(newAccessClaims(issuer, time.Minute), secret)
	require.NoError(t, err)

	_, err = verifier.ValidateTokenWithClaims(tokenStr, secret, &AccessClaims{})
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidAudience)
}

func TestJWTAuthenticator_RejectsExpired(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := NewJWTAuthenticator("aud", "iss").WithClock(func() time.Time { return now })
	secret := []byte("s")

	tokenStr, err := a.GenerateToken(newAccessClaims(a, time.Minute), secret)
	require.NoError(t, err)

	later := a.WithClock(func() time.Time { return now.Add(2 * time.Minute) })
	_, err = later.ValidateTokenWithClaims(tokenStr, secret, &AccessClaims{})
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTAuthenticator_RejectsOtherAlgorithms(t *testing.T) {
	a := NewJWTAuthenticator("aud", "iss")
	claims := newAccessClaims(a, time.Minute)

	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = a.ValidateTokenWithClaims(tokenStr, []byte("s"), &AccessClaims{})
	assert.Error(t, err)
}
