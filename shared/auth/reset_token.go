package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const resetTokenAudience = "password_reset"

// ResetTokenGenerator mints and checks password reset tokens without storing them.
//
// A token is an HS256 JWT whose signing key is derived from the service secret and a
// caller-supplied state fragment of the user. Any change to that fragment changes the key,
// so every token minted before the change stops verifying. Expiry is carried in the exp claim.
type ResetTokenGenerator struct {
	jwtAuth JWTAuthenticator
	secret  []byte
	timeout time.Duration
}

// NewResetTokenGenerator creates a generator. now may be nil to use the wall clock.
func NewResetTokenGenerator(secret, issuer string, timeout time.Duration, now func() time.Time) *ResetTokenGenerator {
	return &ResetTokenGenerator{
		jwtAuth: NewJWTAuthenticator(resetTokenAudience, issuer).WithClock(now),
		secret:  []byte(secret),
		timeout: timeout,
	}
}

// Timeout is how long a freshly minted token stays valid.
func (g *ResetTokenGenerator) Timeout() time.Duration { return g.timeout }

// MakeToken mints a token for subject bound to stateFragment. Minting twice within the same
// second for the same subject and fragment yields the same token.
func (g *ResetTokenGenerator) MakeToken(subject, stateFragment string) (string, error) {
	now := g.jwtAuth.Now().Truncate(time.Second)
	claims := jwt.RegisteredClaims{
		Issuer:    g.jwtAuth.Issuer(),
		Audience:  jwt.ClaimStrings{g.jwtAuth.Audience()},
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.timeout)),
	}

	return g.jwtAuth.GenerateToken(claims, g.signingKey(stateFragment))
}

// CheckToken reports whether token was minted for subject while the user's state produced
// stateFragment, and has not yet expired.
func (g *ResetTokenGenerator) CheckToken(token, subject, stateFragment string) bool {
	if token == "" || subject == "" {
		return false
	}

	_, err := g.jwtAuth.ValidateTokenWithClaims(
		token,
		g.signingKey(stateFragment),
		&jwt.RegisteredClaims{},
		jwt.WithSubject(subject),
		jwt.WithIssuedAt(),
	)
	return err == nil
}

func (g *ResetTokenGenerator) signingKey(stateFragment string) []byte {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(resetTokenAudience))
	mac.Write([]byte{0})
	mac.Write([]byte(stateFragment))
	return mac.Sum(nil)
}
