package auth

import "github.com/golang-jwt/jwt/v5"

// AccessClaims are carried by access and refresh tokens.
type AccessClaims struct {
	UserID  int64 `json:"uid"`
	IsAdmin bool  `json:"adm,omitempty"`
	jwt.RegisteredClaims
}

// Tokens is the credential pair handed to a client after registration, login or refresh.
type Tokens struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}
