package payload

import (
	"time"

	"github.com/vasapolrittideah/account-api/services/account-service/internal/model"
	"github.com/vasapolrittideah/account-api/shared/auth"
)

type RegisterRequest struct {
	Email                string `json:"email"                 validate:"required,email,max=255"`
	FirstName            string `json:"first_name"            validate:"required,max=150"`
	LastName             string `json:"last_name"             validate:"required,max=150"`
	DateOfBirth          string `json:"date_of_birth"         validate:"required,datetime=2006-01-02"`
	Password             string `json:"password"              validate:"required"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

type RegisterResponse struct {
	Message string       `json:"message"`
	Token   TokenPair    `json:"token"`
	User    UserResponse `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message string    `json:"message"`
	Token   TokenPair `json:"token"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func NewTokenPair(t *auth.Tokens) TokenPair {
	return TokenPair{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
	}
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	Token TokenPair `json:"token"`
}

// UserResponse is the profile view of a user. Credentials are never part of it.
type UserResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
}

func NewUserResponse(u *model.User) UserResponse {
	dob := ""
	if !u.DateOfBirth.IsZero() {
		dob = u.DateOfBirth.Format(model.DateLayout)
	}

	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DateOfBirth: dob,
	}
}

// ParseDateOfBirth parses a validated YYYY-MM-DD date as midnight UTC.
func ParseDateOfBirth(s string) (time.Time, error) {
	return time.ParseInLocation(model.DateLayout, s, time.UTC)
}

type ChangePasswordRequest struct {
	Password             string `json:"password"              validate:"required"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

type SendResetPasswordEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password             string `json:"password"              validate:"required"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
