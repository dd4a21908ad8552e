package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrEmailRequired      = errors.New("users must have an email address")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordMismatch   = errors.New("password and confirm password doesn't match")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")

	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("email or password is not valid")
	ErrInvalidRefreshToken = errors.New("refresh token is not valid or expired")

	ErrNotRegistered = errors.New("you are not a registered user")

	// ErrInvalidOrExpiredToken is the single class every reset link failure belongs to.
	ErrInvalidOrExpiredToken = errors.New("token is not valid or expired")
	ErrMalformedLink         = fmt.Errorf("malformed reset link: %w", ErrInvalidOrExpiredToken)
	ErrUnknownUser           = fmt.Errorf("reset link names an unknown user: %w", ErrInvalidOrExpiredToken)
)
