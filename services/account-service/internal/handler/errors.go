package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/vasapolrittideah/account-api/services/account-service/internal/metrics"
	"github.com/vasapolrittideah/account-api/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/account-api/shared/response"
)

// writeError renders a usecase error. Every reset link failure renders the same body, and so do
// the two ways a login can fail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrExpiredToken):
		response.Error(w, http.StatusBadRequest, "token_invalid", usecase.ErrInvalidOrExpiredToken.Error(), nil)
	case errors.Is(err, usecase.ErrPasswordMismatch):
		response.Error(w, http.StatusBadRequest, "password_mismatch", err.Error(), nil)
	case errors.Is(err, usecase.ErrPasswordRequired):
		response.Error(w, http.StatusBadRequest, "validation_failed", "invalid input", map[string]string{
			"password": err.Error(),
		})
	case errors.Is(err, usecase.ErrEmailRequired):
		response.Error(w, http.StatusBadRequest, "validation_failed", "invalid input", map[string]string{
			"email": err.Error(),
		})
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		response.Error(w, http.StatusConflict, "email_exists", err.Error(), nil)
	case errors.Is(err, usecase.ErrInvalidCredentials), errors.Is(err, usecase.ErrUserNotFound):
		response.Error(w, http.StatusUnauthorized, "invalid_credentials", usecase.ErrInvalidCredentials.Error(), nil)
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		response.Error(w, http.StatusUnauthorized, "token_invalid", err.Error(), nil)
	case errors.Is(err, usecase.ErrNotRegistered):
		response.Error(w, http.StatusNotFound, "not_registered", err.Error(), nil)
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		response.Error(w, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}

// outcomeOf labels a failed operation: errors the client caused are rejections.
func outcomeOf(err error) string {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrExpiredToken),
		errors.Is(err, usecase.ErrPasswordMismatch),
		errors.Is(err, usecase.ErrPasswordRequired),
		errors.Is(err, usecase.ErrEmailRequired),
		errors.Is(err, usecase.ErrEmailAlreadyExists),
		errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrNotRegistered):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}
