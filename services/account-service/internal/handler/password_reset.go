package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/account-api/services/account-service/internal/metrics"
	"github.com/vasapolrittideah/account-api/services/account-service/internal/payload"
	"github.com/vasapolrittideah/account-api/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/account-api/shared/response"
)

func (h *accountHTTPHandler) SendResetPasswordEmail(w http.ResponseWriter, r *http.Request) {
	var req payload.SendResetPasswordEmailRequest
	if !h.decode(w, r, &req) {
		return
	}

	if _, err := h.passwordResetUsecase.RequestPasswordReset(r.Context(), req.Email); err != nil {
		metrics.PasswordResetsTotal.WithLabelValues(metrics.StageRequest, outcomeOf(err)).Inc()
		writeError(w, r, err)
		return
	}

	metrics.PasswordResetsTotal.WithLabelValues(metrics.StageRequest, metrics.OutcomeSuccess).Inc()

	response.OK(w, payload.MessageResponse{
		Message: "password reset link sent, please check your email",
	})
}

func (h *accountHTTPHandler) ValidatePasswordResetToken(w http.ResponseWriter, r *http.Request) {
	_, err := h.passwordResetUsecase.ValidatePasswordResetToken(
		r.Context(),
		chi.URLParam(r, "uid"),
		chi.URLParam(r, "token"),
	)
	if err != nil {
		metrics.PasswordResetsTotal.WithLabelValues(metrics.StageValidate, outcomeOf(err)).Inc()
		writeError(w, r, err)
		return
	}

	metrics.PasswordResetsTotal.WithLabelValues(metrics.StageValidate, metrics.OutcomeSuccess).Inc()

	response.OK(w, payload.MessageResponse{Message: "token is valid"})
}

func (h *accountHTTPHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ResetPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.passwordResetUsecase.ResetPassword(r.Context(), usecase.ResetPasswordParams{
		UID:                  chi.URLParam(r, "uid"),
		Token:                chi.URLParam(r, "token"),
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		metrics.PasswordResetsTotal.WithLabelValues(metrics.StageConsume, outcomeOf(err)).Inc()
		writeError(w, r, err)
		return
	}

	metrics.PasswordResetsTotal.WithLabelValues(metrics.StageConsume, metrics.OutcomeSuccess).Inc()

	response.OK(w, payload.MessageResponse{Message: "password reset successfully"})
}
