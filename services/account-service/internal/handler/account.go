package handler

import (
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/vasapolrittideah/account-api/services/account-service/internal/metrics"
	"github.com/vasapolrittideah/account-api/services/account-service/internal/payload"
	"github.com/vasapolrittideah/account-api/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/account-api/shared/middleware"
	"github.com/vasapolrittideah/account-api/shared/response"
)

func (h *accountHTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	dob, err := payload.ParseDateOfBirth(req.DateOfBirth)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "validation_failed", "invalid input", map[string]string{
			"date_of_birth": "date_of_birth must be a date in YYYY-MM-DD format",
		})
		return
	}

	user, tokens, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Email:                req.Email,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		DateOfBirth:          dob,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(outcomeOf(err)).Inc()
		writeError(w, r, err)
		return
	}

	metrics.RegistrationsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	hlog.FromRequest(r).Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("user registered")

	response.Created(w, payload.RegisterResponse{
		Message: "registration success",
		Token:   payload.NewTokenPair(tokens),
		User:    payload.NewUserResponse(user),
	})
}

func (h *accountHTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	_, tokens, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(outcomeOf(err)).Inc()
		writeError(w, r, err)
		return
	}

	metrics.LoginsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()

	response.OK(w, payload.LoginResponse{
		Message: "login success",
		Token:   payload.NewTokenPair(tokens),
	})
}

func (h *accountHTTPHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req payload.RefreshTokenRequest
	if !h.decode(w, r, &req) {
		return
	}

	tokens, err := h.authUsecase.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.OK(w, payload.RefreshTokenResponse{Token: payload.NewTokenPair(tokens)})
}

func (h *accountHTTPHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "token_invalid", "missing access token claims", nil)
		return
	}

	user, err := h.accountUsecase.GetUser(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.OK(w, payload.NewUserResponse(user))
}

func (h *accountHTTPHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "token_invalid", "missing access token claims", nil)
		return
	}

	var req payload.ChangePasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.accountUsecase.GetUser(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.authUsecase.ChangePassword(r.Context(), user, req.Password, req.PasswordConfirmation); err != nil {
		metrics.PasswordChangesTotal.WithLabelValues(outcomeOf(err)).Inc()
		writeError(w, r, err)
		return
	}

	metrics.PasswordChangesTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()

	response.OK(w, payload.MessageResponse{Message: "password changed successfully"})
}
