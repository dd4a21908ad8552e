package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/account-api/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/account-api/shared/auth"
	"github.com/vasapolrittideah/account-api/shared/middleware"
	"github.com/vasapolrittideah/account-api/shared/response"
	"github.com/vasapolrittideah/account-api/shared/validation"
)

// Options carries everything the HTTP surface depends on.
type Options struct {
	AccountUsecase       usecase.AccountUsecase
	AuthUsecase          usecase.AuthUsecase
	PasswordResetUsecase usecase.PasswordResetUsecase

	JWTAuth           auth.JWTAuthenticator
	AccessTokenSecret string

	// TrustProxyHeaders derives the client IP from proxy headers instead of the connection.
	TrustProxyHeaders bool

	// Limiter throttles login and reset email requests. Nil disables throttling.
	Limiter         middleware.Limiter
	RateLimitLimit  int
	RateLimitWindow time.Duration
	Logger          *zerolog.Logger
}

type accountHTTPHandler struct {
	accountUsecase       usecase.AccountUsecase
	authUsecase          usecase.AuthUsecase
	passwordResetUsecase usecase.PasswordResetUsecase
	validator            *validation.Validator
	logger               *zerolog.Logger
}

// NewRouter builds the account service HTTP router.
func NewRouter(opts Options) http.Handler {
	h := &accountHTTPHandler{
		accountUsecase:       opts.AccountUsecase,
		authUsecase:          opts.AuthUsecase,
		passwordResetUsecase: opts.PasswordResetUsecase,
		validator:            validation.New(),
		logger:               opts.Logger,
	}

	throttle := func(scope string) func(http.Handler) http.Handler {
		if opts.Limiter == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.RateLimit(opts.Limiter, scope, opts.RateLimitLimit, opts.RateLimitWindow)
	}

	r := chi.NewRouter()
	if opts.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.Logging(opts.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.StripSlashes)
	r.Use(middleware.Metrics)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.With(throttle("login")).Post("/login", h.Login)
		r.Post("/token/refresh", h.RefreshToken)

		r.With(throttle("reset_email")).Post("/send-reset-password-email", h.SendResetPasswordEmail)
		r.Get("/reset/{uid}/{token}", h.ValidatePasswordResetToken)
		r.Post("/reset/{uid}/{token}", h.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.NewJWTMiddleware(opts.JWTAuth, []byte(opts.AccessTokenSecret)))
			r.Get("/profile", h.Profile)
			r.Post("/changepassword", h.ChangePassword)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, "not_found", "resource not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil)
	})

	return r
}

// decode reads and validates a JSON body into dst, writing the error response itself.
func (h *accountHTTPHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := response.DecodeJSON(r, dst); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_json", "request body is not valid JSON", nil)
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		var fields validation.FieldErrors
		if !errors.As(err, &fields) {
			h.logger.Error().Err(err).Msg("failed to validate request")
		}
		response.Error(w, http.StatusBadRequest, "validation_failed", "invalid input", fields)
		return false
	}

	return true
}
