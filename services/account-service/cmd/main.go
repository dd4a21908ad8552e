package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/account-api/services/account-service/internal/config"
	"github.com/vasapolrittideah/account-api/services/account-service/internal/handler"
	"github.com/vasapolrittideah/account-api/services/account-service/internal/model"
	"github.com/vasapolrittideah/account-api/services/account-service/internal/repository"
	"github.com/vasapolrittideah/account-api/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/account-api/shared/auth"
	"github.com/vasapolrittideah/account-api/shared/logger"
	"github.com/vasapolrittideah/account-api/shared/mailer"
	"github.com/vasapolrittideah/account-api/shared/middleware"
	"github.com/vasapolrittideah/account-api/shared/ratelimit"
	"github.com/vasapolrittideah/account-api/shared/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "account-service",
	})

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userRepo, closeStore := newUserRepository(rootCtx, log, cfg.Mongo)
	defer closeStore()

	limiter, closeLimiter := newLimiter(rootCtx, log, cfg.Redis)
	defer closeLimiter()

	sender := newSender(log, cfg.SMTPEnabled)

	hasher := security.NewDefaultArgon2Hasher()
	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)
	resetTokens := auth.NewResetTokenGenerator(
		cfg.Token.PasswordResetTokenSecret,
		cfg.Token.Issuer,
		cfg.Token.PasswordResetTokenExpiresIn,
		nil,
	)

	fragment := usecase.DefaultStateFragment
	if !cfg.Token.PasswordResetBindLastLogin {
		fragment = usecase.StateFragmentWithoutLastLogin
	}

	accountUsecase := usecase.NewAccountUsecase(userRepo, hasher)
	authUsecase := usecase.NewAuthUsecase(accountUsecase, userRepo, hasher, jwtAuth, cfg.Token)
	passwordResetUsecase := usecase.NewPasswordResetUsecase(
		accountUsecase,
		authUsecase,
		resetTokens,
		fragment,
		sender,
		cfg.AppPasswordResetURL,
		log,
	)

	if err := seedAdmin(rootCtx, accountUsecase, cfg.Admin); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin user")
	}

	router := handler.NewRouter(handler.Options{
		AccountUsecase:       accountUsecase,
		AuthUsecase:          authUsecase,
		PasswordResetUsecase: passwordResetUsecase,
		JWTAuth:              jwtAuth,
		AccessTokenSecret:    cfg.Token.AccessTokenSecret,
		TrustProxyHeaders:    cfg.TrustProxyHeaders,
		Limiter:              limiter,
		RateLimitLimit:       cfg.RateLimit.Requests,
		RateLimitWindow:      cfg.RateLimit.Window,
		Logger:               log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-rootCtx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("http server crashed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
	log.Info().Msg("shutdown complete")
}

func newUserRepository(
	ctx context.Context,
	log *zerolog.Logger,
	cfg config.MongoConfig,
) (repository.UserRepository, func()) {
	if cfg.URI == "" {
		log.Warn().Msg("MONGO_URI not set, users are kept in memory")
		return repository.NewUserMemoryRepository(), func() {}
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		log.Fatal().Err(err).Msg("mongodb ping failed")
	}
	log.Info().Str("database", cfg.Database).Msg("mongodb connected")

	repo := repository.NewUserMongoRepository(ctx, log, client.Database(cfg.Database))

	return repo, func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}
}

func newLimiter(ctx context.Context, log *zerolog.Logger, cfg config.RedisConfig) (middleware.Limiter, func()) {
	if cfg.Addr == "" {
		log.Warn().Msg("REDIS_ADDR not set, rate limiting disabled")
		return nil, func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis ping failed (continuing, limiter fails open)")
	} else {
		log.Info().Msg("redis connected")
	}

	return ratelimit.NewFixedWindowLimiter(rdb, "account-service"), func() { _ = rdb.Close() }
}

func newSender(log *zerolog.Logger, smtpEnabled bool) mailer.Sender {
	if !smtpEnabled {
		log.Warn().Msg("SMTP disabled, emails are written to the log")
		return mailer.NewLogSender(log)
	}

	mailerCfg, err := mailer.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load mailer config")
	}

	m, err := mailer.NewMailer(mailerCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create mailer")
	}

	return m
}

// seedAdmin creates the configured administrator unless a user with that email exists.
func seedAdmin(ctx context.Context, accounts usecase.AccountUsecase, cfg config.AdminConfig) error {
	if cfg.Email == "" {
		return nil
	}

	exists, err := accounts.UserExists(ctx, cfg.Email)
	if err != nil || exists {
		return err
	}

	dob, err := time.ParseInLocation(model.DateLayout, cfg.DateOfBirth, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid ADMIN_DATE_OF_BIRTH: %w", err)
	}

	_, err = accounts.CreateAdmin(ctx, usecase.CreateAdminParams{
		Email:       cfg.Email,
		FirstName:   cfg.FirstName,
		LastName:    cfg.LastName,
		DateOfBirth: dob,
		Password:    cfg.Password,
	})
	return err
}
