package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/matthewhartstonge/argon2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/account-api/services/account-service/internal/config"
	"github.com/vasapolrittideah/account-api/services/account-service/internal/model"
	"github.com/vasapolrittideah/account-api/services/account-service/internal/repository"
	"github.com/vasapolrittideah/account-api/shared/auth"
	"github.com/vasapolrittideah/account-api/shared/mailer"
	"github.com/vasapolrittideah/account-api/shared/security"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recordingSender struct {
	sent []mailer.Notification
	err  error
}

func (s *recordingSender) Send(_ context.Context, n mailer.Notification) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, n)
	return nil
}

func cheapArgon2() argon2.Config {
	return argon2.Config{
		HashLength:  32,
		SaltLength:  16,
		TimeCost:    1,
		MemoryCost:  1024,
		Parallelism: 1,
		Mode:        argon2.ModeArgon2id,
		Version:     argon2.Version13,
	}
}

type fixture struct {
	clock    *fakeClock
	repo     repository.UserRepository
	accounts AccountUsecase
	auth     AuthUsecase
	resets   PasswordResetUsecase
	sender   *recordingSender
	jwtAuth  auth.JWTAuthenticator
	tokenCfg config.TokenConfig
}

func testTokenConfig() config.TokenConfig {
	return config.TokenConfig{
		Issuer:                      "account-service-test",
		AccessTokenSecret:           "access-secret",
		AccessTokenExpiresIn:        15 * time.Minute,
		RefreshTokenSecret:          "refresh-secret",
		RefreshTokenExpiresIn:       24 * time.Hour,
		PasswordResetTokenSecret:    "reset-secret",
		PasswordResetTokenExpiresIn: 72 * time.Hour,
		PasswordResetBindLastLogin:  true,
	}
}

func newFixture(t *testing.T, fragment StateFragment) *fixture {
	t.Helper()

	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	hasher := security.NewArgon2Hasher(cheapArgon2())
	tokenCfg := testTokenConfig()
	jwtAuth := auth.NewJWTAuthenticator(tokenCfg.Issuer, tokenCfg.Issuer).WithClock(clock.Now)
	resetTokens := auth.NewResetTokenGenerator(
		tokenCfg.PasswordResetTokenSecret,
		tokenCfg.Issuer,
		tokenCfg.PasswordResetTokenExpiresIn,
		clock.Now,
	)
	logger := zerolog.Nop()
	sender := &recordingSender{}

	repo := repository.NewUserMemoryRepository()
	accounts := NewAccountUsecase(repo, hasher)
	authUC := NewAuthUsecase(accounts, repo, hasher, jwtAuth, tokenCfg)
	resets := NewPasswordResetUsecase(
		accounts,
		authUC,
		resetTokens,
		fragment,
		sender,
		"https://accounts.example.com/api/user/reset/",
		&logger,
	)

	return &fixture{
		clock:    clock,
		repo:     repo,
		accounts: accounts,
		auth:     authUC,
		resets:   resets,
		sender:   sender,
		jwtAuth:  jwtAuth,
		tokenCfg: tokenCfg,
	}
}

func aliceParams() CreateUserParams {
	return CreateUserParams{
		Email:                "alice@example.com",
		FirstName:            "Alice",
		LastName:             "Liddell",
		DateOfBirth:          time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC),
		Password:             "Secret123",
		PasswordConfirmation: "Secret123",
	}
}

func (f *fixture) registerAlice(t *testing.T) *model.User {
	t.Helper()

	user, err := f.accounts.CreateUser(context.Background(), aliceParams())
	require.NoError(t, err)
	return user
}
