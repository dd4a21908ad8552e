package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vasapolrittideah/account-api/services/account-service/internal/config"
	"github.com/vasapolrittideah/account-api/services/account-service/internal/model"
	"github.com/vasapolrittideah/account-api/services/account-service/internal/repository"
	"github.com/vasapolrittideah/account-api/shared/auth"
	"github.com/vasapolrittideah/account-api/shared/security"
)

// AuthUsecase defines the credential operations: registration, login, password change and
// session token issuance.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) (*model.User, *auth.Tokens, error)
	// VerifyLogin checks email and password and records the login time.
	VerifyLogin(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, params LoginParams) (*model.User, *auth.Tokens, error)
	// ChangePassword overwrites the password hash of user.
	ChangePassword(ctx context.Context, user *model.User, newPassword, confirmation string) error
	RefreshTokens(ctx context.Context, refreshToken string) (*auth.Tokens, error)
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// RegisterParams defines the parameters for user registration.
type RegisterParams = CreateUserParams

// RefreshTokenAudience is the audience of refresh tokens. Access tokens use the audience of the
// authenticator passed to NewAuthUsecase, so neither kind verifies as the other.
const RefreshTokenAudience = "refresh"

type authUsecase struct {
	accounts    AccountUsecase
	userRepo    repository.UserRepository
	hasher      PasswordHasher
	jwtAuth     auth.JWTAuthenticator
	refreshAuth auth.JWTAuthenticator
	tokenCfg    config.TokenConfig
}

func NewAuthUsecase(
	accounts AccountUsecase,
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	jwtAuth auth.JWTAuthenticator,
	tokenCfg config.TokenConfig,
) AuthUsecase {
	return &authUsecase{
		accounts:    accounts,
		userRepo:    userRepo,
		hasher:      hasher,
		jwtAuth:     jwtAuth,
		refreshAuth: auth.NewJWTAuthenticator(RefreshTokenAudience, jwtAuth.Issuer()).WithClock(jwtAuth.Now),
		tokenCfg:    tokenCfg,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*model.User, *auth.Tokens, error) {
	user, err := u.accounts.CreateUser(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := u.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

func (u *authUsecase) VerifyLogin(ctx context.Context, email, password string) (*model.User, error) {
	user, err := u.accounts.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	ok, err := u.hasher.VerifyPassword(password, user.PasswordHash)
	if err != nil && !errors.Is(err, security.ErrEmptyHash) {
		return nil, err
	}
	if !ok || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	now := u.jwtAuth.Now().UTC()
	updated, err := u.userRepo.UpdateUser(ctx, user.ID, repository.UpdateUserParams{LastLoginAt: &now})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*model.User, *auth.Tokens, error) {
	user, err := u.VerifyLogin(ctx, params.Email, params.Password)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := u.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

func (u *authUsecase) ChangePassword(
	ctx context.Context,
	user *model.User,
	newPassword, confirmation string,
) error {
	if newPassword == "" {
		return ErrPasswordRequired
	}
	if newPassword != confirmation {
		return ErrPasswordMismatch
	}

	passwordHash, err := u.hasher.HashPassword(newPassword)
	if err != nil {
		return err
	}

	updated, err := u.userRepo.UpdateUser(ctx, user.ID, repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return err
	}

	*user = *updated
	return nil
}

func (u *authUsecase) RefreshTokens(ctx context.Context, refreshToken string) (*auth.Tokens, error) {
	claims := &auth.AccessClaims{}
	if _, err := u.refreshAuth.ValidateTokenWithClaims(
		refreshToken,
		[]byte(u.tokenCfg.RefreshTokenSecret),
		claims,
	); err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := u.accounts.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}

		return nil, err
	}

	if !user.IsActive {
		return nil, ErrInvalidRefreshToken
	}

	return u.issueTokens(user)
}

func (u *authUsecase) issueTokens(user *model.User) (*auth.Tokens, error) {
	accessToken, err := u.generateToken(
		&u.jwtAuth,
		user,
		u.tokenCfg.AccessTokenSecret,
		u.tokenCfg.AccessTokenExpiresIn,
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.generateToken(
		&u.refreshAuth,
		user,
		u.tokenCfg.RefreshTokenSecret,
		u.tokenCfg.RefreshTokenExpiresIn,
	)
	if err != nil {
		return nil, err
	}

	return &auth.Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (u *authUsecase) generateToken(
	jwtAuth *auth.JWTAuthenticator,
	user *model.User,
	secret string,
	expiresIn time.Duration,
) (string, error) {
	now := jwtAuth.Now()
	claims := auth.AccessClaims{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    jwtAuth.Issuer(),
			Audience:  jwt.ClaimStrings{jwtAuth.Audience()},
		},
	}

	return jwtAuth.GenerateToken(claims, []byte(secret))
}
