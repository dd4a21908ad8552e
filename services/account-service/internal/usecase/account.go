package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/vasapolrittideah/account-api/services/account-service/internal/model"
	"github.com/vasapolrittideah/account-api/services/account-service/internal/repository"
)

// PasswordHasher hashes and verifies passwords. Implemented by security.Argon2Hasher.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, encodedHash string) (bool, error)
}

// AccountUsecase owns the canonical user records.
type AccountUsecase interface {
	// CreateUser validates params, hashes the password and persists a new active user.
	CreateUser(ctx context.Context, params CreateUserParams) (*model.User, error)
	// CreateAdmin creates a user whose confirmation equals its password and flags it as admin.
	CreateAdmin(ctx context.Context, params CreateAdminParams) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UserExists(ctx context.Context, email string) (bool, error)
}

// CreateUserParams defines the parameters for creating a user.
type CreateUserParams struct {
	Email                string
	FirstName            string
	LastName             string
	DateOfBirth          time.Time
	Password             string
	PasswordConfirmation string
}

// CreateAdminParams defines the parameters for creating an administrator.
type CreateAdminParams struct {
	Email       string
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Password    string
}

type accountUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
}

// NewAccountUsecase creates a new instance of AccountUsecase.
func NewAccountUsecase(userRepo repository.UserRepository, hasher PasswordHasher) AccountUsecase {
	return &accountUsecase{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

func (u *accountUsecase) CreateUser(ctx context.Context, params CreateUserParams) (*model.User, error) {
	return u.create(ctx, params, false)
}

func (u *accountUsecase) CreateAdmin(ctx context.Context, params CreateAdminParams) (*model.User, error) {
	return u.create(ctx, CreateUserParams{
		Email:                params.Email,
		FirstName:            params.FirstName,
		LastName:             params.LastName,
		DateOfBirth:          params.DateOfBirth,
		Password:             params.Password,
		PasswordConfirmation: params.Password,
	}, true)
}

func (u *accountUsecase) create(ctx context.Context, params CreateUserParams, isAdmin bool) (*model.User, error) {
	email := model.NormalizeEmail(params.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if params.Password == "" {
		return nil, ErrPasswordRequired
	}
	if params.Password != params.PasswordConfirmation {
		return nil, ErrPasswordMismatch
	}

	passwordHash, err := u.hasher.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		DateOfBirth:  params.DateOfBirth,
		IsActive:     true,
		IsAdmin:      isAdmin,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}

		return nil, err
	}

	return user, nil
}

func (u *accountUsecase) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (u *accountUsecase) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (u *accountUsecase) UserExists(ctx context.Context, email string) (bool, error) {
	if _, err := u.GetUserByEmail(ctx, email); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
