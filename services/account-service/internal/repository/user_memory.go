package repository

import (
	"context"
	"sync"
	"time"

	"github.com/vasapolrittideah/account-api/services/account-service/internal/model"
)

type userMemoryRepository struct {
	mu      sync.RWMutex
	lastID  int64
	byID    map[int64]*model.User
	byEmail map[string]int64
	now     func() time.Time
}

// NewUserMemoryRepository creates a process-local user repository. Users are lost on restart.
func NewUserMemoryRepository() UserRepository {
	return &userMemoryRepository{
		byID:    make(map[int64]*model.User),
		byEmail: make(map[string]int64),
		now:     time.Now,
	}
}

func cloneUser(u *model.User) *model.User {
	c := *u
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		c.LastLoginAt = &t
	}
	return &c
}

func (r *userMemoryRepository) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return nil, ErrDuplicateEmail
	}

	r.lastID++
	now := r.now().UTC()
	user.ID = r.lastID
	user.CreatedAt = now
	user.UpdatedAt = now

	r.byID[user.ID] = cloneUser(user)
	r.byEmail[user.Email] = user.ID

	return cloneUser(user), nil
}

func (r *userMemoryRepository) GetUser(_ context.Context, id int64) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *userMemoryRepository) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *userMemoryRepository) UpdateUser(_ context.Context, id int64, params UpdateUserParams) (*model.User, error) {
	if len(params.toSet()) == 0 {
		return nil, ErrNothingToApply
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	if params.PasswordHash != nil {
		u.PasswordHash = *params.PasswordHash
	}
	if params.FirstName != nil {
		u.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		u.LastName = *params.LastName
	}
	if params.DateOfBirth != nil {
		u.DateOfBirth = *params.DateOfBirth
	}
	if params.IsActive != nil {
		u.IsActive = *params.IsActive
	}
	if params.IsAdmin != nil {
		u.IsAdmin = *params.IsAdmin
	}
	if params.LastLoginAt != nil {
		t := *params.LastLoginAt
		u.LastLoginAt = &t
	}
	u.UpdatedAt = r.now().UTC()

	return cloneUser(u), nil
}
