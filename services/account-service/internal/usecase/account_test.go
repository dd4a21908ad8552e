package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountUsecase_CreateUser(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	params := aliceParams()
	params.Email = "  alice@EXAMPLE.com "
	user, err := f.accounts.CreateUser(ctx, params)
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsAdmin)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "Secret123", user.PasswordHash)
	assert.NotContains(t, user.PasswordHash, "Secret123")
}

func TestAccountUsecase_CreateUser_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *CreateUserParams)
		wantErr error
	}{
		{
			name:    "password mismatch",
			mutate:  func(p *CreateUserParams) { p.PasswordConfirmation = "Other123" },
			wantErr: ErrPasswordMismatch,
		},
		{
			name:    "empty email",
			mutate:  func(p *CreateUserParams) { p.Email = "   " },
			wantErr: ErrEmailRequired,
		},
		{
			name: "empty password",
			mutate: func(p *CreateUserParams) {
				p.Password = ""
				p.PasswordConfirmation = ""
			},
			wantErr: ErrPasswordRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			ctx := context.Background()

			params := aliceParams()
			tt.mutate(&params)

			_, err := f.accounts.CreateUser(ctx, params)
			assert.ErrorIs(t, err, tt.wantErr)

			exists, err := f.accounts.UserExists(ctx, "alice@example.com")
			require.NoError(t, err)
			assert.False(t, exists, "no user may be created on a failed registration")
		})
	}
}

func TestAccountUsecase_CreateUser_DuplicateEmail(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.registerAlice(t)

	params := aliceParams()
	params.Email = "alice@Example.COM"
	_, err := f.accounts.CreateUser(ctx, params)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAccountUsecase_CreateAdmin(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	admin, err := f.accounts.CreateAdmin(ctx, CreateAdminParams{
		Email:    "root@example.com",
		Password: "RootPass1",
	})
	require.NoError(t, err)

	assert.True(t, admin.IsAdmin)
	assert.True(t, admin.IsStaff())
	assert.True(t, admin.HasPerm("anything"))

	reloaded, err := f.accounts.GetUser(ctx, admin.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsAdmin)
}

func TestAccountUsecase_Lookups(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	alice := f.registerAlice(t)

	byID, err := f.accounts.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.Email, byID.Email)

	byEmail, err := f.accounts.GetUserByEmail(ctx, "alice@EXAMPLE.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byEmail.ID)

	_, err = f.accounts.GetUser(ctx, alice.ID+100)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.accounts.GetUserByEmail(ctx, "nouser@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	exists, err := f.accounts.UserExists(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}
