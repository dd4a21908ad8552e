package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/account-api/services/account-service/internal/model"
	"github.com/vasapolrittideah/account-api/shared/auth"
	"github.com/vasapolrittideah/account-api/shared/identity"
	"github.com/vasapolrittideah/account-api/shared/mailer"
)

const (
	resetEmailSubject = "Reset Your Password"
	resetEmailBody    = "Click Following Link to Reset Your Password %s"
)

// PasswordResetUsecase defines the business logic for password reset links. Nothing is stored
// per link: a token stays valid only while the user's bound state is unchanged and it has not
// expired.
type PasswordResetUsecase interface {
	// RequestPasswordReset mints a link for the user registered under email and mails it.
	RequestPasswordReset(ctx context.Context, email string) (*ResetLink, error)

	// ValidatePasswordResetToken checks a link without consuming it.
	ValidatePasswordResetToken(ctx context.Context, uid, token string) (*model.User, error)

	// ResetPassword consumes a link and sets the new password. A link works at most once.
	ResetPassword(ctx context.Context, params ResetPasswordParams) error
}

// ResetLink is what a user receives to reset their password.
type ResetLink struct {
	UID   string
	Token string
	URL   string
}

// ResetPasswordParams defines the parameters for consuming a reset link.
type ResetPasswordParams struct {
	UID                  string
	Token                string
	Password             string
	PasswordConfirmation string
}

// StateFragment renders the part of a user that reset tokens are bound to. Every credential
// affecting change must change its output.
type StateFragment func(user *model.User) string

// DefaultStateFragment binds tokens to the password hash, last login, active flag and email.
func DefaultStateFragment(user *model.User) string {
	lastLogin := ""
	if user.LastLoginAt != nil {
		lastLogin = strconv.FormatInt(user.LastLoginAt.UnixMilli(), 10)
	}

	return strings.Join([]string{
		strconv.FormatInt(user.ID, 10),
		user.PasswordHash,
		lastLogin,
		strconv.FormatBool(user.IsActive),
		user.Email,
	}, "|")
}

// StateFragmentWithoutLastLogin is DefaultStateFragment minus the last login, so logging in
// leaves outstanding links usable.
func StateFragmentWithoutLastLogin(user *model.User) string {
	return strings.Join([]string{
		strconv.FormatInt(user.ID, 10),
		user.PasswordHash,
		strconv.FormatBool(user.IsActive),
		user.Email,
	}, "|")
}

type passwordResetUsecase struct {
	accounts    AccountUsecase
	credentials AuthUsecase
	tokens      *auth.ResetTokenGenerator
	fragment    StateFragment
	sender      mailer.Sender
	resetURL    string
	logger      *zerolog.Logger
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase. resetURL is the base
// the encoded uid and token are appended to. A nil fragment selects DefaultStateFragment.
func NewPasswordResetUsecase(
	accounts AccountUsecase,
	credentials AuthUsecase,
	tokens *auth.ResetTokenGenerator,
	fragment StateFragment,
	sender mailer.Sender,
	resetURL string,
	logger *zerolog.Logger,
) PasswordResetUsecase {
	if fragment == nil {
		fragment = DefaultStateFragment
	}

	return &passwordResetUsecase{
		accounts:    accounts,
		credentials: credentials,
		tokens:      tokens,
		fragment:    fragment,
		sender:      sender,
		resetURL:    strings.TrimRight(resetURL, "/"),
		logger:      logger,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) (*ResetLink, error) {
	user, err := u.accounts.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, err
	}

	token, err := u.tokens.MakeToken(strconv.FormatInt(user.ID, 10), u.fragment(user))
	if err != nil {
		return nil, err
	}

	uid := identity.Encode(user.ID)
	link := &ResetLink{
		UID:   uid,
		Token: token,
		URL:   fmt.Sprintf("%s/%s/%s", u.resetURL, uid, token),
	}

	if err := u.sender.Send(ctx, mailer.Notification{
		Subject: resetEmailSubject,
		Body:    fmt.Sprintf(resetEmailBody, link.URL),
		ToEmail: user.Email,
	}); err != nil {
		return nil, fmt.Errorf("failed to send password reset email: %w", err)
	}

	u.logger.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("password reset link sent")

	return link, nil
}

func (u *passwordResetUsecase) ValidatePasswordResetToken(
	ctx context.Context,
	uid, token string,
) (*model.User, error) {
	user, err := u.resolve(ctx, uid)
	if err != nil {
		return nil, err
	}

	if !u.checkToken(user, token) {
		return nil, ErrInvalidOrExpiredToken
	}

	return user, nil
}

// ResetPassword checks the confirmation before touching the link, so a mismatch answers the
// same way whether or not the uid names a user.
func (u *passwordResetUsecase) ResetPassword(ctx context.Context, params ResetPasswordParams) error {
	if params.Password != params.PasswordConfirmation {
		return ErrPasswordMismatch
	}

	user, err := u.resolve(ctx, params.UID)
	if err != nil {
		return err
	}

	if !u.checkToken(user, params.Token) {
		return ErrInvalidOrExpiredToken
	}

	if err := u.credentials.ChangePassword(ctx, user, params.Password, params.PasswordConfirmation); err != nil {
		return err
	}

	u.logger.Info().Int64("user_id", user.ID).Msg("password reset completed")

	return nil
}

// resolve decodes uid and loads its user.
func (u *passwordResetUsecase) resolve(ctx context.Context, uid string) (*model.User, error) {
	id, err := identity.Decode(uid)
	if err != nil {
		return nil, ErrMalformedLink
	}

	user, err := u.accounts.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}

	return user, nil
}

func (u *passwordResetUsecase) checkToken(user *model.User, token string) bool {
	return u.tokens.CheckToken(token, strconv.FormatInt(user.ID, 10), u.fragment(user))
}
