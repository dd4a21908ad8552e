package model

import (
	"strings"
	"time"
)

// DateLayout is the wire format of DateOfBirth.
const DateLayout = "2006-01-02"

// User represents an account holder.
type User struct {
	ID           int64      `bson:"_id"`
	Email        string     `bson:"email"`
	PasswordHash string     `bson:"password_hash"`
	FirstName    string     `bson:"first_name"`
	LastName     string     `bson:"last_name"`
	DateOfBirth  time.Time  `bson:"date_of_birth"`
	IsActive     bool       `bson:"is_active"`
	IsAdmin      bool       `bson:"is_admin"`
	LastLoginAt  *time.Time `bson:"last_login_at,omitempty"`
	CreatedAt    time.Time  `bson:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at"`
}

func (u *User) String() string { return u.Email }

// IsStaff reports staff-level capability. All admins are staff.
func (u *User) IsStaff() bool { return u.IsAdmin }

// HasPerm reports whether the user holds a specific permission. Only admins hold any.
func (u *User) HasPerm(_ string) bool { return u.IsAdmin }

// HasModulePerms reports whether the user may view the given app at all.
func (u *User) HasModulePerms(_ string) bool { return true }

// NormalizeEmail trims whitespace and lower-cases the domain part. The local part is kept
// as given.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}

	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
