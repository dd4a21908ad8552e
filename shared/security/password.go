package security

import (
	"errors"

	"github.com/matthewhartstonge/argon2"
)

// ErrEmptyHash is returned when verifying against a user that has no usable password.
var ErrEmptyHash = errors.New("password hash is empty")

// Argon2Hasher hashes passwords with argon2id and stores them in the PHC encoded form,
// so the salt and cost parameters travel with the hash.
type Argon2Hasher struct {
	config argon2.Config
}

// NewArgon2Hasher creates a hasher using the given argon2 configuration.
func NewArgon2Hasher(config argon2.Config) *Argon2Hasher {
	return &Argon2Hasher{config: config}
}

// NewDefaultArgon2Hasher creates a hasher with the library's recommended argon2id defaults.
func NewDefaultArgon2Hasher() *Argon2Hasher {
	return NewArgon2Hasher(argon2.DefaultConfig())
}

// HashPassword returns the encoded argon2 hash of password. A fresh random salt is drawn on
// every call, so hashing the same password twice yields different strings.
func (h *Argon2Hasher) HashPassword(password string) (string, error) {
	encoded, err := h.config.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifyPassword reports whether password matches the encoded hash.
func (h *Argon2Hasher) VerifyPassword(password, encodedHash string) (bool, error) {
	if encodedHash == "" {
		return false, ErrEmptyHash
	}

	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
