package security

import (
	"testing"

	"github.com/matthewhartstonge/argon2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHasher() *Argon2Hasher {
	return NewArgon2Hasher(argon2.Config{
		HashLength:  32,
		SaltLength:  16,
		TimeCost:    1,
		MemoryCost:  1024,
		Parallelism: 1,
		Mode:        argon2.ModeArgon2id,
		Version:     argon2.Version13,
	})
}

func TestArgon2Hasher_HashAndVerify(t *testing.T) {
	h := newTestHasher()

	hash, err := h.HashPassword("Secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123", hash)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := h.VerifyPassword("Secret123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2Hasher_SaltsEveryHash(t *testing.T) {
	h := newTestHasher()

	first, err := h.HashPassword("same")
	require.NoError(t, err)
	second, err := h.HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestArgon2Hasher_VerifyEmptyHash(t *testing.T) {
	ok, err := newTestHasher().VerifyPassword("x", "")
	assert.ErrorIs(t, err, ErrEmptyHash)
	assert.False(t, ok)
}

func TestArgon2Hasher_VerifyGarbageHash(t *testing.T) {
	_, err := newTestHasher().VerifyPassword("x", "not-an-argon2-hash")
	assert.Error(t, err)
}
