package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		"alice@example.com":       "alice@example.com",
		"Alice@EXAMPLE.COM":       "Alice@example.com",
		"  bob@Example.Org  ":     "bob@example.org",
		"weird@local@Example.COM": "weird@local@example.com",
		"no-at-sign":              "no-at-sign",
		"":                        "",
	}

	for in, want := range cases {
		assert.Equal(t, want, NormalizeEmail(in), "input %q", in)
	}
}

func TestUser_Permissions(t *testing.T) {
	regular := &User{Email: "u@example.com"}
	admin := &User{Email: "a@example.com", IsAdmin: true}

	assert.False(t, regular.IsStaff())
	assert.False(t, regular.HasPerm("anything"))
	assert.True(t, regular.HasModulePerms("account"))

	assert.True(t, admin.IsStaff())
	assert.True(t, admin.HasPerm("anything"))
	assert.True(t, admin.HasModulePerms("account"))

	assert.Equal(t, "u@example.com", regular.String())
}
