package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)

	ok, legacy := VerifyPassword("correct horse", hash)
	assert.True(t, ok)
	assert.False(t, legacy)

	ok, _ = VerifyPassword("wrong horse", hash)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	first, err := HashPassword("same password", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("same password", bcrypt.MinCost)
	require.NoError(t, err)

	// per-call random salt makes the output non-deterministic
	assert.NotEqual(t, first, second)

	ok, _ := VerifyPassword("same password", first)
	assert.True(t, ok)
	ok, _ = VerifyPassword("same password", second)
	assert.True(t, ok)
}

func TestVerifyPasswordMalformed(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{"empty", ""},
		{"garbage", "not-a-hash"},
		{"legacy missing digest", "sha256$onlysalt"},
		{"legacy empty salt", "sha256$$deadbeef"},
		{"legacy non-hex digest", "sha256$salt$zzzz"},
		{"legacy truncated digest", "sha256$salt$deadbeef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, _ := VerifyPassword("anything", tt.stored)
			assert.False(t, ok)
		})
	}
}

func TestVerifyPasswordLegacy(t *testing.T) {
	stored := LegacyHash("geheim", "0123456789abcdef")

	ok, legacy := VerifyPassword("geheim", stored)
	assert.True(t, ok)
	assert.True(t, legacy)

	ok, legacy = VerifyPassword("falsch", stored)
	assert.False(t, ok)
	assert.True(t, legacy)
}
