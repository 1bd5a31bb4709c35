package auth

import (
	"testing"

	"membership/config"
	"membership/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHasher(strength *config.PasswordStrengthConfig) service.PasswordHasher {
	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{BcryptCost: 4}
	cfg.PasswordStrength = strength

	return NewBcryptHasher(cfg)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := newTestHasher(nil)

	hash, err := hasher.Hash("correct horse 9")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse 9", hash)

	assert.True(t, hasher.Check("correct horse 9", hash))
	assert.False(t, hasher.Check("wrong password", hash))

	// Two hashes of the same password differ because of the salt.
	other, err := hasher.Hash("correct horse 9")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestBcryptHasher_ValidatePasswordStrength_Defaults(t *testing.T) {
	hasher := newTestHasher(nil)

	require.NoError(t, hasher.ValidatePasswordStrength("correct horse 9"))

	tests := []struct {
		name     string
		password string
	}{
		{"too short", "abc1"},
		{"no digit", "correct horse battery"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := hasher.ValidatePasswordStrength(tt.password)
			require.Error(t, err)

			var providerErr *service.ProviderError
			require.True(t, errors.As(err, &providerErr))
			assert.Equal(t, service.ProviderCodeInvalidPassword, providerErr.Code)
		})
	}
}

func TestBcryptHasher_ValidatePasswordStrength_Policy(t *testing.T) {
	hasher := newTestHasher(&config.PasswordStrengthConfig{
		MinLength:        12,
		MaxLength:        64,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
		RequireSpecial:   true,
	})

	require.NoError(t, hasher.ValidatePasswordStrength("Tr0ub4dor&thirty"))

	tests := []struct {
		name     string
		password string
	}{
		{"below minimum length", "Tr0ub4dor&"},
		{"missing uppercase", "tr0ub4dor&thirty"},
		{"missing special", "Tr0ub4dor4thirty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := hasher.ValidatePasswordStrength(tt.password)
			require.Error(t, err)

			var providerErr *service.ProviderError
			require.True(t, errors.As(err, &providerErr))
			assert.Equal(t, service.ProviderCodeInvalidPassword, providerErr.Code)
		})
	}
}
