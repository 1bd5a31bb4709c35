package auth

import (
	"testing"
	"time"

	"membership/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Session = "test-session-secret"
	cfg.Auth = &config.AuthConfig{SessionTTL: 30 * time.Minute}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{SessionTTL: 30 * time.Minute}

	_, err := NewJWTService(cfg)
	require.Error(t, err)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService(t)
	providerKey := uuid.New()

	token, err := svc.GenerateSessionToken(42, providerKey)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, providerKey, claims.ProviderKey)
}

func TestJWTService_ValidateToken_Rejections(t *testing.T) {
	svc := newTestJWTService(t)

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)

	// A token signed under a different secret fails validation.
	otherCfg := &config.Config{}
	otherCfg.SecretKey.Session = "another-secret"
	otherCfg.Auth = &config.AuthConfig{SessionTTL: 30 * time.Minute}
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := other.GenerateSessionToken(42, uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}

func TestJWTService_GetSessionDuration(t *testing.T) {
	svc := newTestJWTService(t)

	assert.Equal(t, 30*time.Minute, svc.GetSessionDuration())
}
