package impl

import (
	"context"
	"strings"
	"testing"

	domainerrors "membership/internal/domain/errors"
	"membership/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestWebAddressService(t *testing.T) usecase.WebAddressUsecase {
	t.Helper()

	return NewWebAddressService(WebAddressServiceParams{
		WebAddressRepo: newFakeWebAddressRepo(),
		Logger:         newDiscardLogger(),
	})
}

func TestWebAddressService_Create(t *testing.T) {
	service := createTestWebAddressService(t)
	ctx := context.Background()

	webAddress, err := service.Create(ctx, "  https://example.com/catalogue  ")
	require.NoError(t, err)
	assert.NotZero(t, webAddress.ID)
	assert.Equal(t, "https://example.com/catalogue", webAddress.URL)
	assert.False(t, webAddress.IsDead)

	resolved, err := service.ResolveByURL(ctx, "https://example.com/catalogue")
	require.NoError(t, err)
	assert.Equal(t, webAddress.ID, resolved.ID)
}

func TestWebAddressService_Create_Invalid(t *testing.T) {
	service := createTestWebAddressService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"no scheme", "example.com/catalogue"},
		{"too long", "https://example.com/" + strings.Repeat("a", 2048)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(ctx, tt.url)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidArgument))
		})
	}
}

func TestWebAddressService_MarkDead(t *testing.T) {
	service := createTestWebAddressService(t)
	ctx := context.Background()

	webAddress, err := service.Create(ctx, "https://example.com/gone")
	require.NoError(t, err)

	dead, err := service.MarkDead(ctx, webAddress.ID)
	require.NoError(t, err)
	assert.True(t, dead.IsDead)

	// The transition is one-way and repeatable.
	dead, err = service.MarkDead(ctx, webAddress.ID)
	require.NoError(t, err)
	assert.True(t, dead.IsDead)

	resolved, err := service.ResolveByID(ctx, webAddress.ID)
	require.NoError(t, err)
	assert.True(t, resolved.IsDead)
}

func TestWebAddressService_MarkDead_Unknown(t *testing.T) {
	service := createTestWebAddressService(t)

	_, err := service.MarkDead(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
