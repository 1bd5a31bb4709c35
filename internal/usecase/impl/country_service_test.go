package impl

import (
	"context"
	"testing"

	"membership/internal/domain/entity"
	domainerrors "membership/internal/domain/errors"
	"membership/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCountryService(t *testing.T) usecase.CountryUsecase {
	t.Helper()

	return NewCountryService(CountryServiceParams{
		CountryRepo: newFakeCountryRepo(
			&entity.Country{ID: 1, Name: "United Kingdom"},
			&entity.Country{ID: 2, Name: "France"},
		),
	})
}

func TestCountryService_GetByID(t *testing.T) {
	service := createTestCountryService(t)
	ctx := context.Background()

	country, err := service.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "United Kingdom", country.Name)

	_, err = service.GetByID(ctx, 99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestCountryService_GetByName(t *testing.T) {
	service := createTestCountryService(t)
	ctx := context.Background()

	country, err := service.GetByName(ctx, "France")
	require.NoError(t, err)
	assert.Equal(t, 2, country.ID)

	_, err = service.GetByName(ctx, "Atlantis")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestCountryService_List(t *testing.T) {
	service := createTestCountryService(t)

	countries, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, countries, 2)
	assert.Equal(t, "France", countries[0].Name)
	assert.Equal(t, "United Kingdom", countries[1].Name)
}
