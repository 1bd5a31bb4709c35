package impl

import (
	"context"

	"membership/internal/domain/entity"
	domainerrors "membership/internal/domain/errors"
	"membership/internal/domain/repository"
	"membership/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// countryService implements the CountryUsecase interface. Countries are
// read-only reference data, so the service is a thin lookup layer.
type countryService struct {
	countryRepo repository.CountryRepository
}

// CountryServiceParams holds dependencies for countryService, injected by Fx.
type CountryServiceParams struct {
	fx.In

	CountryRepo repository.CountryRepository
}

// NewCountryService is the constructor for countryService.
func NewCountryService(params CountryServiceParams) usecase.CountryUsecase {
	return &countryService{countryRepo: params.CountryRepo}
}

// GetByID retrieves a country by its numeric id.
func (srv *countryService) GetByID(ctx context.Context, id int) (*entity.Country, error) {
	country, err := srv.countryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCountryNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("country not found")
		}

		return nil, errors.Wrap(err, "failed to get country by id")
	}

	return country, nil
}

// GetByName retrieves a country by its display text.
func (srv *countryService) GetByName(ctx context.Context, name string) (*entity.Country, error) {
	country, err := srv.countryRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrCountryNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("country not found")
		}

		return nil, errors.Wrap(err, "failed to get country by name")
	}

	return country, nil
}

// List retrieves all countries ordered by display text.
func (srv *countryService) List(ctx context.Context) ([]*entity.Country, error) {
	countries, err := srv.countryRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list countries")
	}

	return countries, nil
}
