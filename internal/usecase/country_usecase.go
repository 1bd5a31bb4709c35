package usecase

import (
	"context"

	"membership/internal/domain/entity"
)

// CountryUsecase exposes the country reference data. Countries are lookup-only;
// nothing in the application mutates them.
type CountryUsecase interface {
	// GetByID retrieves a country by its numeric id.
	GetByID(ctx context.Context, id int) (*entity.Country, error)

	// GetByName retrieves a country by its display text.
	GetByName(ctx context.Context, name string) (*entity.Country, error)

	// List retrieves all countries ordered by display text.
	List(ctx context.Context) ([]*entity.Country, error)
}
