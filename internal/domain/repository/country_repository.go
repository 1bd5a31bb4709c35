// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"membership/internal/domain/entity"
)

// ErrCountryNotFound is returned when a country is not found.
var ErrCountryNotFound = errors.New("country not found")

// CountryRepository provides lookup-only access to country reference data.
// The data is immutable from this layer's perspective.
type CountryRepository interface {
	// FindByID retrieves a country by its numeric id.
	FindByID(ctx context.Context, id int) (*entity.Country, error)

	// FindByName retrieves a country by its unique display text.
	FindByName(ctx context.Context, name string) (*entity.Country, error)

	// List retrieves all countries ordered by display text.
	List(ctx context.Context) ([]*entity.Country, error)
}
