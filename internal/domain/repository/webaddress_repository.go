// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"membership/internal/domain/entity"
)

// ErrWebAddressNotFound is returned when a web address is not found.
var ErrWebAddressNotFound = errors.New("web address not found")

// WebAddressRepository defines the interface for web address persistence.
type WebAddressRepository interface {
	// CreateWebAddress persists a new web address and backfills the generated id.
	CreateWebAddress(ctx context.Context, webAddress *entity.WebAddress) error

	// FindWebAddressByID retrieves a web address by its numeric id.
	FindWebAddressByID(ctx context.Context, id int) (*entity.WebAddress, error)

	// FindWebAddressByURL retrieves a web address by its unique URL.
	FindWebAddressByURL(ctx context.Context, url string) (*entity.WebAddress, error)

	// UpdateWebAddress updates an existing web address record.
	UpdateWebAddress(ctx context.Context, webAddress *entity.WebAddress) error
}
