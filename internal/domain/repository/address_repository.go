// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"membership/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAddressNotFound is returned when an address is not found.
var ErrAddressNotFound = errors.New("address not found")

// AddressRepository defines the interface for postal address persistence.
// Addresses are created once, mutated in place, and never deleted.
type AddressRepository interface {
	// CreateAddress persists a new address and backfills the generated id.
	CreateAddress(ctx context.Context, address *entity.Address) error

	// FindAddressByID retrieves an address by its numeric id, with the country
	// reference resolved.
	FindAddressByID(ctx context.Context, id int) (*entity.Address, error)

	// FindAddressByToken retrieves an address by its opaque lookup token.
	FindAddressByToken(ctx context.Context, token uuid.UUID) (*entity.Address, error)

	// FindAddressesByEmailID retrieves all addresses owned by an email address.
	FindAddressesByEmailID(ctx context.Context, emailID int) ([]*entity.Address, error)

	// UpdateAddress updates an existing address record in place.
	UpdateAddress(ctx context.Context, address *entity.Address) error
}
