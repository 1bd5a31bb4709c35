package usecase

import (
	"context"

	"membership/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateAddressInput defines the data required to record a postal address. The
// owning email id and country id are mandatory for every variant.
type CreateAddressInput struct {
	EmailID   int
	CountryID int
	Title     string
	FirstName string
	LastName  string
	HouseName string
	Street    string
	Town      string
	City      string
	County    string
	Postcode  string
}

// UpdateAddressInput defines the data required to rewrite an existing address.
type UpdateAddressInput struct {
	ID        int
	CountryID int
	Title     string
	FirstName string
	LastName  string
	HouseName string
	Street    string
	Town      string
	City      string
	County    string
	Postcode  string
}

// AddressUsecase defines the business operations for postal addresses.
type AddressUsecase interface {
	// Create records a full postal address. House name, street, city, county
	// and postcode are mandatory; blank values are rejected.
	Create(ctx context.Context, input *CreateAddressInput) (*entity.Address, error)

	// CreateCountryOnly records an address carrying only a country reference.
	// All free-text fields are forced empty regardless of input.
	CreateCountryOnly(ctx context.Context, emailID, countryID int) (*entity.Address, error)

	// Update rewrites a full address in place under the same validation rules
	// as Create.
	Update(ctx context.Context, input *UpdateAddressInput) (*entity.Address, error)

	// UpdateCountryOnly changes the country of a country-only address. It fails
	// when the stored record has been populated into a full address.
	UpdateCountryOnly(ctx context.Context, addressID, countryID int) (*entity.Address, error)

	// ResolveByID retrieves an address by its numeric id.
	ResolveByID(ctx context.Context, id int) (*entity.Address, error)

	// ResolveByToken retrieves an address by its opaque lookup token.
	ResolveByToken(ctx context.Context, token uuid.UUID) (*entity.Address, error)
}
