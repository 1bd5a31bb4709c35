package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "membership/internal/delivery/context"
	"membership/internal/domain/entity"
	domainerrors "membership/internal/domain/errors"
	"membership/internal/domain/repository"
	"membership/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	maxAddressTitle = 20
	maxAddressName  = 50
	maxAddressField = 100
	maxPostcode     = 20
)

// addressService implements the AddressUsecase interface.
type addressService struct {
	txManager   repository.TransactionManager
	addressRepo repository.AddressRepository
	contactRepo repository.ContactRepository
	countryRepo repository.CountryRepository
	logger      *slog.Logger
}

// AddressServiceParams holds dependencies for addressService, injected by Fx.
type AddressServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AddressRepo repository.AddressRepository
	ContactRepo repository.ContactRepository
	CountryRepo repository.CountryRepository
	Logger      *slog.Logger
}

// NewAddressService is the constructor for addressService.
func NewAddressService(params AddressServiceParams) usecase.AddressUsecase {
	return &addressService{
		txManager:   params.TxManager,
		addressRepo: params.AddressRepo,
		contactRepo: params.ContactRepo,
		countryRepo: params.CountryRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *addressService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create records a full postal address.
func (srv *addressService) Create(ctx context.Context, input *usecase.CreateAddressInput) (*entity.Address, error) {
	if err := validateAddressFields(input.Title, input.FirstName, input.LastName, input.HouseName,
		input.Street, input.Town, input.City, input.County, input.Postcode, false); err != nil {
		return nil, err
	}

	var created *entity.Address
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		address, err := srv.buildAddress(ctx, repoFactory, input.EmailID, input.CountryID)
		if err != nil {
			return err
		}

		address.Title = input.Title
		address.FirstName = input.FirstName
		address.LastName = input.LastName
		address.HouseName = input.HouseName
		address.Street = input.Street
		address.Town = input.Town
		address.City = input.City
		address.County = input.County
		address.Postcode = input.Postcode

		if err := repoFactory.AddressRepo().CreateAddress(ctx, address); err != nil {
			return errors.Wrap(err, "failed to create address")
		}
		created = address

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to create address", slog.Int("emailID", input.EmailID), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("Address created", slog.Int("addressID", created.ID))

	return created, nil
}

// CreateCountryOnly records an address carrying only a country reference.
func (srv *addressService) CreateCountryOnly(ctx context.Context, emailID, countryID int) (*entity.Address, error) {
	var created *entity.Address
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		address, err := srv.buildAddress(ctx, repoFactory, emailID, countryID)
		if err != nil {
			return err
		}

		if err := repoFactory.AddressRepo().CreateAddress(ctx, address); err != nil {
			return errors.Wrap(err, "failed to create country-only address")
		}
		created = address

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to create country-only address", slog.Int("emailID", emailID), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("Country-only address created", slog.Int("addressID", created.ID))

	return created, nil
}

// Update rewrites a full address in place.
func (srv *addressService) Update(ctx context.Context, input *usecase.UpdateAddressInput) (*entity.Address, error) {
	if err := validateAddressFields(input.Title, input.FirstName, input.LastName, input.HouseName,
		input.Street, input.Town, input.City, input.County, input.Postcode, false); err != nil {
		return nil, err
	}

	var updated *entity.Address
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		address, err := addressRepo.FindAddressByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, repository.ErrAddressNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("address not found")
			}

			return errors.Wrap(err, "failed to load address for update")
		}

		country, err := repoFactory.CountryRepo().FindByID(ctx, input.CountryID)
		if err != nil {
			if errors.Is(err, repository.ErrCountryNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("country not found")
			}

			return errors.Wrap(err, "failed to load country for address update")
		}

		address.CountryID = country.ID
		address.Country = country
		address.Title = input.Title
		address.FirstName = input.FirstName
		address.LastName = input.LastName
		address.HouseName = input.HouseName
		address.Street = input.Street
		address.Town = input.Town
		address.City = input.City
		address.County = input.County
		address.Postcode = input.Postcode

		if err := addressRepo.UpdateAddress(ctx, address); err != nil {
			return errors.Wrap(err, "failed to update address")
		}
		updated = address

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to update address", slog.Int("addressID", input.ID), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("Address updated", slog.Int("addressID", updated.ID))

	return updated, nil
}

// UpdateCountryOnly changes the country of a country-only address. The stored
// record must still classify as country-only at the time of the call.
func (srv *addressService) UpdateCountryOnly(ctx context.Context, addressID, countryID int) (*entity.Address, error) {
	var updated *entity.Address
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		address, err := addressRepo.FindAddressByID(ctx, addressID)
		if err != nil {
			if errors.Is(err, repository.ErrAddressNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("address not found")
			}

			return errors.Wrap(err, "failed to load address for country update")
		}

		if !address.IsCountryOnly() {
			return domainerrors.ErrInvalidArgument.WrapMessage("is not a country only address")
		}

		country, err := repoFactory.CountryRepo().FindByID(ctx, countryID)
		if err != nil {
			if errors.Is(err, repository.ErrCountryNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("country not found")
			}

			return errors.Wrap(err, "failed to load country for address update")
		}

		address.CountryID = country.ID
		address.Country = country

		if err := addressRepo.UpdateAddress(ctx, address); err != nil {
			return errors.Wrap(err, "failed to update country-only address")
		}
		updated = address

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to update country-only address", slog.Int("addressID", addressID), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("Country-only address updated", slog.Int("addressID", updated.ID))

	return updated, nil
}

// ResolveByID retrieves an address by its numeric id.
func (srv *addressService) ResolveByID(ctx context.Context, id int) (*entity.Address, error) {
	address, err := srv.addressRepo.FindAddressByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("address not found")
		}

		return nil, errors.Wrap(err, "failed to resolve address by id")
	}

	return address, nil
}

// ResolveByToken retrieves an address by its opaque lookup token.
func (srv *addressService) ResolveByToken(ctx context.Context, token uuid.UUID) (*entity.Address, error) {
	address, err := srv.addressRepo.FindAddressByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("address not found")
		}

		return nil, errors.Wrap(err, "failed to resolve address by token")
	}

	return address, nil
}

// buildAddress resolves the owning email and country and returns a fresh
// address entity with a new lookup token.
func (srv *addressService) buildAddress(ctx context.Context, repoFactory repository.RepositoryFactory, emailID, countryID int) (*entity.Address, error) {
	email, err := repoFactory.ContactRepo().FindEmailByID(ctx, emailID)
	if err != nil {
		if errors.Is(err, repository.ErrEmailNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("email address not found")
		}

		return nil, errors.Wrap(err, "failed to load email for address")
	}

	country, err := repoFactory.CountryRepo().FindByID(ctx, countryID)
	if err != nil {
		if errors.Is(err, repository.ErrCountryNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("country not found")
		}

		return nil, errors.Wrap(err, "failed to load country for address")
	}

	return &entity.Address{
		EmailID:   email.ID,
		CountryID: country.ID,
		Country:   country,
		Token:     uuid.New(),
	}, nil
}

// validateAddressFields enforces the field rules for full addresses. When
// blanksAllowed is false, house name, street, city, county and postcode must be
// present; the remaining fields are optional but bounded either way.
func validateAddressFields(title, firstName, lastName, houseName, street, town, city, county, postcode string, blanksAllowed bool) error {
	if !blanksAllowed {
		required := map[string]string{
			"house name": houseName,
			"street":     street,
			"city":       city,
			"county":     county,
			"postcode":   postcode,
		}
		for field, value := range required {
			if strings.TrimSpace(value) == "" {
				return domainerrors.ErrInvalidArgument.WrapMessage(field + " is required")
			}
		}
	}

	bounded := []struct {
		name  string
		value string
		max   int
	}{
		{"title", title, maxAddressTitle},
		{"first name", firstName, maxAddressName},
		{"last name", lastName, maxAddressName},
		{"house name", houseName, maxAddressField},
		{"street", street, maxAddressField},
		{"town", town, maxAddressField},
		{"city", city, maxAddressField},
		{"county", county, maxAddressField},
		{"postcode", postcode, maxPostcode},
	}
	for _, f := range bounded {
		if len(f.value) > f.max {
			return domainerrors.ErrInvalidArgument.WrapMessage(f.name + " is too long")
		}
	}

	return nil
}
