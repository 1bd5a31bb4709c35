package impl

import (
	"context"
	"testing"

	"membership/internal/domain/entity"
	domainerrors "membership/internal/domain/errors"
	"membership/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addressServiceFixtures struct {
	service usecase.AddressUsecase
	emailID int
}

func createTestAddressService(t *testing.T) addressServiceFixtures {
	t.Helper()

	contactRepo := newFakeContactRepo()
	addressRepo := newFakeAddressRepo()
	countryRepo := newFakeCountryRepo(
		&entity.Country{ID: 1, Name: "United Kingdom"},
		&entity.Country{ID: 2, Name: "France"},
	)
	factory := &fakeRepoFactory{
		contactRepo:    contactRepo,
		addressRepo:    addressRepo,
		userRepo:       newFakeUserRepo(contactRepo),
		countryRepo:    countryRepo,
		webAddressRepo: newFakeWebAddressRepo(),
	}

	email := &entity.EmailAddress{Address: "joe@example.com", ConfirmToken: uuid.New()}
	require.NoError(t, contactRepo.CreateEmail(context.Background(), email))

	service := NewAddressService(AddressServiceParams{
		TxManager:   &fakeTxManager{factory: factory},
		AddressRepo: addressRepo,
		ContactRepo: contactRepo,
		CountryRepo: countryRepo,
		Logger:      newDiscardLogger(),
	})

	return addressServiceFixtures{service: service, emailID: email.ID}
}

func validAddressInput(emailID int) *usecase.CreateAddressInput {
	return &usecase.CreateAddressInput{
		EmailID:   emailID,
		CountryID: 1,
		Title:     "Mr",
		FirstName: "Joe",
		LastName:  "Bloggs",
		HouseName: "1",
		Street:    "The Street",
		Town:      "Trumpington",
		City:      "Cambridge",
		County:    "Cambridgeshire",
		Postcode:  "CB1 1TT",
	}
}

func TestAddressService_Create(t *testing.T) {
	fx := createTestAddressService(t)

	address, err := fx.service.Create(context.Background(), validAddressInput(fx.emailID))
	require.NoError(t, err)

	assert.NotZero(t, address.ID)
	assert.NotEqual(t, uuid.Nil, address.Token)
	assert.Equal(t, fx.emailID, address.EmailID)
	assert.Equal(t, "United Kingdom", address.CountryName())
	assert.False(t, address.IsCountryOnly())
}

func TestAddressService_Create_MissingRequiredFields(t *testing.T) {
	fx := createTestAddressService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*usecase.CreateAddressInput)
	}{
		{"missing house name", func(in *usecase.CreateAddressInput) { in.HouseName = "" }},
		{"missing street", func(in *usecase.CreateAddressInput) { in.Street = " " }},
		{"missing city", func(in *usecase.CreateAddressInput) { in.City = "" }},
		{"missing county", func(in *usecase.CreateAddressInput) { in.County = "" }},
		{"missing postcode", func(in *usecase.CreateAddressInput) { in.Postcode = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validAddressInput(fx.emailID)
			tt.mutate(input)

			_, err := fx.service.Create(ctx, input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidArgument))
		})
	}
}

func TestAddressService_Create_UnknownReferences(t *testing.T) {
	fx := createTestAddressService(t)
	ctx := context.Background()

	input := validAddressInput(fx.emailID)
	input.CountryID = 99
	_, err := fx.service.Create(ctx, input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	input = validAddressInput(99)
	_, err = fx.service.Create(ctx, input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestAddressService_CreateCountryOnly(t *testing.T) {
	fx := createTestAddressService(t)

	address, err := fx.service.CreateCountryOnly(context.Background(), fx.emailID, 1)
	require.NoError(t, err)

	assert.True(t, address.IsCountryOnly())
	assert.NotEqual(t, uuid.Nil, address.Token)
	assert.Equal(t, "United Kingdom", address.CountryName())
}

func TestAddressService_UpdateCountryOnly(t *testing.T) {
	fx := createTestAddressService(t)
	ctx := context.Background()

	address, err := fx.service.CreateCountryOnly(ctx, fx.emailID, 1)
	require.NoError(t, err)

	updated, err := fx.service.UpdateCountryOnly(ctx, address.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.CountryID)
	assert.Equal(t, "France", updated.CountryName())
}

func TestAddressService_UpdateCountryOnly_RejectsFullAddress(t *testing.T) {
	fx := createTestAddressService(t)
	ctx := context.Background()

	address, err := fx.service.Create(ctx, validAddressInput(fx.emailID))
	require.NoError(t, err)

	_, err = fx.service.UpdateCountryOnly(ctx, address.ID, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidArgument))
}

func TestAddressService_Update(t *testing.T) {
	fx := createTestAddressService(t)
	ctx := context.Background()

	address, err := fx.service.Create(ctx, validAddressInput(fx.emailID))
	require.NoError(t, err)

	updated, err := fx.service.Update(ctx, &usecase.UpdateAddressInput{
		ID:        address.ID,
		CountryID: 2,
		Title:     "Dr",
		FirstName: "Joe",
		LastName:  "Bloggs",
		HouseName: "2",
		Street:    "Rue de la Paix",
		Town:      "",
		City:      "Paris",
		County:    "Ile-de-France",
		Postcode:  "75002",
	})
	require.NoError(t, err)

	assert.Equal(t, address.ID, updated.ID)
	assert.Equal(t, "Dr", updated.Title)
	assert.Equal(t, "France", updated.CountryName())
	assert.Equal(t, address.Token, updated.Token)

	// The stored record reflects the rewrite.
	resolved, err := fx.service.ResolveByID(ctx, address.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rue de la Paix", resolved.Street)
}

func TestAddressService_Update_UnknownAddress(t *testing.T) {
	fx := createTestAddressService(t)

	input := validAddressInput(fx.emailID)
	_, err := fx.service.Update(context.Background(), &usecase.UpdateAddressInput{
		ID:        42,
		CountryID: input.CountryID,
		Title:     input.Title,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		HouseName: input.HouseName,
		Street:    input.Street,
		Town:      input.Town,
		City:      input.City,
		County:    input.County,
		Postcode:  input.Postcode,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestAddressService_ResolveByToken(t *testing.T) {
	fx := createTestAddressService(t)
	ctx := context.Background()

	address, err := fx.service.CreateCountryOnly(ctx, fx.emailID, 1)
	require.NoError(t, err)

	resolved, err := fx.service.ResolveByToken(ctx, address.Token)
	require.NoError(t, err)
	assert.Equal(t, address.ID, resolved.ID)

	_, err = fx.service.ResolveByToken(ctx, uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
