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

type cookieServiceFixtures struct {
	service     usecase.CookieUsecase
	contactRepo *fakeContactRepo
	addressRepo *fakeAddressRepo
	userRepo    *fakeUserRepo
}

func createTestCookieService(t *testing.T) cookieServiceFixtures {
	t.Helper()

	contactRepo := newFakeContactRepo()
	addressRepo := newFakeAddressRepo()
	userRepo := newFakeUserRepo(contactRepo)

	service := NewCookieService(CookieServiceParams{
		ContactRepo: contactRepo,
		AddressRepo: addressRepo,
		UserRepo:    userRepo,
		Logger:      newDiscardLogger(),
	})

	return cookieServiceFixtures{
		service:     service,
		contactRepo: contactRepo,
		addressRepo: addressRepo,
		userRepo:    userRepo,
	}
}

func TestCookieService_ResolveContact(t *testing.T) {
	fx := createTestCookieService(t)
	ctx := context.Background()

	email := &entity.EmailAddress{Address: "joe@example.com", ConfirmToken: uuid.New()}
	require.NoError(t, fx.contactRepo.CreateEmail(ctx, email))

	contact, err := fx.service.ResolveContact(ctx, email.ConfirmToken)
	require.NoError(t, err)
	assert.Equal(t, email.ID, contact.ID)

	_, err = fx.service.ResolveContact(ctx, uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestCookieService_ResolveUser(t *testing.T) {
	fx := createTestCookieService(t)
	ctx := context.Background()

	email := &entity.EmailAddress{Address: "joe@example.com", ConfirmToken: uuid.New()}
	require.NoError(t, fx.contactRepo.CreateEmail(ctx, email))
	require.NoError(t, fx.userRepo.Create(ctx, &entity.SystemUser{
		FirstName:      "Joe",
		Surname:        "Bloggs",
		PrimaryEmailID: email.ID,
	}))

	user, err := fx.service.ResolveUser(ctx, email.ConfirmToken)
	require.NoError(t, err)
	assert.Equal(t, "Joe", user.FirstName)
}

func TestCookieService_ResolveUser_NoClaim(t *testing.T) {
	fx := createTestCookieService(t)
	ctx := context.Background()

	// The token resolves to a contact, but no user claims it as primary.
	email := &entity.EmailAddress{Address: "joe@example.com", ConfirmToken: uuid.New()}
	require.NoError(t, fx.contactRepo.CreateEmail(ctx, email))

	_, err := fx.service.ResolveUser(ctx, email.ConfirmToken)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestCookieService_ResolveAddress(t *testing.T) {
	fx := createTestCookieService(t)
	ctx := context.Background()

	email := &entity.EmailAddress{Address: "joe@example.com", ConfirmToken: uuid.New()}
	require.NoError(t, fx.contactRepo.CreateEmail(ctx, email))

	address := &entity.Address{EmailID: email.ID, CountryID: 1, Token: uuid.New()}
	require.NoError(t, fx.addressRepo.CreateAddress(ctx, address))

	resolved, err := fx.service.ResolveAddress(ctx, address.Token, email.ConfirmToken)
	require.NoError(t, err)
	assert.Equal(t, address.ID, resolved.ID)
}

func TestCookieService_ResolveAddress_Mismatch(t *testing.T) {
	fx := createTestCookieService(t)
	ctx := context.Background()

	owner := &entity.EmailAddress{Address: "joe@example.com", ConfirmToken: uuid.New()}
	stranger := &entity.EmailAddress{Address: "eve@example.com", ConfirmToken: uuid.New()}
	require.NoError(t, fx.contactRepo.CreateEmail(ctx, owner))
	require.NoError(t, fx.contactRepo.CreateEmail(ctx, stranger))

	address := &entity.Address{EmailID: owner.ID, CountryID: 1, Token: uuid.New()}
	require.NoError(t, fx.addressRepo.CreateAddress(ctx, address))

	// The address cookie and identity cookie belong to different contacts.
	_, err := fx.service.ResolveAddress(ctx, address.Token, stranger.ConfirmToken)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCookieMismatch))
}

func TestCookieService_ResolveAddress_UnknownToken(t *testing.T) {
	fx := createTestCookieService(t)
	ctx := context.Background()

	email := &entity.EmailAddress{Address: "joe@example.com", ConfirmToken: uuid.New()}
	require.NoError(t, fx.contactRepo.CreateEmail(ctx, email))

	_, err := fx.service.ResolveAddress(ctx, uuid.New(), email.ConfirmToken)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
