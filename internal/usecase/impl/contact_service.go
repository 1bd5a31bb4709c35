// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	deliverycontext "membership/internal/delivery/context"
	"membership/internal/domain/entity"
	domainerrors "membership/internal/domain/errors"
	"membership/internal/domain/repository"
	"membership/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	maxEmailLength = 255
	maxPhoneDigits = 20
)

// contactService implements the ContactUsecase interface.
type contactService struct {
	contactRepo repository.ContactRepository
	addressRepo repository.AddressRepository
	validate    *validator.Validate
	logger      *slog.Logger
}

// ContactServiceParams holds dependencies for contactService, injected by Fx.
type ContactServiceParams struct {
	fx.In

	ContactRepo repository.ContactRepository
	AddressRepo repository.AddressRepository
	Logger      *slog.Logger
}

// NewContactService is the constructor for contactService.
func NewContactService(params ContactServiceParams) usecase.ContactUsecase {
	return &contactService{
		contactRepo: params.ContactRepo,
		addressRepo: params.AddressRepo,
		validate:    validator.New(),
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *contactService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ExistsByAddress reports whether an email address with the given text is
// recorded. Malformed address text is rejected before any lookup.
func (srv *contactService) ExistsByAddress(ctx context.Context, address string) (bool, error) {
	if err := srv.validateEmailAddress(address); err != nil {
		return false, err
	}

	_, err := srv.contactRepo.FindEmailByAddress(ctx, address)
	if errors.Is(err, repository.ErrEmailNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to check email existence by address")
	}

	return true, nil
}

// ExistsByID reports whether an email address with the given id is recorded.
// A non-positive id is rejected before any lookup.
func (srv *contactService) ExistsByID(ctx context.Context, id int) (bool, error) {
	if id <= 0 {
		return false, domainerrors.ErrInvalidArgument.WrapMessage("email id must be positive")
	}

	_, err := srv.contactRepo.FindEmailByID(ctx, id)
	if errors.Is(err, repository.ErrEmailNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to check email existence by id")
	}

	return true, nil
}

// CreateEmail records a new, unconfirmed email address with a fresh
// confirmation token.
func (srv *contactService) CreateEmail(ctx context.Context, input *usecase.CreateEmailInput) (*entity.EmailAddress, error) {
	address := strings.TrimSpace(input.Address)
	if err := srv.validateEmailAddress(address); err != nil {
		return nil, err
	}

	email := &entity.EmailAddress{
		Address:      address,
		Confirmed:    false,
		ConfirmToken: uuid.New(),
	}

	if err := srv.contactRepo.CreateEmail(ctx, email); err != nil {
		srv.log(ctx).Warn("Failed to create email address", slog.String("address", address), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create email address")
	}
	srv.log(ctx).Info("Email address created", slog.Int("emailID", email.ID))

	return email, nil
}

// ResolveByAddress retrieves an email address by its text.
func (srv *contactService) ResolveByAddress(ctx context.Context, address string) (*entity.EmailAddress, error) {
	email, err := srv.contactRepo.FindEmailByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, repository.ErrEmailNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("email address not found")
		}

		return nil, errors.Wrap(err, "failed to resolve email by address")
	}

	return email, nil
}

// ResolveByID retrieves an email address by its numeric id.
func (srv *contactService) ResolveByID(ctx context.Context, id int) (*entity.EmailAddress, error) {
	email, err := srv.contactRepo.FindEmailByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEmailNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("email address not found")
		}

		return nil, errors.Wrap(err, "failed to resolve email by id")
	}

	return email, nil
}

// ResolveByToken retrieves an email address by its confirmation token,
// reporting the confirmation state alongside.
func (srv *contactService) ResolveByToken(ctx context.Context, token uuid.UUID) (*usecase.ResolveEmailOutput, error) {
	email, err := srv.contactRepo.FindEmailByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrEmailNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("email address not found")
		}

		return nil, errors.Wrap(err, "failed to resolve email by token")
	}

	return &usecase.ResolveEmailOutput{Email: email, Confirmed: email.Confirmed}, nil
}

// Confirm flips the confirmation flag for the address bound to the token and
// returns the resulting state. The token must belong to the given address
// text: a token bound to a different address is rejected rather than
// confirming the wrong record.
func (srv *contactService) Confirm(ctx context.Context, address string, token uuid.UUID) (bool, error) {
	email, err := srv.contactRepo.FindEmailByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrEmailNotFound) {
			return false, domainerrors.ErrNotFound.WrapMessage("confirmation token not recognized")
		}

		return false, errors.Wrap(err, "failed to find email by confirmation token")
	}

	if email.Address != address {
		srv.log(ctx).Warn("Confirmation token bound to a different address", slog.Int("emailID", email.ID))

		return false, domainerrors.ErrConflict.WrapMessage("confirmation token does not match the email address")
	}

	if email.Confirmed {
		// Already confirmed; repeating the confirmation is harmless.
		return true, nil
	}

	email.Confirmed = true
	if err := srv.contactRepo.UpdateEmail(ctx, email); err != nil {
		return false, errors.Wrap(err, "failed to confirm email address")
	}
	srv.log(ctx).Info("Email address confirmed", slog.Int("emailID", email.ID))

	return true, nil
}

// CreatePhoneNumber normalizes and records a phone number.
func (srv *contactService) CreatePhoneNumber(ctx context.Context, input *usecase.CreatePhoneNumberInput) (*entity.PhoneNumber, error) {
	digits, err := normalizePhoneNumber(input.Raw)
	if err != nil {
		return nil, err
	}

	phone := &entity.PhoneNumber{Digits: digits}
	if err := srv.contactRepo.CreatePhoneNumber(ctx, phone); err != nil {
		return nil, errors.Wrap(err, "failed to create phone number")
	}
	srv.log(ctx).Info("Phone number created", slog.Int("phoneID", phone.ID))

	return phone, nil
}

// GetAddressesForEmail retrieves all postal addresses owned by the email id.
func (srv *contactService) GetAddressesForEmail(ctx context.Context, emailID int) ([]*entity.Address, error) {
	if _, err := srv.contactRepo.FindEmailByID(ctx, emailID); err != nil {
		if errors.Is(err, repository.ErrEmailNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("email address not found")
		}

		return nil, errors.Wrap(err, "failed to find email for address listing")
	}

	addresses, err := srv.addressRepo.FindAddressesByEmailID(ctx, emailID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list addresses for email")
	}

	return addresses, nil
}

// validateEmailAddress checks format and length ahead of any I/O.
func (srv *contactService) validateEmailAddress(address string) error {
	if address == "" {
		return domainerrors.ErrInvalidArgument.WrapMessage("email address is required")
	}
	if len(address) > maxEmailLength {
		return domainerrors.ErrInvalidArgument.WrapMessage("email address is too long")
	}
	if err := srv.validate.Var(address, "email"); err != nil {
		return domainerrors.ErrInvalidArgument.WrapMessage("email address is malformed")
	}

	return nil
}

// normalizePhoneNumber strips brackets and spaces from the raw value and
// verifies the remainder is a bounded digit string. A leading plus is kept.
func normalizePhoneNumber(raw string) (string, error) {
	cleaned := strings.NewReplacer("(", "", ")", "", " ", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return "", domainerrors.ErrInvalidArgument.WrapMessage("phone number is required")
	}
	if len(cleaned) > maxPhoneDigits {
		return "", domainerrors.ErrInvalidArgument.WrapMessage("phone number is too long")
	}

	for i, r := range cleaned {
		if i == 0 && r == '+' {
			continue
		}
		if !unicode.IsDigit(r) {
			return "", domainerrors.ErrInvalidArgument.WrapMessage("phone number contains invalid characters")
		}
	}

	return cleaned, nil
}
