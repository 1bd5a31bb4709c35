// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"membership/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateEmailInput defines the data required to record a new email address.
type CreateEmailInput struct {
	Address string
}

// CreatePhoneNumberInput defines the data required to record a phone number.
// The raw value may carry brackets and spaces; it is normalized before storage.
type CreatePhoneNumberInput struct {
	Raw string
}

// --- Output DTOs ---

// ResolveEmailOutput returns a resolved email address together with its
// confirmation state.
type ResolveEmailOutput struct {
	Email     *entity.EmailAddress
	Confirmed bool
}

// ContactUsecase defines the business operations for email addresses and phone
// numbers. This is the contract that the delivery layer depends on.
type ContactUsecase interface {
	// ExistsByAddress reports whether an email address with the given text is
	// recorded.
	ExistsByAddress(ctx context.Context, address string) (bool, error)

	// ExistsByID reports whether an email address with the given id is recorded.
	ExistsByID(ctx context.Context, id int) (bool, error)

	// CreateEmail records a new, unconfirmed email address with a fresh
	// confirmation token. Duplicate address text is a conflict.
	CreateEmail(ctx context.Context, input *CreateEmailInput) (*entity.EmailAddress, error)

	// ResolveByAddress retrieves an email address by its text.
	ResolveByAddress(ctx context.Context, address string) (*entity.EmailAddress, error)

	// ResolveByID retrieves an email address by its numeric id.
	ResolveByID(ctx context.Context, id int) (*entity.EmailAddress, error)

	// ResolveByToken retrieves an email address by its confirmation token,
	// reporting the confirmation state alongside.
	ResolveByToken(ctx context.Context, token uuid.UUID) (*ResolveEmailOutput, error)

	// Confirm flips the confirmation flag for the address bound to the token and
	// returns the resulting state. Confirming an already confirmed address is a
	// no-op.
	Confirm(ctx context.Context, address string, token uuid.UUID) (bool, error)

	// CreatePhoneNumber normalizes and records a phone number, returning the
	// stored entity. Each call inserts a new candidate.
	CreatePhoneNumber(ctx context.Context, input *CreatePhoneNumberInput) (*entity.PhoneNumber, error)

	// GetAddressesForEmail retrieves all postal addresses owned by the email id.
	GetAddressesForEmail(ctx context.Context, emailID int) ([]*entity.Address, error)
}
