// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"membership/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for contact persistence.
var (
	// ErrEmailNotFound is returned when an email address is not found.
	ErrEmailNotFound = errors.New("email address not found")
	// ErrPhoneNotFound is returned when a phone number is not found.
	ErrPhoneNotFound = errors.New("phone number not found")
)

// ContactRepository defines the standard operations for email address and
// phone number persistence. Email addresses are never deleted.
type ContactRepository interface {
	// FindEmailByAddress retrieves an email address by its unique address text.
	FindEmailByAddress(ctx context.Context, address string) (*entity.EmailAddress, error)

	// FindEmailByID retrieves an email address by its numeric id.
	FindEmailByID(ctx context.Context, id int) (*entity.EmailAddress, error)

	// FindEmailByToken retrieves an email address by its confirmation token.
	FindEmailByToken(ctx context.Context, token uuid.UUID) (*entity.EmailAddress, error)

	// CreateEmail persists a new email address and backfills the generated id.
	CreateEmail(ctx context.Context, email *entity.EmailAddress) error

	// UpdateEmail modifies an existing email address record.
	UpdateEmail(ctx context.Context, email *entity.EmailAddress) error

	// CreatePhoneNumber persists a phone number candidate and backfills the
	// generated id. No de-duplication is performed.
	CreatePhoneNumber(ctx context.Context, phone *entity.PhoneNumber) error

	// FindPhoneByID retrieves a phone number by its numeric id.
	FindPhoneByID(ctx context.Context, id int) (*entity.PhoneNumber, error)
}
