// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"membership/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailClaimed is returned when the email address is already claimed as
	// primary by a different user.
	ErrEmailClaimed = errors.New("email address already claimed as primary by another user")
)

// UserRepository defines the standard operations for system user persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their numeric id, with the ordered
	// email-address association set loaded.
	FindByID(ctx context.Context, id int) (*entity.SystemUser, error)

	// FindByProviderKey retrieves a single user by their opaque
	// identity-provider key.
	FindByProviderKey(ctx context.Context, key uuid.UUID) (*entity.SystemUser, error)

	// FindByPrimaryEmailID retrieves the user that claims the given email
	// address as primary, if any.
	FindByPrimaryEmailID(ctx context.Context, emailID int) (*entity.SystemUser, error)

	// Create persists a new user entity. Returns ErrEmailClaimed when the
	// primary email claim invariant is violated.
	Create(ctx context.Context, user *entity.SystemUser) error

	// Update modifies an existing user entity.
	Update(ctx context.Context, user *entity.SystemUser) error

	// AddEmailAssociation links an email address to the user with the given
	// display order.
	AddEmailAssociation(ctx context.Context, userID, emailID, displayOrder int) error

	// RemoveEmailAssociation unlinks an email address from the user. The
	// underlying email address record is never deleted.
	RemoveEmailAssociation(ctx context.Context, userID, emailID int) error

	// UpdateEmailOrder changes the display order of one email association.
	UpdateEmailOrder(ctx context.Context, userID, emailID, displayOrder int) error

	// FindEmailsByUserID retrieves the user's email addresses ordered by
	// display order.
	FindEmailsByUserID(ctx context.Context, userID int) ([]*entity.EmailAddress, error)
}
