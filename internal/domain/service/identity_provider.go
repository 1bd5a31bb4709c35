// Package service defines interfaces for core, stateless domain logic and for
// the external collaborators the membership layer depends on.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProviderErrorCode is a structured failure code reported by the identity
// provider. Structured codes replace the legacy practice of pattern-matching
// provider error text, which silently dropped unrecognized failures.
type ProviderErrorCode string

const (
	// ProviderCodeInvalidPassword means the password did not satisfy the
	// provider's strength policy.
	ProviderCodeInvalidPassword ProviderErrorCode = "INVALID_PASSWORD"
	// ProviderCodeDuplicateUsername means a credential already exists for the
	// supplied username.
	ProviderCodeDuplicateUsername ProviderErrorCode = "DUPLICATE_USERNAME"
	// ProviderCodeNotFound means no credential record matched the lookup key.
	ProviderCodeNotFound ProviderErrorCode = "NOT_FOUND"
	// ProviderCodeUnavailable means the provider could not service the request.
	ProviderCodeUnavailable ProviderErrorCode = "UNAVAILABLE"
)

// ProviderError carries a structured code plus the provider's own reason text.
type ProviderError struct {
	Code   ProviderErrorCode
	Reason string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity provider: %s: %s", e.Code, e.Reason)
}

// NewProviderError constructs a ProviderError with the given code and reason.
func NewProviderError(code ProviderErrorCode, reason string) *ProviderError {
	return &ProviderError{Code: code, Reason: reason}
}

// Credential is the provider's view of a login record. The Key is the opaque
// 128-bit value that links the record 1:1 with a SystemUser row.
type Credential struct {
	Key                uuid.UUID // Opaque provider key.
	Username           string    // Login username; the member's email address.
	Email              string    // Contact email held by the provider.
	Approved           bool      // Whether the credential has been marked active.
	MustChangePassword bool      // Set after an administrative password reset.
	CreatedAt          time.Time
}

// IdentityProvider wraps the external credential store. Credential storage,
// password hashing and secret generation are the provider's concern; this
// layer only orchestrates. All failures surface as *ProviderError so callers
// can switch exhaustively on the code.
type IdentityProvider interface {
	// CreateCredential registers a new credential keyed by username.
	CreateCredential(ctx context.Context, username, password, email string) (*Credential, error)

	// ApproveCredential marks a freshly created credential approved/active.
	ApproveCredential(ctx context.Context, key uuid.UUID) error

	// ValidateCredential checks a username/password pair. A bad pair is a
	// false return, not an error.
	ValidateCredential(ctx context.Context, username, password string) (bool, error)

	// GetCredentialByKey retrieves a credential by its provider key.
	GetCredentialByKey(ctx context.Context, key uuid.UUID) (*Credential, error)

	// GetCredentialByUsername retrieves a credential by username.
	GetCredentialByUsername(ctx context.Context, username string) (*Credential, error)

	// ResetPassword generates and stores a new secret for the credential and
	// returns it. The old secret is never returned.
	ResetPassword(ctx context.Context, key uuid.UUID) (string, error)

	// ChangePassword replaces the credential's secret after validating the old
	// one. A bad old secret is a false return, not an error.
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) (bool, error)

	// DeleteCredential removes a credential record. Used as the compensating
	// action when relational writes fail after the provider accepted the
	// credential.
	DeleteCredential(ctx context.Context, key uuid.UUID) error

	// RoleExists reports whether a role name is registered with the provider.
	RoleExists(ctx context.Context, name string) (bool, error)

	// SetRole assigns a named role to the credential. Idempotent: assigning a
	// role the credential already holds is not an error.
	SetRole(ctx context.Context, key uuid.UUID, role string) error
}
