package usecase

import (
	"context"
	"time"

	"membership/internal/domain/entity"
)

// --- Input DTOs ---

// CreateUserInput defines the data required to register a new member.
type CreateUserInput struct {
	Email         string
	Password      string
	FirstName     string
	Surname       string
	Phone         string // Optional; normalized before storage.
	HasNewsletter bool
	DefaultRole   entity.Role // Optional role granted on creation.
}

// AuthenticateInput defines the credentials presented at login.
type AuthenticateInput struct {
	Email    string
	Password string
}

// ChangePasswordInput defines the data required to change a password.
type ChangePasswordInput struct {
	Email       string
	OldPassword string
	NewPassword string
}

// --- Output DTOs ---

// CookieArtifact is a cookie the delivery layer should set on the response.
type CookieArtifact struct {
	Name    string
	Value   string
	Domain  string
	Expires time.Time
}

// AuthenticateOutput returns the authentication outcome. Authenticated is false
// for unknown or rejected credentials; the cookie artifacts are only populated
// on success.
type AuthenticateOutput struct {
	Authenticated       bool
	ForcePasswordChange bool
	User                *entity.SystemUser
	SessionCookie       *CookieArtifact
	IdentityCookie      *CookieArtifact
}

// UserUsecase defines the interface for member account operations.
// This is the contract that the delivery layer depends on.
type UserUsecase interface {
	// CreateUser registers a new member: credential creation and approval at
	// the identity provider, then the relational records in one transaction.
	// Returns the fully loaded user aggregate.
	CreateUser(ctx context.Context, input *CreateUserInput) (*entity.SystemUser, error)

	// AuthenticateUser validates the presented credentials. Bad credentials
	// yield Authenticated=false, never an error.
	AuthenticateUser(ctx context.Context, input *AuthenticateInput) (*AuthenticateOutput, error)

	// GetUser retrieves the full user aggregate by id.
	GetUser(ctx context.Context, id int) (*entity.SystemUser, error)

	// ResetPassword issues a new generated password for the credential bound to
	// the email address and returns it for delivery to the member.
	ResetPassword(ctx context.Context, email string) (string, error)

	// ChangePassword replaces the member's password after revalidating the old
	// one.
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error

	// AddEmailAddress associates an email address with the user, creating the
	// contact record if needed. Returns the user with the association set
	// reloaded from storage.
	AddEmailAddress(ctx context.Context, userID int, address string) (*entity.SystemUser, error)

	// RemoveEmailAddress dissociates an email address from the user. The
	// primary address cannot be removed. Returns the reloaded user.
	RemoveEmailAddress(ctx context.Context, userID int, address string) (*entity.SystemUser, error)

	// ReorderEmailAddresses rewrites the display order of the user's email
	// addresses. The given list must contain exactly the addresses currently
	// associated with the user. Returns the reloaded user.
	ReorderEmailAddresses(ctx context.Context, userID int, addresses []string) (*entity.SystemUser, error)
}
