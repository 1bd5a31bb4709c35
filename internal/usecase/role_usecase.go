package usecase

import "context"

// RoleUsecase defines role assignment against the identity provider.
type RoleUsecase interface {
	// SetRole grants the named role to the user's credential. Granting a role
	// the user already holds is a no-op; an unregistered role name is an error.
	SetRole(ctx context.Context, userID int, roleName string) error
}
