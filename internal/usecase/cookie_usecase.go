package usecase

import (
	"context"

	"membership/internal/domain/entity"

	"github.com/google/uuid"
)

// CookieUsecase resolves identities from the opaque tokens carried in browser
// cookies. Absence of a matching record is always an error, never an anonymous
// default: the caller decides what an unknown visitor means.
type CookieUsecase interface {
	// ResolveContact retrieves the email address bound to the identity token.
	ResolveContact(ctx context.Context, token uuid.UUID) (*entity.EmailAddress, error)

	// ResolveUser retrieves the user whose primary email address is bound to
	// the identity token.
	ResolveUser(ctx context.Context, token uuid.UUID) (*entity.SystemUser, error)

	// ResolveAddress retrieves the address bound to the address token, checking
	// that it belongs to the email address bound to the identity token. A
	// mismatched pair is rejected.
	ResolveAddress(ctx context.Context, addressToken, identityToken uuid.UUID) (*entity.Address, error)
}
