package impl

import (
	"context"
	"log/slog"

	deliverycontext "membership/internal/delivery/context"
	"membership/internal/domain/entity"
	domainerrors "membership/internal/domain/errors"
	"membership/internal/domain/repository"
	"membership/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cookieService implements the CookieUsecase interface.
type cookieService struct {
	contactRepo repository.ContactRepository
	addressRepo repository.AddressRepository
	userRepo    repository.UserRepository
	logger      *slog.Logger
}

// CookieServiceParams holds dependencies for cookieService, injected by Fx.
type CookieServiceParams struct {
	fx.In

	ContactRepo repository.ContactRepository
	AddressRepo repository.AddressRepository
	UserRepo    repository.UserRepository
	Logger      *slog.Logger
}

// NewCookieService is the constructor for cookieService.
func NewCookieService(params CookieServiceParams) usecase.CookieUsecase {
	return &cookieService{
		contactRepo: params.ContactRepo,
		addressRepo: params.AddressRepo,
		userRepo:    params.UserRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *cookieService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ResolveContact retrieves the email address bound to the identity token.
func (srv *cookieService) ResolveContact(ctx context.Context, token uuid.UUID) (*entity.EmailAddress, error) {
	contact, err := srv.contactRepo.FindEmailByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrEmailNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("identity token not recognized")
		}

		return nil, errors.Wrap(err, "failed to resolve contact from identity token")
	}

	return contact, nil
}

// ResolveUser retrieves the user whose primary email address is bound to the
// identity token. An unknown or unclaimed token is never mapped to an
// anonymous default; the caller decides what an unknown visitor means.
func (srv *cookieService) ResolveUser(ctx context.Context, token uuid.UUID) (*entity.SystemUser, error) {
	contact, err := srv.ResolveContact(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByPrimaryEmailID(ctx, contact.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("no user claims the identity token")
		}

		return nil, errors.Wrap(err, "failed to resolve user from identity token")
	}

	return user, nil
}

// ResolveAddress retrieves the address bound to the address token, verifying
// ownership against the email address bound to the identity token. Cookies
// arrive independently from the browser, so a stale pair can legitimately
// disagree; that disagreement is reported rather than silently resolved.
func (srv *cookieService) ResolveAddress(ctx context.Context, addressToken, identityToken uuid.UUID) (*entity.Address, error) {
	address, err := srv.addressRepo.FindAddressByToken(ctx, addressToken)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("address token not recognized")
		}

		return nil, errors.Wrap(err, "failed to resolve address from token")
	}

	contact, err := srv.ResolveContact(ctx, identityToken)
	if err != nil {
		return nil, err
	}

	if address.EmailID != contact.ID {
		srv.log(ctx).Warn("Address and identity cookies disagree",
			slog.Int("addressID", address.ID), slog.Int("emailID", contact.ID))

		return nil, domainerrors.ErrCookieMismatch.WrapMessage("cookie mismatch")
	}

	return address, nil
}
