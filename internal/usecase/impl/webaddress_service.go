package impl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	deliverycontext "membership/internal/delivery/context"
	"membership/internal/domain/entity"
	domainerrors "membership/internal/domain/errors"
	"membership/internal/domain/repository"
	"membership/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const maxWebAddressLength = 2048

// webAddressService implements the WebAddressUsecase interface.
type webAddressService struct {
	webAddressRepo repository.WebAddressRepository
	logger         *slog.Logger
}

// WebAddressServiceParams holds dependencies for webAddressService, injected by Fx.
type WebAddressServiceParams struct {
	fx.In

	WebAddressRepo repository.WebAddressRepository
	Logger         *slog.Logger
}

// NewWebAddressService is the constructor for webAddressService.
func NewWebAddressService(params WebAddressServiceParams) usecase.WebAddressUsecase {
	return &webAddressService{
		webAddressRepo: params.WebAddressRepo,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *webAddressService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create records a new web address.
func (srv *webAddressService) Create(ctx context.Context, rawURL string) (*entity.WebAddress, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, domainerrors.ErrInvalidArgument.WrapMessage("url is required")
	}
	if len(rawURL) > maxWebAddressLength {
		return nil, domainerrors.ErrInvalidArgument.WrapMessage("url is too long")
	}
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, domainerrors.ErrInvalidArgument.WrapMessage("url is malformed")
	}

	webAddress := &entity.WebAddress{URL: rawURL}
	if err := srv.webAddressRepo.CreateWebAddress(ctx, webAddress); err != nil {
		return nil, errors.Wrap(err, "failed to create web address")
	}
	srv.log(ctx).Info("Web address created", slog.Int("webAddressID", webAddress.ID))

	return webAddress, nil
}

// ResolveByID retrieves a web address by its numeric id.
func (srv *webAddressService) ResolveByID(ctx context.Context, id int) (*entity.WebAddress, error) {
	webAddress, err := srv.webAddressRepo.FindWebAddressByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrWebAddressNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("web address not found")
		}

		return nil, errors.Wrap(err, "failed to resolve web address by id")
	}

	return webAddress, nil
}

// ResolveByURL retrieves a web address by its URL text.
func (srv *webAddressService) ResolveByURL(ctx context.Context, rawURL string) (*entity.WebAddress, error) {
	webAddress, err := srv.webAddressRepo.FindWebAddressByURL(ctx, strings.TrimSpace(rawURL))
	if err != nil {
		if errors.Is(err, repository.ErrWebAddressNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("web address not found")
		}

		return nil, errors.Wrap(err, "failed to resolve web address by url")
	}

	return webAddress, nil
}

// MarkDead flags a web address as dead. The transition is one-way: a dead
// address never comes back to life, so repeating the call changes nothing.
func (srv *webAddressService) MarkDead(ctx context.Context, id int) (*entity.WebAddress, error) {
	webAddress, err := srv.ResolveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if webAddress.IsDead {
		return webAddress, nil
	}

	webAddress.IsDead = true
	if err := srv.webAddressRepo.UpdateWebAddress(ctx, webAddress); err != nil {
		return nil, errors.Wrap(err, "failed to mark web address dead")
	}
	srv.log(ctx).Info("Web address marked dead", slog.Int("webAddressID", id))

	return webAddress, nil
}
