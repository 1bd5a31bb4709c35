package impl

import (
	"context"
	"log/slog"

	deliverycontext "membership/internal/delivery/context"
	domainerrors "membership/internal/domain/errors"
	"membership/internal/domain/repository"
	"membership/internal/domain/service"
	"membership/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// roleService implements the RoleUsecase interface.
type roleService struct {
	userRepo repository.UserRepository
	provider service.IdentityProvider
	logger   *slog.Logger
}

// RoleServiceParams holds dependencies for roleService, injected by Fx.
type RoleServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Provider service.IdentityProvider
	Logger   *slog.Logger
}

// NewRoleService is the constructor for roleService.
func NewRoleService(params RoleServiceParams) usecase.RoleUsecase {
	return &roleService{
		userRepo: params.UserRepo,
		provider: params.Provider,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *roleService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SetRole grants the named role to the user's credential. The role must be
// registered with the identity provider; granting an already held role is a
// no-op on the provider side.
func (srv *roleService) SetRole(ctx context.Context, userID int, roleName string) error {
	if roleName == "" {
		return domainerrors.ErrInvalidArgument.WrapMessage("role name is required")
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("user not found")
		}

		return errors.Wrap(err, "failed to load user for role assignment")
	}

	exists, err := srv.provider.RoleExists(ctx, roleName)
	if err != nil {
		return translateProviderError(err)
	}
	if !exists {
		return domainerrors.ErrNotFound.WrapMessage("role is not registered")
	}

	if err := srv.provider.SetRole(ctx, user.ProviderKey, roleName); err != nil {
		return translateProviderError(err)
	}
	srv.log(ctx).Info("Role assigned", slog.Int("userID", userID), slog.String("role", roleName))

	return nil
}
