package main

import (
	"context"
	"log/slog"
	"os"

	"membership/config"
	"membership/internal/delivery"
	"membership/internal/delivery/http"
	"membership/internal/delivery/http/middleware"
	"membership/internal/delivery/http/router/handler"
	"membership/internal/infra/auth"
	"membership/internal/infra/identity"
	logs "membership/internal/infra/log"
	"membership/internal/infra/persistence/postgres"
	"membership/internal/infra/session"
	"membership/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		session.NewClient,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewContactRepository,
			postgres.NewAddressRepository,
			postgres.NewUserRepository,
			postgres.NewCountryRepository,
			postgres.NewWebAddressRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			identity.NewProvider,
			session.NewRedisStore,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewContactService,
			impl.NewAddressService,
			impl.NewUserService,
			impl.NewRoleService,
			impl.NewCookieService,
			impl.NewCountryService,
			impl.NewWebAddressService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewContactHandler,
			handler.NewAddressHandler,
			handler.NewCookieHandler,
			handler.NewCountryHandler,
			handler.NewWebAddressHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
