// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"membership/internal/delivery/http/middleware"
	"membership/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler       *handler.UserHandler
	ContactHandler    *handler.ContactHandler
	AddressHandler    *handler.AddressHandler
	CookieHandler     *handler.CookieHandler
	CountryHandler    *handler.CountryHandler
	WebAddressHandler *handler.WebAddressHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler       *handler.UserHandler
	contactHandler    *handler.ContactHandler
	addressHandler    *handler.AddressHandler
	cookieHandler     *handler.CookieHandler
	countryHandler    *handler.CountryHandler
	webAddressHandler *handler.WebAddressHandler
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:       params.UserHandler,
		contactHandler:    params.ContactHandler,
		addressHandler:    params.AddressHandler,
		cookieHandler:     params.CookieHandler,
		countryHandler:    params.CountryHandler,
		webAddressHandler: params.WebAddressHandler,
		authMiddleware:    params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/password/reset", r.userHandler.ResetPassword)
		authGroup.POST("/password/change", r.userHandler.ChangePassword)
	}

	// Cookie identity resolution for the storefront
	cookieGroup := e.Group("/cookie")
	{
		cookieGroup.GET("/contact", r.cookieHandler.ResolveContact)
		cookieGroup.GET("/user", r.cookieHandler.ResolveUser)
		cookieGroup.GET("/address/:token", r.cookieHandler.ResolveAddress)
	}

	// Contact routes
	contactGroup := e.Group("/contacts")
	{
		contactGroup.POST("/emails", r.contactHandler.CreateEmail)
		contactGroup.GET("/emails/:id", r.contactHandler.GetEmail)
		contactGroup.GET("/emails/:id/addresses", r.contactHandler.ListAddresses)
		contactGroup.POST("/emails/confirm", r.contactHandler.Confirm)
		contactGroup.POST("/phones", r.contactHandler.CreatePhone)
	}

	// Address routes
	addressGroup := e.Group("/addresses")
	{
		addressGroup.POST("", r.addressHandler.Create)
		addressGroup.POST("/country-only", r.addressHandler.CreateCountryOnly)
		addressGroup.GET("/:id", r.addressHandler.Get)
		addressGroup.PUT("/:id", r.addressHandler.Update)
		addressGroup.PUT("/:id/country-only", r.addressHandler.UpdateCountryOnly)
	}

	// Country reference data
	e.GET("/countries", r.countryHandler.List)
	e.GET("/countries/:id", r.countryHandler.Get)

	// Web address routes
	webGroup := e.Group("/web-addresses")
	{
		webGroup.POST("", r.webAddressHandler.Create)
		webGroup.GET("/:id", r.webAddressHandler.Get)
		webGroup.POST("/:id/dead", r.webAddressHandler.MarkDead)
	}

	// Member routes that require an authenticated session
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.userHandler.GetProfile)
		userGroup.POST("/emails", r.userHandler.AddEmail)
		userGroup.DELETE("/emails", r.userHandler.RemoveEmail)
		userGroup.PUT("/emails/order", r.userHandler.ReorderEmails)
	}

	// Administrative routes
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	{
		adminGroup.POST("/roles", r.userHandler.SetRole)
	}
}
