package middleware

import (
	"net/http"

	"membership/internal/domain/service"
	"membership/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware authenticates requests from the session cookie issued at
// login. The cookie value is a signed token that must also resolve to a live
// session artifact; either check failing rejects the request.
type AuthMiddleware struct {
	tokenSvc     service.TokenService
	sessionStore service.SessionStore
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, sessionStore service.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, sessionStore: sessionStore}
}

// Authenticate validates the session cookie and sets the member's identity on
// the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(impl.SessionCookieName)
		if err != nil || cookie.Value == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "session cookie is missing"})
		}

		claims, err := m.tokenSvc.ValidateToken(cookie.Value)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired session"})
		}

		session, err := m.sessionStore.Get(c.Request().Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, service.ErrSessionNotFound) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "session has ended"})
			}

			return errors.Wrap(err, "failed to load session")
		}

		// Set user info on the context for handlers to use
		c.Set("userID", session.UserID)
		c.Set("providerKey", claims.ProviderKey)

		return next(c)
	}
}
