package handler

import (
	"log/slog"
	"net/http"

	"membership/internal/delivery/http/response"
	"membership/internal/usecase"
	"membership/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CookieHandler resolves identities from browser cookies.
type CookieHandler struct {
	uc     usecase.CookieUsecase
	logger *slog.Logger
}

// NewCookieHandler is the constructor for CookieHandler, injected by Fx.
func NewCookieHandler(uc usecase.CookieUsecase, logger *slog.Logger) *CookieHandler {
	return &CookieHandler{uc: uc, logger: logger}
}

// identityToken extracts and parses the identity cookie from the request.
func identityToken(c echo.Context) (uuid.UUID, error) {
	cookie, err := c.Cookie(impl.IdentityCookieName)
	if err != nil || cookie.Value == "" {
		return uuid.Nil, errors.New("identity cookie is missing")
	}

	return uuid.Parse(cookie.Value)
}

// ResolveContact returns the email address bound to the identity cookie.
func (h *CookieHandler) ResolveContact(c echo.Context) error {
	token, err := identityToken(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_COOKIE", "Identity cookie is missing or malformed")
	}

	contact, err := h.uc.ResolveContact(c.Request().Context(), token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, contact, "Contact resolved")
}

// ResolveUser returns the member whose primary email is bound to the identity
// cookie.
func (h *CookieHandler) ResolveUser(c echo.Context) error {
	token, err := identityToken(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_COOKIE", "Identity cookie is missing or malformed")
	}

	user, err := h.uc.ResolveUser(c.Request().Context(), token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "User resolved")
}

// ResolveAddress returns the address bound to the address token, verified
// against the identity cookie.
func (h *CookieHandler) ResolveAddress(c echo.Context) error {
	token, err := identityToken(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_COOKIE", "Identity cookie is missing or malformed")
	}

	addressToken, err := uuid.Parse(c.Param("token"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Address token is malformed")
	}

	address, err := h.uc.ResolveAddress(c.Request().Context(), addressToken, token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, address, "Address resolved")
}
