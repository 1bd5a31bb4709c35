package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"membership/internal/delivery/http/response"
	"membership/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// WebAddressHandler holds dependencies for web address handlers.
type WebAddressHandler struct {
	uc     usecase.WebAddressUsecase
	logger *slog.Logger
}

// NewWebAddressHandler is the constructor for WebAddressHandler, injected by Fx.
func NewWebAddressHandler(uc usecase.WebAddressUsecase, logger *slog.Logger) *WebAddressHandler {
	return &WebAddressHandler{uc: uc, logger: logger}
}

// createWebAddressRequest is the wire shape of a web address creation request.
type createWebAddressRequest struct {
	URL string `json:"url" validate:"required"`
}

// Create records a new web address.
func (h *WebAddressHandler) Create(c echo.Context) error {
	var req createWebAddressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid web address input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	webAddress, err := h.uc.Create(c.Request().Context(), req.URL)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, webAddress, "Web address created")
}

// Get resolves a web address by numeric id.
func (h *WebAddressHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Web address id must be numeric")
	}

	webAddress, err := h.uc.ResolveByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, webAddress, "Web address retrieved")
}

// MarkDead flags a web address as dead.
func (h *WebAddressHandler) MarkDead(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Web address id must be numeric")
	}

	webAddress, err := h.uc.MarkDead(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, webAddress, "Web address marked dead")
}
