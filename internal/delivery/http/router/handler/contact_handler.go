package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"membership/internal/delivery/http/response"
	"membership/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ContactHandler holds dependencies for email address and phone handlers.
type ContactHandler struct {
	uc     usecase.ContactUsecase
	logger *slog.Logger
}

// NewContactHandler is the constructor for ContactHandler, injected by Fx.
func NewContactHandler(uc usecase.ContactUsecase, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{uc: uc, logger: logger}
}

// createEmailRequest is the wire shape of an email creation request.
type createEmailRequest struct {
	Address string `json:"address" validate:"required,email"`
}

// CreateEmail records a new email address.
func (h *ContactHandler) CreateEmail(c echo.Context) error {
	var req createEmailRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid email input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	email, err := h.uc.CreateEmail(c.Request().Context(), &usecase.CreateEmailInput{Address: req.Address})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, email, "Email address created")
}

// GetEmail resolves an email address by numeric id.
func (h *ContactHandler) GetEmail(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Email id must be numeric")
	}

	email, err := h.uc.ResolveByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, email, "Email address retrieved")
}

// confirmRequest is the wire shape of an email confirmation request.
type confirmRequest struct {
	Address string `json:"address" validate:"required,email"`
	Token   string `json:"token" validate:"required"`
}

// Confirm flips the confirmation flag for the address bound to the token.
func (h *ContactHandler) Confirm(c echo.Context) error {
	var req confirmRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid confirmation input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := uuid.Parse(req.Token)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Confirmation token is malformed")
	}

	confirmed, err := h.uc.Confirm(c.Request().Context(), req.Address, token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"confirmed": confirmed}, "Email address confirmed")
}

// createPhoneRequest is the wire shape of a phone creation request.
type createPhoneRequest struct {
	Number string `json:"number" validate:"required"`
}

// CreatePhone normalizes and records a phone number.
func (h *ContactHandler) CreatePhone(c echo.Context) error {
	var req createPhoneRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid phone input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	phone, err := h.uc.CreatePhoneNumber(c.Request().Context(), &usecase.CreatePhoneNumberInput{Raw: req.Number})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, phone, "Phone number created")
}

// ListAddresses retrieves the postal addresses owned by an email address.
func (h *ContactHandler) ListAddresses(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Email id must be numeric")
	}

	addresses, err := h.uc.GetAddressesForEmail(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, addresses, "Addresses retrieved")
}
