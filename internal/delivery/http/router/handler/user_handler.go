// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"membership/internal/delivery/http/response"
	"membership/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for member account handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	roleUC usecase.RoleUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, roleUC usecase.RoleUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		roleUC: roleUC,
		logger: logger,
	}
}

// registerRequest is the wire shape of a registration request.
type registerRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required"`
	FirstName     string `json:"firstName" validate:"required"`
	Surname       string `json:"surname" validate:"required"`
	Phone         string `json:"phone"`
	HasNewsletter bool   `json:"hasNewsletter"`
}

// Register handles the member registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.uc.CreateUser(c.Request().Context(), &usecase.CreateUserInput{
		Email:         req.Email,
		Password:      req.Password,
		FirstName:     req.FirstName,
		Surname:       req.Surname,
		Phone:         req.Phone,
		HasNewsletter: req.HasNewsletter,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, user, "User registered successfully")
}

// loginRequest is the wire shape of a login request.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles the member login request. On success the session and identity
// cookies are set on the response.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.uc.AuthenticateUser(c.Request().Context(), &usecase.AuthenticateInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if !output.Authenticated {
		return response.Unauthorized(c, "INVALID_CREDENTIALS", "Email or password is incorrect")
	}

	setCookieArtifact(c, output.SessionCookie, true)
	setCookieArtifact(c, output.IdentityCookie, false)

	return response.Success(c, http.StatusOK, map[string]any{
		"user":                output.User,
		"forcePasswordChange": output.ForcePasswordChange,
	}, "Login successful")
}

// GetProfile handles the request to get the current member's account.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, ok := c.Get("userID").(int)
	if !ok {
		return response.Unauthorized(c, "INVALID_SESSION", "Invalid user id in session")
	}

	user, err := h.uc.GetUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Profile retrieved successfully")
}

// resetPasswordRequest is the wire shape of a password reset request.
type resetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPassword issues a generated password for the account.
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	secret, err := h.uc.ResetPassword(c.Request().Context(), req.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	// The generated secret is handed back for delivery to the member; the
	// service itself never sends mail.
	return response.Success(c, http.StatusOK, map[string]string{"password": secret}, "Password reset")
}

// changePasswordRequest is the wire shape of a password change request.
type changePasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// ChangePassword replaces the member's password.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid change password input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.ChangePassword(c.Request().Context(), &usecase.ChangePasswordInput{
		Email:       req.Email,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed")
}

// emailRequest is the wire shape of add/remove email requests.
type emailRequest struct {
	Address string `json:"address" validate:"required,email"`
}

// AddEmail associates another email address with the current member.
func (h *UserHandler) AddEmail(c echo.Context) error {
	userID, ok := c.Get("userID").(int)
	if !ok {
		return response.Unauthorized(c, "INVALID_SESSION", "Invalid user id in session")
	}

	var req emailRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid email input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.uc.AddEmailAddress(c.Request().Context(), userID, req.Address)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Email address added")
}

// RemoveEmail dissociates an email address from the current member.
func (h *UserHandler) RemoveEmail(c echo.Context) error {
	userID, ok := c.Get("userID").(int)
	if !ok {
		return response.Unauthorized(c, "INVALID_SESSION", "Invalid user id in session")
	}

	var req emailRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid email input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.uc.RemoveEmailAddress(c.Request().Context(), userID, req.Address)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Email address removed")
}

// reorderEmailsRequest is the wire shape of an email reorder request.
type reorderEmailsRequest struct {
	Addresses []string `json:"addresses" validate:"required,min=1,dive,required,email"`
}

// ReorderEmails rewrites the display order of the member's email addresses.
func (h *UserHandler) ReorderEmails(c echo.Context) error {
	userID, ok := c.Get("userID").(int)
	if !ok {
		return response.Unauthorized(c, "INVALID_SESSION", "Invalid user id in session")
	}

	var req reorderEmailsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid email order input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.uc.ReorderEmailAddresses(c.Request().Context(), userID, req.Addresses)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Email addresses reordered")
}

// setRoleRequest is the wire shape of a role assignment request.
type setRoleRequest struct {
	UserID int    `json:"userId" validate:"required"`
	Role   string `json:"role" validate:"required"`
}

// SetRole grants a role to a member's credential.
func (h *UserHandler) SetRole(c echo.Context) error {
	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.roleUC.SetRole(c.Request().Context(), req.UserID, req.Role); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Role assigned")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

// setCookieArtifact writes a cookie produced by the usecase layer onto the
// response. Session cookies are kept away from scripts; the identity cookie is
// not, so storefront pages can read it.
func setCookieArtifact(c echo.Context, artifact *usecase.CookieArtifact, httpOnly bool) {
	if artifact == nil {
		return
	}

	c.SetCookie(&http.Cookie{
		Name:     artifact.Name,
		Value:    artifact.Value,
		Domain:   artifact.Domain,
		Path:     "/",
		Expires:  artifact.Expires,
		HttpOnly: httpOnly,
		SameSite: http.SameSiteLaxMode,
	})
}
