package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"membership/config"
	deliverycontext "membership/internal/delivery/context"
	"membership/internal/domain/entity"
	domainerrors "membership/internal/domain/errors"
	"membership/internal/domain/repository"
	"membership/internal/domain/service"
	"membership/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Cookie names issued at login. The identity cookie outlives the session and
// lets a returning browser be recognized before authentication.
const (
	SessionCookieName  = "auth_session"
	IdentityCookieName = "member_identity"
)

const maxUserNameLength = 50

// userService implements the UserUsecase interface.
type userService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	contactRepo       repository.ContactRepository
	provider          service.IdentityProvider
	sessionStore      service.SessionStore
	tokenService      service.TokenService
	validate          *validator.Validate
	cookieDomain      string
	identityCookieTTL time.Duration
	logger            *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	ContactRepo  repository.ContactRepository
	Provider     service.IdentityProvider
	SessionStore service.SessionStore
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	cookieDomain := ""
	if params.Config != nil && params.Config.Auth != nil {
		cookieDomain = params.Config.Auth.CookieDomain
	}

	return &userService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		contactRepo:       params.ContactRepo,
		provider:          params.Provider,
		sessionStore:      params.SessionStore,
		tokenService:      params.TokenService,
		validate:          validator.New(),
		cookieDomain:      cookieDomain,
		identityCookieTTL: params.Config.Auth.IdentityCookieTTLOrDefault(),
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateUser orchestrates the complete member registration process: the
// credential is created and approved at the identity provider first, then the
// relational records are written in a single transaction. If the relational
// side fails, the provider credential is deleted again; a provider outage
// during that compensation can still leave an orphaned credential behind.
func (srv *userService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*entity.SystemUser, error) {
	if err := srv.validateCreateUserInput(input); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(input.Email)
	srv.log(ctx).Info("Starting user registration", slog.String("email", email))

	credential, err := srv.provider.CreateCredential(ctx, email, input.Password, email)
	if err != nil {
		srv.log(ctx).Warn("Credential creation rejected", slog.String("email", email), slog.Any("error", err))

		return nil, translateProviderError(err)
	}

	if err := srv.provider.ApproveCredential(ctx, credential.Key); err != nil {
		srv.compensateCredential(ctx, credential.Key, err)

		return nil, translateProviderError(err)
	}

	if !input.DefaultRole.IsEmpty() {
		if err := srv.assignDefaultRole(ctx, credential.Key, input.DefaultRole); err != nil {
			srv.compensateCredential(ctx, credential.Key, err)

			return nil, err
		}
	}

	userID, err := srv.createUserRecords(ctx, input, credential.Key, email)
	if err != nil {
		srv.compensateCredential(ctx, credential.Key, err)

		return nil, err
	}
	srv.log(ctx).Info("User registered", slog.Int("userID", userID))

	return srv.GetUser(ctx, userID)
}

// createUserRecords writes the contact and user rows in one transaction and
// returns the new user id.
func (srv *userService) createUserRecords(ctx context.Context, input *usecase.CreateUserInput, providerKey uuid.UUID, email string) (int, error) {
	phone := ""
	if strings.TrimSpace(input.Phone) != "" {
		normalized, err := normalizePhoneNumber(input.Phone)
		if err != nil {
			return 0, err
		}
		phone = normalized
	}

	var userID int
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		contactRepo := repoFactory.ContactRepo()
		userRepo := repoFactory.UserRepo()

		contact, err := resolveOrCreateEmail(ctx, contactRepo, email)
		if err != nil {
			return err
		}

		if _, err := userRepo.FindByPrimaryEmailID(ctx, contact.ID); err == nil {
			return domainerrors.ErrConflict.WrapMessage("email address already claimed as primary by another user")
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check primary email claim")
		}

		newUser := &entity.SystemUser{
			ProviderKey:    providerKey,
			FirstName:      strings.TrimSpace(input.FirstName),
			Surname:        strings.TrimSpace(input.Surname),
			Phone:          phone,
			HasNewsletter:  input.HasNewsletter,
			PrimaryEmailID: contact.ID,
		}
		if err := userRepo.Create(ctx, newUser); err != nil {
			if errors.Is(err, repository.ErrEmailClaimed) {
				return domainerrors.ErrConflict.WrapMessage("email address already claimed as primary by another user")
			}

			return errors.Wrap(err, "failed to create user")
		}

		if err := userRepo.AddEmailAssociation(ctx, newUser.ID, contact.ID, 0); err != nil {
			return errors.Wrap(err, "failed to associate primary email")
		}
		userID = newUser.ID

		return nil
	})
	if err != nil {
		return 0, err
	}

	return userID, nil
}

// compensateCredential deletes a provider credential after a failed
// registration so the member can retry with the same email.
func (srv *userService) compensateCredential(ctx context.Context, key uuid.UUID, cause error) {
	srv.log(ctx).Warn("Registration rolled back", slog.Any("error", cause))

	if err := srv.provider.DeleteCredential(ctx, key); err != nil {
		srv.log(ctx).Error("Failed to delete credential during rollback", slog.Any("error", err))
	}
}

// assignDefaultRole grants the optional registration role.
func (srv *userService) assignDefaultRole(ctx context.Context, key uuid.UUID, role entity.Role) error {
	exists, err := srv.provider.RoleExists(ctx, role.String())
	if err != nil {
		return translateProviderError(err)
	}
	if !exists {
		return domainerrors.ErrNotFound.WrapMessage("role is not registered")
	}

	if err := srv.provider.SetRole(ctx, key, role.String()); err != nil {
		return translateProviderError(err)
	}

	return nil
}

// AuthenticateUser validates the presented credentials. Unknown addresses and
// wrong passwords both come back as an unauthenticated result, never an error,
// so callers cannot distinguish the two cases.
func (srv *userService) AuthenticateUser(ctx context.Context, input *usecase.AuthenticateInput) (*usecase.AuthenticateOutput, error) {
	rejected := &usecase.AuthenticateOutput{Authenticated: false}

	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return rejected, nil
	}

	credential, err := srv.provider.GetCredentialByUsername(ctx, email)
	if err != nil {
		if isProviderCode(err, service.ProviderCodeNotFound) {
			return rejected, nil
		}

		return nil, translateProviderError(err)
	}
	if !credential.Approved {
		return rejected, nil
	}

	ok, err := srv.provider.ValidateCredential(ctx, email, input.Password)
	if err != nil {
		return nil, translateProviderError(err)
	}
	if !ok {
		srv.log(ctx).Warn("Login rejected", slog.String("email", email))

		return rejected, nil
	}

	user, err := srv.userRepo.FindByProviderKey(ctx, credential.Key)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Credential without a member record; treat as a bad login.
			return rejected, nil
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}
	user.ForcePasswordChange = credential.MustChangePassword

	sessionCookie, err := srv.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	identityCookie := srv.issueIdentityCookie(user)
	srv.log(ctx).Info("User logged in", slog.Int("userID", user.ID))

	return &usecase.AuthenticateOutput{
		Authenticated:       true,
		ForcePasswordChange: credential.MustChangePassword,
		User:                user,
		SessionCookie:       sessionCookie,
		IdentityCookie:      identityCookie,
	}, nil
}

// issueSession generates the signed session token, stores the session artifact
// and wraps both into a cookie for the delivery layer.
func (srv *userService) issueSession(ctx context.Context, user *entity.SystemUser) (*usecase.CookieArtifact, error) {
	token, err := srv.tokenService.GenerateSessionToken(user.ID, user.ProviderKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate session token")
	}

	expires := time.Now().Add(srv.tokenService.GetSessionDuration())
	session := &service.Session{
		ID:        token,
		UserID:    user.ID,
		ExpiresAt: expires,
	}
	if err := srv.sessionStore.Create(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to store session")
	}

	return &usecase.CookieArtifact{
		Name:    SessionCookieName,
		Value:   token,
		Domain:  srv.cookieDomain,
		Expires: expires,
	}, nil
}

// issueIdentityCookie builds the long-lived identity cookie carrying the
// primary contact's confirmation token.
func (srv *userService) issueIdentityCookie(user *entity.SystemUser) *usecase.CookieArtifact {
	primary := user.PrimaryEmail()
	if primary == nil {
		return nil
	}

	return &usecase.CookieArtifact{
		Name:    IdentityCookieName,
		Value:   primary.ConfirmToken.String(),
		Domain:  srv.cookieDomain,
		Expires: time.Now().Add(srv.identityCookieTTL),
	}
}

// GetUser retrieves the full user aggregate by id, with the password-change
// flag derived from the credential record.
func (srv *userService) GetUser(ctx context.Context, id int) (*entity.SystemUser, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("user not found")
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	credential, err := srv.provider.GetCredentialByKey(ctx, user.ProviderKey)
	if err != nil {
		return nil, translateProviderError(err)
	}
	user.ForcePasswordChange = credential.MustChangePassword

	return user, nil
}

// ResetPassword issues a new generated password for the credential bound to
// the email address. The member must change it at next login.
func (srv *userService) ResetPassword(ctx context.Context, email string) (string, error) {
	credential, err := srv.provider.GetCredentialByUsername(ctx, strings.TrimSpace(email))
	if err != nil {
		if isProviderCode(err, service.ProviderCodeNotFound) {
			return "", domainerrors.ErrNotFound.WrapMessage("no credential for email address")
		}

		return "", translateProviderError(err)
	}

	secret, err := srv.provider.ResetPassword(ctx, credential.Key)
	if err != nil {
		return "", translateProviderError(err)
	}
	srv.log(ctx).Info("Password reset issued", slog.String("email", credential.Username))

	return secret, nil
}

// ChangePassword replaces the member's password after revalidating the old one.
func (srv *userService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	ok, err := srv.provider.ChangePassword(ctx, strings.TrimSpace(input.Email), input.OldPassword, input.NewPassword)
	if err != nil {
		return translateProviderError(err)
	}
	if !ok {
		return domainerrors.ErrInvalidArgument.WrapMessage("old password is incorrect")
	}
	srv.log(ctx).Info("Password changed", slog.String("email", input.Email))

	return nil
}

// AddEmailAddress associates an email address with the user, creating the
// contact record if needed.
func (srv *userService) AddEmailAddress(ctx context.Context, userID int, address string) (*entity.SystemUser, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, domainerrors.ErrInvalidArgument.WrapMessage("email address is required")
	}
	if err := srv.validate.Var(address, "email"); err != nil {
		return nil, domainerrors.ErrInvalidArgument.WrapMessage("email address is malformed")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("user not found")
			}

			return errors.Wrap(err, "failed to load user")
		}
		if user.HasEmail(address) {
			return domainerrors.ErrConflict.WrapMessage("email address already associated with user")
		}

		contact, err := resolveOrCreateEmail(ctx, repoFactory.ContactRepo(), address)
		if err != nil {
			return err
		}

		displayOrder := 0
		for _, e := range user.EmailAddresses {
			if e.DisplayOrder >= displayOrder {
				displayOrder = e.DisplayOrder + 1
			}
		}

		return userRepo.AddEmailAssociation(ctx, userID, contact.ID, displayOrder)
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to add email address", slog.Int("userID", userID), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("Email address added", slog.Int("userID", userID))

	return srv.GetUser(ctx, userID)
}

// RemoveEmailAddress dissociates an email address from the user. The primary
// address is pinned and cannot be removed.
func (srv *userService) RemoveEmailAddress(ctx context.Context, userID int, address string) (*entity.SystemUser, error) {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("user not found")
			}

			return errors.Wrap(err, "failed to load user")
		}

		contact, err := repoFactory.ContactRepo().FindEmailByAddress(ctx, strings.TrimSpace(address))
		if err != nil {
			if errors.Is(err, repository.ErrEmailNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("email address not found")
			}

			return errors.Wrap(err, "failed to load email address")
		}
		if contact.ID == user.PrimaryEmailID {
			return domainerrors.ErrInvalidArgument.WrapMessage("primary email address cannot be removed")
		}

		if err := userRepo.RemoveEmailAssociation(ctx, userID, contact.ID); err != nil {
			if errors.Is(err, repository.ErrEmailNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("email address is not associated with user")
			}

			return errors.Wrap(err, "failed to dissociate email address")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to remove email address", slog.Int("userID", userID), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("Email address removed", slog.Int("userID", userID))

	return srv.GetUser(ctx, userID)
}

// ReorderEmailAddresses rewrites the display order of the user's email
// addresses. The list must name exactly the currently associated addresses;
// a partial or padded list is rejected before any order is touched.
func (srv *userService) ReorderEmailAddresses(ctx context.Context, userID int, addresses []string) (*entity.SystemUser, error) {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("user not found")
			}

			return errors.Wrap(err, "failed to load user")
		}
		if len(addresses) != len(user.EmailAddresses) {
			return domainerrors.ErrInvalidArgument.WrapMessage("order list does not match the associated email addresses")
		}

		byAddress := make(map[string]int, len(user.EmailAddresses))
		for _, e := range user.EmailAddresses {
			byAddress[e.Address] = e.ID
		}

		for order, address := range addresses {
			emailID, ok := byAddress[strings.TrimSpace(address)]
			if !ok {
				return domainerrors.ErrInvalidArgument.WrapMessage("order list does not match the associated email addresses")
			}
			// Each address may appear once; a repeat no longer resolves.
			delete(byAddress, strings.TrimSpace(address))

			if err := userRepo.UpdateEmailOrder(ctx, userID, emailID, order); err != nil {
				return errors.Wrap(err, "failed to update email order")
			}
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to reorder email addresses", slog.Int("userID", userID), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("Email addresses reordered", slog.Int("userID", userID))

	return srv.GetUser(ctx, userID)
}

// validateCreateUserInput checks the registration fields ahead of any I/O.
func (srv *userService) validateCreateUserInput(input *usecase.CreateUserInput) error {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return domainerrors.ErrInvalidArgument.WrapMessage("email address is required")
	}
	if err := srv.validate.Var(email, "email"); err != nil {
		return domainerrors.ErrInvalidArgument.WrapMessage("email address is malformed")
	}
	if input.Password == "" {
		return domainerrors.ErrInvalidArgument.WrapMessage("password is required")
	}
	if strings.TrimSpace(input.FirstName) == "" {
		return domainerrors.ErrInvalidArgument.WrapMessage("first name is required")
	}
	if strings.TrimSpace(input.Surname) == "" {
		return domainerrors.ErrInvalidArgument.WrapMessage("surname is required")
	}
	if len(input.FirstName) > maxUserNameLength || len(input.Surname) > maxUserNameLength {
		return domainerrors.ErrInvalidArgument.WrapMessage("name is too long")
	}

	return nil
}

// resolveOrCreateEmail returns the contact record for the address, creating an
// unconfirmed one with a fresh token when none exists yet.
func resolveOrCreateEmail(ctx context.Context, contactRepo repository.ContactRepository, address string) (*entity.EmailAddress, error) {
	contact, err := contactRepo.FindEmailByAddress(ctx, address)
	if err == nil {
		return contact, nil
	}
	if !errors.Is(err, repository.ErrEmailNotFound) {
		return nil, errors.Wrap(err, "failed to resolve email address")
	}

	contact = &entity.EmailAddress{
		Address:      address,
		Confirmed:    false,
		ConfirmToken: uuid.New(),
	}
	if err := contactRepo.CreateEmail(ctx, contact); err != nil {
		return nil, errors.Wrap(err, "failed to create email address")
	}

	return contact, nil
}

// translateProviderError maps a structured provider failure onto the domain
// error taxonomy. Unrecognized codes are surfaced as a provider failure rather
// than silently swallowed.
func translateProviderError(err error) error {
	var providerErr *service.ProviderError
	if !errors.As(err, &providerErr) {
		return domainerrors.ErrIdentityProvider.WrapMessage(err.Error())
	}

	switch providerErr.Code {
	case service.ProviderCodeInvalidPassword:
		return domainerrors.ErrWeakPassword.WrapMessage(providerErr.Reason)
	case service.ProviderCodeDuplicateUsername:
		return domainerrors.ErrDuplicateEmail.WrapMessage(providerErr.Reason)
	case service.ProviderCodeNotFound:
		return domainerrors.ErrNotFound.WrapMessage(providerErr.Reason)
	default:
		return domainerrors.ErrIdentityProvider.WrapMessage(providerErr.Reason)
	}
}

// isProviderCode reports whether err is a ProviderError carrying the code.
func isProviderCode(err error, code service.ProviderErrorCode) bool {
	var providerErr *service.ProviderError

	return errors.As(err, &providerErr) && providerErr.Code == code
}
