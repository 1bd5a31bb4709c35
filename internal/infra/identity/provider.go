package identity

import (
	"context"
	"log/slog"

	"membership/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// sqlProvider implements service.IdentityProvider against the provider tables.
type sqlProvider struct {
	db     *gorm.DB
	hasher service.PasswordHasher
	logger *slog.Logger
}

// Params holds dependencies for the provider, injected by Fx.
type Params struct {
	fx.In

	DB     *gorm.DB
	Hasher service.PasswordHasher
	Logger *slog.Logger
}

// NewProvider is the constructor for the SQL-backed identity provider.
func NewProvider(params Params) service.IdentityProvider {
	return &sqlProvider{
		db:     params.DB,
		hasher: params.Hasher,
		logger: params.Logger,
	}
}

// CreateCredential registers a new credential keyed by username. The password
// is validated against the strength policy before anything is written.
func (p *sqlProvider) CreateCredential(ctx context.Context, username, password, email string) (*service.Credential, error) {
	if err := p.hasher.ValidatePasswordStrength(password); err != nil {
		return nil, err
	}

	var existing int64
	if err := p.db.WithContext(ctx).Model(&CredentialModel{}).
		Where("username = ?", username).
		Count(&existing).Error; err != nil {
		return nil, service.NewProviderError(service.ProviderCodeUnavailable, err.Error())
	}
	if existing > 0 {
		return nil, service.NewProviderError(service.ProviderCodeDuplicateUsername, "username already registered")
	}

	hash, err := p.hasher.Hash(password)
	if err != nil {
		return nil, service.NewProviderError(service.ProviderCodeUnavailable, err.Error())
	}

	record := &CredentialModel{
		Key:          uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := p.db.WithContext(ctx).Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, service.NewProviderError(service.ProviderCodeDuplicateUsername, "username already registered")
		}

		return nil, service.NewProviderError(service.ProviderCodeUnavailable, err.Error())
	}

	p.logger.Info("Credential created", slog.String("username", username))

	return toCredential(record), nil
}

// ApproveCredential marks a freshly created credential approved/active.
func (p *sqlProvider) ApproveCredential(ctx context.Context, key uuid.UUID) error {
	result := p.db.WithContext(ctx).Model(&CredentialModel{}).
		Where("key = ?", key).
		Update("approved", true)
	if result.Error != nil {
		return service.NewProviderError(service.ProviderCodeUnavailable, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return service.NewProviderError(service.ProviderCodeNotFound, "credential not found")
	}

	return nil
}

// ValidateCredential checks a username/password pair. A bad pair is a false
// return, not an error.
func (p *sqlProvider) ValidateCredential(ctx context.Context, username, password string) (bool, error) {
	record, err := p.findByUsername(ctx, username)
	if err != nil {
		var provErr *service.ProviderError
		if errors.As(err, &provErr) && provErr.Code == service.ProviderCodeNotFound {
			return false, nil
		}

		return false, err
	}
	if !record.Approved {
		return false, nil
	}

	return p.hasher.Check(password, record.PasswordHash), nil
}

// GetCredentialByKey retrieves a credential by its provider key.
func (p *sqlProvider) GetCredentialByKey(ctx context.Context, key uuid.UUID) (*service.Credential, error) {
	var record CredentialModel
	if err := p.db.WithContext(ctx).Where("key = ?", key).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.NewProviderError(service.ProviderCodeNotFound, "credential not found")
		}

		return nil, service.NewProviderError(service.ProviderCodeUnavailable, err.Error())
	}

	return toCredential(&record), nil
}

// GetCredentialByUsername retrieves a credential by username.
func (p *sqlProvider) GetCredentialByUsername(ctx context.Context, username string) (*service.Credential, error) {
	record, err := p.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return toCredential(record), nil
}

// ResetPassword generates and stores a new secret for the credential and
// returns it. The credential is flagged to force a password change on next
// login; the old secret is never recoverable.
func (p *sqlProvider) ResetPassword(ctx context.Context, key uuid.UUID) (string, error) {
	newSecret, err := generateSecret()
	if err != nil {
		return "", service.NewProviderError(service.ProviderCodeUnavailable, err.Error())
	}

	hash, err := p.hasher.Hash(newSecret)
	if err != nil {
		return "", service.NewProviderError(service.ProviderCodeUnavailable, err.Error())
	}

	result := p.db.WithContext(ctx).Model(&CredentialModel{}).
		Where("key = ?", key).
		Updates(map[string]any{
			"password_hash":        hash,
			"must_change_password": true,
		})
	if result.Error != nil {
		return "", service.NewProviderError(service.ProviderCodeUnavailable, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return "", service.NewProviderError(service.ProviderCodeNotFound, "credential not found")
	}

	p.logger.Info("Credential password reset", slog.String("key", key.String()))

	return newSecret, nil
}

// ChangePassword replaces the credential's secret after validating the old
// one. A bad old secret is a false return, not an error.
func (p *sqlProvider) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) (bool, error) {
	record, err := p.findByUsername(ctx, username)
	if err != nil {
		return false, err
	}

	if !p.hasher.Check(oldPassword, record.PasswordHash) {
		return false, nil
	}

	if err := p.hasher.ValidatePasswordStrength(newPassword); err != nil {
		return false, err
	}

	hash, err := p.hasher.Hash(newPassword)
	if err != nil {
		return false, service.NewProviderError(service.ProviderCodeUnavailable, err.Error())
	}

	if err := p.db.WithContext(ctx).Model(&CredentialModel{}).
		Where("key = ?", record.Key).
		Updates(map[string]any{
			"password_hash":        hash,
			"must_change_password": false,
		}).Error; err != nil {
		return false, service.NewProviderError(service.ProviderCodeUnavailable, err.Error())
	}

	return true, nil
}

// DeleteCredential removes a credential record. This is the compensating
// action for relational failures after the provider accepted the credential.
func (p *sqlProvider) DeleteCredential(ctx context.Context, key uuid.UUID) error {
	if err := p.db.WithContext(ctx).Where("credential_key = ?", key).Delete(&CredentialRoleModel{}).Error; err != nil {
		return service.NewProviderError(service.ProviderCodeUnavailable, err.Error())
	}
	if err := p.db.WithContext(ctx).Where("key = ?", key).Delete(&CredentialModel{}).Error; err != nil {
		return service.NewProviderError(service.ProviderCodeUnavailable, err.Error())
	}

	p.logger.Info("Credential deleted", slog.String("key", key.String()))

	return nil
}

// RoleExists reports whether a role name is registered with the provider.
func (p *sqlProvider) RoleExists(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := p.db.WithContext(ctx).Model(&RoleModel{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, service.NewProviderError(service.ProviderCodeUnavailable, err.Error())
	}

	return count > 0, nil
}

// SetRole assigns a named role to the credential. Assigning a role the
// credential already holds is a no-op.
func (p *sqlProvider) SetRole(ctx context.Context, key uuid.UUID, role string) error {
	link := &CredentialRoleModel{CredentialKey: key, RoleName: role}
	if err := p.db.WithContext(ctx).FirstOrCreate(link, link).Error; err != nil {
		return service.NewProviderError(service.ProviderCodeUnavailable, err.Error())
	}

	return nil
}

func (p *sqlProvider) findByUsername(ctx context.Context, username string) (*CredentialModel, error) {
	var record CredentialModel
	if err := p.db.WithContext(ctx).Where("username = ?", username).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.NewProviderError(service.ProviderCodeNotFound, "credential not found")
		}

		return nil, service.NewProviderError(service.ProviderCodeUnavailable, err.Error())
	}

	return &record, nil
}

func toCredential(data *CredentialModel) *service.Credential {
	return &service.Credential{
		Key:                data.Key,
		Username:           data.Username,
		Email:              data.Email,
		Approved:           data.Approved,
		MustChangePassword: data.MustChangePassword,
		CreatedAt:          data.CreatedAt,
	}
}
