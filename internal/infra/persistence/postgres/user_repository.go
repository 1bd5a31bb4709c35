package postgres

import (
	"context"

	"membership/internal/domain/entity"
	domainerrors "membership/internal/domain/errors"
	"membership/internal/domain/repository"
	"membership/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their numeric id, with the ordered
// email-address association set loaded.
func (repo *userRepository) FindByID(ctx context.Context, id int) (*entity.SystemUser, error) {
	var userM model.SystemUserModel
	if err := repo.db.WithContext(ctx).Preload("PhoneNumber").First(&userM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return repo.hydrate(ctx, &userM)
}

// FindByProviderKey retrieves a single user by their opaque identity-provider key.
func (repo *userRepository) FindByProviderKey(ctx context.Context, key uuid.UUID) (*entity.SystemUser, error) {
	var userM model.SystemUserModel
	if err := repo.db.WithContext(ctx).Preload("PhoneNumber").First(&userM, "provider_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by provider key")
	}

	return repo.hydrate(ctx, &userM)
}

// FindByPrimaryEmailID retrieves the user that claims the given email address
// as primary, if any.
func (repo *userRepository) FindByPrimaryEmailID(ctx context.Context, emailID int) (*entity.SystemUser, error) {
	var userM model.SystemUserModel
	if err := repo.db.WithContext(ctx).Preload("PhoneNumber").First(&userM, "primary_email_id = ?", emailID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by primary email id")
	}

	return repo.hydrate(ctx, &userM)
}

// Create persists a new user entity. The unique index on the primary email
// claim turns a lost race into ErrEmailClaimed rather than a duplicate claim.
func (repo *userRepository) Create(ctx context.Context, user *entity.SystemUser) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrEmailClaimed
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidArgument.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing user entity.
func (repo *userRepository) Update(ctx context.Context, user *entity.SystemUser) error {
	userM := fromUserDomain(user)

	result := repo.db.WithContext(ctx).Model(&model.SystemUserModel{}).
		Where("id = ?", userM.ID).
		Updates(map[string]any{
			"first_name":       userM.FirstName,
			"surname":          userM.Surname,
			"has_newsletter":   userM.HasNewsletter,
			"primary_email_id": userM.PrimaryEmailID,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrEmailClaimed
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// AddEmailAssociation links an email address to the user with the given
// display order. Re-linking an already associated address is a conflict.
func (repo *userRepository) AddEmailAssociation(ctx context.Context, userID, emailID, displayOrder int) error {
	link := &model.UserEmailModel{
		UserID:       userID,
		EmailID:      emailID,
		DisplayOrder: displayOrder,
	}

	if err := repo.db.WithContext(ctx).Create(link).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("email address already associated with user")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrNotFound.WrapMessage("user or email address does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to associate email address")
	}

	return nil
}

// RemoveEmailAssociation unlinks an email address from the user. The underlying
// email address record is never deleted.
func (repo *userRepository) RemoveEmailAssociation(ctx context.Context, userID, emailID int) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND email_id = ?", userID, emailID).
		Delete(&model.UserEmailModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to dissociate email address")
	}
	if result.RowsAffected == 0 {
		return repository.ErrEmailNotFound
	}

	return nil
}

// UpdateEmailOrder changes the display order of one email association.
func (repo *userRepository) UpdateEmailOrder(ctx context.Context, userID, emailID, displayOrder int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserEmailModel{}).
		Where("user_id = ? AND email_id = ?", userID, emailID).
		Update("display_order", displayOrder)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update email order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrEmailNotFound
	}

	return nil
}

// FindEmailsByUserID retrieves the user's email addresses ordered by display
// order, then by association age for stable ties.
func (repo *userRepository) FindEmailsByUserID(ctx context.Context, userID int) ([]*entity.EmailAddress, error) {
	var links []*model.UserEmailModel
	if err := repo.db.WithContext(ctx).
		Preload("Email").
		Where("user_id = ?", userID).
		Order("display_order, email_id").
		Find(&links).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find emails by user id")
	}

	emails := make([]*entity.EmailAddress, 0, len(links))
	for _, link := range links {
		email := toEmailDomain(link.Email)
		if email == nil {
			continue
		}
		email.DisplayOrder = link.DisplayOrder
		emails = append(emails, email)
	}

	return emails, nil
}

// hydrate attaches the ordered email-address set to a loaded user row.
func (repo *userRepository) hydrate(ctx context.Context, userM *model.SystemUserModel) (*entity.SystemUser, error) {
	user := toUserDomain(userM)

	emails, err := repo.FindEmailsByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.EmailAddresses = emails

	return user, nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM SystemUserModel to a domain SystemUser entity.
// ForcePasswordChange is derived from the credential record by the caller, not
// stored here.
func toUserDomain(data *model.SystemUserModel) *entity.SystemUser {
	if data == nil {
		return nil
	}

	user := &entity.SystemUser{
		ID:             data.ID,
		ProviderKey:    data.ProviderKey,
		FirstName:      data.FirstName,
		Surname:        data.Surname,
		HasNewsletter:  data.HasNewsletter,
		PrimaryEmailID: data.PrimaryEmailID,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
	if data.PhoneNumber != nil {
		user.Phone = data.PhoneNumber.Digits
	}

	return user
}

// fromUserDomain converts a domain SystemUser entity to a GORM SystemUserModel.
// A non-empty phone creates the phone row through the association so the insert
// stays inside the surrounding transaction.
func fromUserDomain(data *entity.SystemUser) *model.SystemUserModel {
	if data == nil {
		return nil
	}

	userM := &model.SystemUserModel{
		ID:             data.ID,
		ProviderKey:    data.ProviderKey,
		FirstName:      data.FirstName,
		Surname:        data.Surname,
		HasNewsletter:  data.HasNewsletter,
		PrimaryEmailID: data.PrimaryEmailID,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
	if data.Phone != "" {
		userM.PhoneNumber = &model.PhoneNumberModel{Digits: data.Phone}
	}

	return userM
}
