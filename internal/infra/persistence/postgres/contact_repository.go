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

// contactRepository implements the domain ContactRepository interface using GORM.
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository is the constructor for contactRepository.
func NewContactRepository(db *gorm.DB) repository.ContactRepository {
	return &contactRepository{db: db}
}

// FindEmailByAddress retrieves an email address by its unique address text.
func (repo *contactRepository) FindEmailByAddress(ctx context.Context, address string) (*entity.EmailAddress, error) {
	var emailM model.EmailAddressModel
	if err := repo.db.WithContext(ctx).First(&emailM, "address = ?", address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrEmailNotFound
		}

		return nil, errors.Wrap(err, "failed to find email by address")
	}

	return toEmailDomain(&emailM), nil
}

// FindEmailByID retrieves an email address by its numeric id.
func (repo *contactRepository) FindEmailByID(ctx context.Context, id int) (*entity.EmailAddress, error) {
	var emailM model.EmailAddressModel
	if err := repo.db.WithContext(ctx).First(&emailM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrEmailNotFound
		}

		return nil, errors.Wrap(err, "failed to find email by id")
	}

	return toEmailDomain(&emailM), nil
}

// FindEmailByToken retrieves an email address by its confirmation token.
func (repo *contactRepository) FindEmailByToken(ctx context.Context, token uuid.UUID) (*entity.EmailAddress, error) {
	var emailM model.EmailAddressModel
	if err := repo.db.WithContext(ctx).First(&emailM, "confirm_token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrEmailNotFound
		}

		return nil, errors.Wrap(err, "failed to find email by token")
	}

	return toEmailDomain(&emailM), nil
}

// CreateEmail persists a new email address and backfills the generated id.
func (repo *contactRepository) CreateEmail(ctx context.Context, email *entity.EmailAddress) error {
	emailM := fromEmailDomain(email)

	if err := repo.db.WithContext(ctx).Create(emailM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("email address already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidArgument.WrapMessage("missing required email information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create email address")
	}

	email.ID = emailM.ID
	email.CreatedAt = emailM.CreatedAt

	return nil
}

// UpdateEmail modifies an existing email address record.
func (repo *contactRepository) UpdateEmail(ctx context.Context, email *entity.EmailAddress) error {
	emailM := fromEmailDomain(email)

	if err := repo.db.WithContext(ctx).Save(emailM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("email address already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update email address")
	}

	return nil
}

// CreatePhoneNumber persists a phone number candidate. No de-duplication:
// each call inserts a row and the owner is whoever points at the id.
func (repo *contactRepository) CreatePhoneNumber(ctx context.Context, phone *entity.PhoneNumber) error {
	phoneM := &model.PhoneNumberModel{Digits: phone.Digits}

	if err := repo.db.WithContext(ctx).Create(phoneM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create phone number")
	}

	phone.ID = phoneM.ID

	return nil
}

// FindPhoneByID retrieves a phone number by its numeric id.
func (repo *contactRepository) FindPhoneByID(ctx context.Context, id int) (*entity.PhoneNumber, error) {
	var phoneM model.PhoneNumberModel
	if err := repo.db.WithContext(ctx).First(&phoneM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPhoneNotFound
		}

		return nil, errors.Wrap(err, "failed to find phone by id")
	}

	return &entity.PhoneNumber{ID: phoneM.ID, Digits: phoneM.Digits}, nil
}

// --- Mapper Functions ---

// toEmailDomain converts a GORM EmailAddressModel to a domain EmailAddress entity.
func toEmailDomain(data *model.EmailAddressModel) *entity.EmailAddress {
	if data == nil {
		return nil
	}

	return &entity.EmailAddress{
		ID:           data.ID,
		Address:      data.Address,
		Confirmed:    data.Confirmed,
		ConfirmToken: data.ConfirmToken,
		CreatedAt:    data.CreatedAt,
	}
}

// fromEmailDomain converts a domain EmailAddress entity to a GORM EmailAddressModel.
func fromEmailDomain(data *entity.EmailAddress) *model.EmailAddressModel {
	if data == nil {
		return nil
	}

	return &model.EmailAddressModel{
		ID:           data.ID,
		Address:      data.Address,
		Confirmed:    data.Confirmed,
		ConfirmToken: data.ConfirmToken,
		CreatedAt:    data.CreatedAt,
	}
}
