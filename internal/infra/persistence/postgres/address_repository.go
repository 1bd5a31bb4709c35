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

// addressRepository implements the domain AddressRepository interface using GORM.
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepository{db: db}
}

// CreateAddress persists a new address and backfills the generated id.
func (repo *addressRepository) CreateAddress(ctx context.Context, address *entity.Address) error {
	addressM := fromAddressDomain(address)

	if err := repo.db.WithContext(ctx).Create(addressM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrNotFound.WrapMessage("referenced country or email does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidArgument.WrapMessage("missing required address information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create address")
	}

	address.ID = addressM.ID
	address.CreatedAt = addressM.CreatedAt
	address.UpdatedAt = addressM.UpdatedAt

	return nil
}

// FindAddressByID retrieves an address by its numeric id, with the country
// reference resolved.
func (repo *addressRepository) FindAddressByID(ctx context.Context, id int) (*entity.Address, error) {
	var addressM model.AddressModel
	if err := repo.db.WithContext(ctx).Preload("Country").First(&addressM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "failed to find address by id")
	}

	return toAddressDomain(&addressM), nil
}

// FindAddressByToken retrieves an address by its opaque lookup token.
func (repo *addressRepository) FindAddressByToken(ctx context.Context, token uuid.UUID) (*entity.Address, error) {
	var addressM model.AddressModel
	if err := repo.db.WithContext(ctx).Preload("Country").First(&addressM, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "failed to find address by token")
	}

	return toAddressDomain(&addressM), nil
}

// FindAddressesByEmailID retrieves all addresses owned by an email address,
// oldest first.
func (repo *addressRepository) FindAddressesByEmailID(ctx context.Context, emailID int) ([]*entity.Address, error) {
	var addressMs []*model.AddressModel
	if err := repo.db.WithContext(ctx).
		Preload("Country").
		Where("email_id = ?", emailID).
		Order("id").
		Find(&addressMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find addresses by email id")
	}

	addresses := make([]*entity.Address, 0, len(addressMs))
	for _, addressM := range addressMs {
		addresses = append(addresses, toAddressDomain(addressM))
	}

	return addresses, nil
}

// UpdateAddress updates an existing address record in place.
func (repo *addressRepository) UpdateAddress(ctx context.Context, address *entity.Address) error {
	addressM := fromAddressDomain(address)

	result := repo.db.WithContext(ctx).Model(&model.AddressModel{}).
		Where("id = ?", addressM.ID).
		Updates(map[string]any{
			"email_id":   addressM.EmailID,
			"country_id": addressM.CountryID,
			"title":      addressM.Title,
			"first_name": addressM.FirstName,
			"last_name":  addressM.LastName,
			"house_name": addressM.HouseName,
			"street":     addressM.Street,
			"town":       addressM.Town,
			"city":       addressM.City,
			"county":     addressM.County,
			"postcode":   addressM.Postcode,
		})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrNotFound.WrapMessage("referenced country or email does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update address")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAddressNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toAddressDomain converts a GORM AddressModel to a domain Address entity.
func toAddressDomain(data *model.AddressModel) *entity.Address {
	if data == nil {
		return nil
	}

	return &entity.Address{
		ID:        data.ID,
		EmailID:   data.EmailID,
		CountryID: data.CountryID,
		Token:     data.Token,
		Title:     data.Title,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		HouseName: data.HouseName,
		Street:    data.Street,
		Town:      data.Town,
		City:      data.City,
		County:    data.County,
		Postcode:  data.Postcode,
		Country:   toCountryDomain(data.Country),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromAddressDomain converts a domain Address entity to a GORM AddressModel.
// The Country association is intentionally left nil so GORM never upserts
// reference data.
func fromAddressDomain(data *entity.Address) *model.AddressModel {
	if data == nil {
		return nil
	}

	return &model.AddressModel{
		ID:        data.ID,
		EmailID:   data.EmailID,
		CountryID: data.CountryID,
		Token:     data.Token,
		Title:     data.Title,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		HouseName: data.HouseName,
		Street:    data.Street,
		Town:      data.Town,
		City:      data.City,
		County:    data.County,
		Postcode:  data.Postcode,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
