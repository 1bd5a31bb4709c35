package postgres

import (
	"context"

	"membership/internal/domain/entity"
	domainerrors "membership/internal/domain/errors"
	"membership/internal/domain/repository"
	"membership/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// webAddressRepository implements the domain WebAddressRepository interface
// using GORM.
type webAddressRepository struct {
	db *gorm.DB
}

// NewWebAddressRepository is the constructor for webAddressRepository.
func NewWebAddressRepository(db *gorm.DB) repository.WebAddressRepository {
	return &webAddressRepository{db: db}
}

// CreateWebAddress persists a new web address and backfills the generated id.
func (repo *webAddressRepository) CreateWebAddress(ctx context.Context, webAddress *entity.WebAddress) error {
	webAddressM := fromWebAddressDomain(webAddress)

	if err := repo.db.WithContext(ctx).Create(webAddressM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("web address already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create web address")
	}

	webAddress.ID = webAddressM.ID

	return nil
}

// FindWebAddressByID retrieves a web address by its numeric id.
func (repo *webAddressRepository) FindWebAddressByID(ctx context.Context, id int) (*entity.WebAddress, error) {
	var webAddressM model.WebAddressModel
	if err := repo.db.WithContext(ctx).First(&webAddressM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrWebAddressNotFound
		}

		return nil, errors.Wrap(err, "failed to find web address by id")
	}

	return toWebAddressDomain(&webAddressM), nil
}

// FindWebAddressByURL retrieves a web address by its unique URL text.
func (repo *webAddressRepository) FindWebAddressByURL(ctx context.Context, url string) (*entity.WebAddress, error) {
	var webAddressM model.WebAddressModel
	if err := repo.db.WithContext(ctx).First(&webAddressM, "url = ?", url).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrWebAddressNotFound
		}

		return nil, errors.Wrap(err, "failed to find web address by url")
	}

	return toWebAddressDomain(&webAddressM), nil
}

// UpdateWebAddress modifies an existing web address record. The dead flag is
// one-way: once set it is never cleared, which the usecase layer enforces.
func (repo *webAddressRepository) UpdateWebAddress(ctx context.Context, webAddress *entity.WebAddress) error {
	result := repo.db.WithContext(ctx).Model(&model.WebAddressModel{}).
		Where("id = ?", webAddress.ID).
		Updates(map[string]any{
			"url":     webAddress.URL,
			"is_dead": webAddress.IsDead,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrConflict.WrapMessage("web address already exists")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update web address")
	}
	if result.RowsAffected == 0 {
		return repository.ErrWebAddressNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toWebAddressDomain(data *model.WebAddressModel) *entity.WebAddress {
	if data == nil {
		return nil
	}

	return &entity.WebAddress{
		ID:     data.ID,
		URL:    data.URL,
		IsDead: data.IsDead,
	}
}

func fromWebAddressDomain(data *entity.WebAddress) *model.WebAddressModel {
	if data == nil {
		return nil
	}

	return &model.WebAddressModel{
		ID:     data.ID,
		URL:    data.URL,
		IsDead: data.IsDead,
	}
}
