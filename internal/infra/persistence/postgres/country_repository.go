package postgres

import (
	"context"

	"membership/internal/domain/entity"
	"membership/internal/domain/repository"
	"membership/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// countryRepository implements the domain CountryRepository interface using GORM.
type countryRepository struct {
	db *gorm.DB
}

// NewCountryRepository is the constructor for countryRepository.
func NewCountryRepository(db *gorm.DB) repository.CountryRepository {
	return &countryRepository{db: db}
}

// FindByID retrieves a country by its numeric id.
func (repo *countryRepository) FindByID(ctx context.Context, id int) (*entity.Country, error) {
	var countryM model.CountryModel
	if err := repo.db.WithContext(ctx).First(&countryM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCountryNotFound
		}

		return nil, errors.Wrap(err, "failed to find country by id")
	}

	return toCountryDomain(&countryM), nil
}

// FindByName retrieves a country by its unique display text.
func (repo *countryRepository) FindByName(ctx context.Context, name string) (*entity.Country, error) {
	var countryM model.CountryModel
	if err := repo.db.WithContext(ctx).First(&countryM, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCountryNotFound
		}

		return nil, errors.Wrap(err, "failed to find country by name")
	}

	return toCountryDomain(&countryM), nil
}

// List retrieves all countries ordered by display text.
func (repo *countryRepository) List(ctx context.Context) ([]*entity.Country, error) {
	var countryMs []*model.CountryModel
	if err := repo.db.WithContext(ctx).Order("name").Find(&countryMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list countries")
	}

	countries := make([]*entity.Country, 0, len(countryMs))
	for _, countryM := range countryMs {
		countries = append(countries, toCountryDomain(countryM))
	}

	return countries, nil
}

// toCountryDomain converts a GORM CountryModel to a domain Country entity.
func toCountryDomain(data *model.CountryModel) *entity.Country {
	if data == nil {
		return nil
	}

	return &entity.Country{
		ID:   data.ID,
		Name: data.Name,
	}
}
