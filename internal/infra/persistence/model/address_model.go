package model

import (
	"time"

	"github.com/google/uuid"
)

// AddressModel is the GORM model for a postal address. Every address, including
// the country-only variant, references exactly one email address and one
// country.
type AddressModel struct {
	ID        int           `gorm:"column:id;primaryKey;autoIncrement"`
	EmailID   int           `gorm:"column:email_id;index;not null"`
	CountryID int           `gorm:"column:country_id;not null"`
	Token     uuid.UUID     `gorm:"column:token;type:uuid;uniqueIndex;not null"`
	Title     string        `gorm:"column:title;size:20"`
	FirstName string        `gorm:"column:first_name;size:50"`
	LastName  string        `gorm:"column:last_name;size:50"`
	HouseName string        `gorm:"column:house_name;size:100"`
	Street    string        `gorm:"column:street;size:100"`
	Town      string        `gorm:"column:town;size:100"`
	City      string        `gorm:"column:city;size:100"`
	County    string        `gorm:"column:county;size:100"`
	Postcode  string        `gorm:"column:postcode;size:20"`
	Country   *CountryModel `gorm:"foreignKey:CountryID"`
	CreatedAt time.Time     `gorm:"column:created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at"`
}

// TableName specifies the table name for AddressModel.
func (AddressModel) TableName() string {
	return "addresses"
}
