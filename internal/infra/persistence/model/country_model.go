// Package model contains the GORM persistence models for the membership schema.
// Models are mapped to and from pure domain entities at the repository boundary.
package model

// CountryModel is the GORM model for country reference data.
type CountryModel struct {
	ID   int    `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name;size:128;uniqueIndex;not null"`
}

// TableName specifies the table name for CountryModel.
func (CountryModel) TableName() string {
	return "countries"
}
