package model

// WebAddressModel is the GORM model for a web address. IsDead is a one-way
// flag.
type WebAddressModel struct {
	ID     int    `gorm:"column:id;primaryKey;autoIncrement"`
	URL    string `gorm:"column:url;size:512;uniqueIndex;not null"`
	IsDead bool   `gorm:"column:is_dead;not null;default:false"`
}

// TableName specifies the table name for WebAddressModel.
func (WebAddressModel) TableName() string {
	return "web_addresses"
}
