package model

import (
	"time"

	"github.com/google/uuid"
)

// EmailAddressModel is the GORM model for an email address. Rows are never
// deleted.
type EmailAddressModel struct {
	ID           int       `gorm:"column:id;primaryKey;autoIncrement"`
	Address      string    `gorm:"column:address;size:256;uniqueIndex;not null"`
	Confirmed    bool      `gorm:"column:confirmed;not null;default:false"`
	ConfirmToken uuid.UUID `gorm:"column:confirm_token;type:uuid;uniqueIndex;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

// TableName specifies the table name for EmailAddressModel.
func (EmailAddressModel) TableName() string {
	return "email_addresses"
}

// PhoneNumberModel is the GORM model for a phone number candidate. The digits
// column is deliberately not unique: the accessor inserts one row per call.
type PhoneNumberModel struct {
	ID     int    `gorm:"column:id;primaryKey;autoIncrement"`
	Digits string `gorm:"column:digits;size:20;not null"`
}

// TableName specifies the table name for PhoneNumberModel.
func (PhoneNumberModel) TableName() string {
	return "phone_numbers"
}
