package model

import (
	"time"

	"github.com/google/uuid"
)

// SystemUserModel is the GORM model for a storefront member. The unique index
// on PrimaryEmailID enforces the claim invariant: at most one user may claim a
// given email address as primary.
type SystemUserModel struct {
	ID             int               `gorm:"column:id;primaryKey;autoIncrement"`
	ProviderKey    uuid.UUID         `gorm:"column:provider_key;type:uuid;uniqueIndex;not null"`
	FirstName      string            `gorm:"column:first_name;size:50;not null"`
	Surname        string            `gorm:"column:surname;size:50;not null"`
	PhoneNumberID  *int              `gorm:"column:phone_number_id"`
	HasNewsletter  bool              `gorm:"column:has_newsletter;not null;default:false"`
	PrimaryEmailID int               `gorm:"column:primary_email_id;uniqueIndex;not null"`
	PhoneNumber    *PhoneNumberModel `gorm:"foreignKey:PhoneNumberID"`
	CreatedAt      time.Time         `gorm:"column:created_at"`
	UpdatedAt      time.Time         `gorm:"column:updated_at"`
}

// TableName specifies the table name for SystemUserModel.
func (SystemUserModel) TableName() string {
	return "system_users"
}

// UserEmailModel is the association table between users and email addresses,
// carrying the per-user display order.
type UserEmailModel struct {
	UserID       int                `gorm:"column:user_id;primaryKey"`
	EmailID      int                `gorm:"column:email_id;primaryKey"`
	DisplayOrder int                `gorm:"column:display_order;not null;default:0"`
	Email        *EmailAddressModel `gorm:"foreignKey:EmailID"`
}

// TableName specifies the table name for UserEmailModel.
func (UserEmailModel) TableName() string {
	return "system_user_email_addresses"
}
