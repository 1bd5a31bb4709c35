// Package identity contains the default identity provider adapter: a SQL-backed
// credential and role store that fulfils the service.IdentityProvider contract.
// The provider owns its own tables, separate from the membership schema, so it
// stays swappable for a hosted provider without touching relational entities.
package identity

import (
	"time"

	"github.com/google/uuid"
)

// CredentialModel is the GORM model for a login credential.
type CredentialModel struct {
	Key                uuid.UUID `gorm:"column:key;type:uuid;primaryKey"`
	Username           string    `gorm:"column:username;size:256;uniqueIndex;not null"`
	Email              string    `gorm:"column:email;size:256;not null"`
	PasswordHash       string    `gorm:"column:password_hash;size:128;not null"`
	Approved           bool      `gorm:"column:approved;not null;default:false"`
	MustChangePassword bool      `gorm:"column:must_change_password;not null;default:false"`
	CreatedAt          time.Time `gorm:"column:created_at"`
}

// TableName specifies the table name for CredentialModel.
func (CredentialModel) TableName() string {
	return "provider_credentials"
}

// RoleModel is the GORM model for a registered role name.
type RoleModel struct {
	Name string `gorm:"column:name;size:64;primaryKey"`
}

// TableName specifies the table name for RoleModel.
func (RoleModel) TableName() string {
	return "provider_roles"
}

// CredentialRoleModel links a credential to a registered role.
type CredentialRoleModel struct {
	CredentialKey uuid.UUID `gorm:"column:credential_key;type:uuid;primaryKey"`
	RoleName      string    `gorm:"column:role_name;size:64;primaryKey"`
}

// TableName specifies the table name for CredentialRoleModel.
func (CredentialRoleModel) TableName() string {
	return "provider_credential_roles"
}
