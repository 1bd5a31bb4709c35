// Package entity contains the core business objects of the membership domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SystemUser is a storefront member. The identity-provider key links the row
// 1:1 with the external credential record; the ordered EmailAddresses set is
// loaded through the association table. The address supplied at creation is
// recorded as the primary claim, and at most one SystemUser may claim a given
// EmailAddress as primary at a time. A SystemUser is never deleted.
type SystemUser struct {
	ID                  int             // The numeric identifier for the user.
	ProviderKey         uuid.UUID       // Opaque 128-bit identity-provider key, 1:1 with the credential record.
	FirstName           string          // Mandatory, non-empty.
	Surname             string          // Mandatory, non-empty.
	Phone               string          // Optional phone number, denormalized as digits at the API surface.
	HasNewsletter       bool            // Whether the user opted into the newsletter.
	ForcePasswordChange bool            // Derived from the credential record at load time.
	PrimaryEmailID      int             // The email address claimed as primary at creation.
	EmailAddresses      []*EmailAddress // Associated addresses ordered by per-user display order.
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// PrimaryEmail returns the email address this user claims as primary, or nil
// when the association set has not been loaded.
func (u *SystemUser) PrimaryEmail() *EmailAddress {
	for _, e := range u.EmailAddresses {
		if e.ID == u.PrimaryEmailID {
			return e
		}
	}

	return nil
}

// HasEmail reports whether the given address text is in the user's loaded
// email-address set.
func (u *SystemUser) HasEmail(address string) bool {
	for _, e := range u.EmailAddresses {
		if e.Address == address {
			return true
		}
	}

	return false
}
