// Package entity contains the core business objects of the membership domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailAddress is the anchor entity of the membership model: postal addresses
// and identity-provider credentials both reference it, so it must exist before
// either can be created.
type EmailAddress struct {
	ID           int       // The numeric identifier for the email address.
	Address      string    // The unique, validated email address text.
	Confirmed    bool      // Whether the owner has confirmed the address. Flips exactly once.
	ConfirmToken uuid.UUID // Opaque 128-bit confirmation token, unique per address.
	DisplayOrder int       // Per-user display order; meaningful only when attached to a user.
	CreatedAt    time.Time // Timestamp of when this address was first recorded.
}

// PhoneNumber is a normalized digit string created on demand. The accessor does
// not deduplicate: each call inserts a candidate and the owner is whoever points
// to the resulting id.
type PhoneNumber struct {
	ID     int    // The numeric identifier for the phone number.
	Digits string // The normalized digit string with punctuation stripped.
}
