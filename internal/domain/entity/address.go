// Package entity contains the core business objects of the membership domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Address is a postal address linked to exactly one EmailAddress and one
// Country. The "country only" variant is a derived classification, not a stored
// discriminator: an address whose first name, house name and street are all
// empty is country-only, and any later population of those fields reclassifies
// the record as a full address on next read.
type Address struct {
	ID        int       // The numeric identifier for the address.
	EmailID   int       // The owning email address id. Mandatory, even for country-only records.
	CountryID int       // The country reference id.
	Token     uuid.UUID // Opaque 128-bit lookup token for cookie-based resolution.
	Title     string    // Optional salutation, e.g. "Mr".
	FirstName string
	LastName  string
	HouseName string
	Street    string
	Town      string
	City      string
	County    string
	Postcode  string
	Country   *Country // The resolved country reference, populated at load time.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCountryOnly derives the country-only classification. The rule is
// centralized here so it changes in exactly one place.
func (a *Address) IsCountryOnly() bool {
	return a.FirstName == "" && a.HouseName == "" && a.Street == ""
}

// CountryName returns the display text of the resolved country, or empty when
// the reference has not been loaded.
func (a *Address) CountryName() string {
	if a.Country == nil {
		return ""
	}

	return a.Country.Name
}

// ConcatenateDisplay renders the address for display. Country-only addresses
// render as just the country display text. Full addresses render the name,
// then house name, street, town, city, county, optionally postcode, then
// country, joined by the given delimiter. Empty fields are not skipped, so
// blank fields produce doubled delimiters; legacy consumers depend on that
// exact output and it must not be "fixed" here.
func (a *Address) ConcatenateDisplay(delimiter string, includePostcode bool) string {
	if a.IsCountryOnly() {
		return a.CountryName()
	}

	name := strings.TrimSpace(strings.Join([]string{a.Title, a.FirstName, a.LastName}, " "))

	parts := []string{name, a.HouseName, a.Street, a.Town, a.City, a.County}
	if includePostcode {
		parts = append(parts, a.Postcode)
	}
	parts = append(parts, a.CountryName())

	return strings.Join(parts, delimiter)
}
