// Package entity contains the core business objects of the membership domain,
// each representing a unique, identifiable concept within the storefront.
package entity

// Country is immutable reference data resolving a country id to display text.
// It is shared, read-only, and owned by no aggregate.
type Country struct {
	ID   int    // The numeric identifier for the country.
	Name string // The unique display text, e.g. "United Kingdom".
}
