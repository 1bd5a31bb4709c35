// Package entity contains the core business objects of the membership domain.
package entity

// WebAddress is a unique URL associated with the storefront's link data.
// IsDead is monotonic: it is set once and never cleared.
type WebAddress struct {
	ID     int    // The numeric identifier for the web address.
	URL    string // The unique URL text.
	IsDead bool   // One-way flag marking the URL as no longer reachable.
}
