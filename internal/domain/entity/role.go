// Package entity contains the core business objects of the membership domain.
package entity

// Role represents a named role registered with the identity provider.
// The provider's role store is the source of truth for which names are valid.
type Role string

const (
	// RoleCustomer is the default role assigned to storefront members.
	RoleCustomer Role = "customer"
	// RoleAdministrator grants access to the storefront back office.
	RoleAdministrator Role = "administrator"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsEmpty reports whether no role name was supplied.
func (r Role) IsEmpty() bool {
	return string(r) == ""
}
