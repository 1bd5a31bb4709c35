package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a
// specific DB driver like GORM. The closure boundary is the transaction scope:
// the scope cannot be reused after the function returns, so a committed or
// rolled-back transaction can never be written to again.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// Otherwise, it's committed. All repository operations within the function
	// use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific
// transaction, ensuring all operations within the transaction use the same
// database connection.
type RepositoryFactory interface {
	// ContactRepo returns a ContactRepository bound to the current transaction.
	ContactRepo() ContactRepository

	// AddressRepo returns an AddressRepository bound to the current transaction.
	AddressRepo() AddressRepository

	// UserRepo returns a UserRepository bound to the current transaction.
	UserRepo() UserRepository

	// CountryRepo returns a CountryRepository bound to the current transaction.
	CountryRepo() CountryRepository

	// WebAddressRepo returns a WebAddressRepository bound to the current transaction.
	WebAddressRepo() WebAddressRepository
}
