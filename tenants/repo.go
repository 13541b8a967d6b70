package tenants

import "context"

// Handle is a reference to one tenant's isolated namespace. Obtaining a
// handle never provisions anything; the namespace behind it may not exist
// until Store.Create has run for the organization.
type Handle interface {
	InsertUser(ctx context.Context, user *User) error
	UpdateUserCredentials(ctx context.Context, userID, email, passwordHash string) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// Store manages the lifecycle of per-organization namespaces. Create is not
// idempotent; callers are expected to have checked registry uniqueness first.
type Store interface {
	// Create provisions the isolated namespace for the organization,
	// including the uniqueness constraint on the tenant users' email field,
	// and returns the derived namespace identifier with a handle to it.
	Create(ctx context.Context, orgName string) (string, Handle, error)

	// Resolve returns a handle without provisioning.
	Resolve(orgName string) Handle

	// Drop irreversibly destroys the namespace and everything in it.
	Drop(ctx context.Context, orgName string) error
}
