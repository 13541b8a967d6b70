package organizations

import "context"

// Repo is the registry store for organization records, keyed by unique name.
// The store enforces name uniqueness at write time; the service's pre-check
// only exists for the friendly duplicate-submission path.
type Repo interface {
	Insert(ctx context.Context, org *Organization) error
	GetByName(ctx context.Context, name string) (*Organization, error)
	GetByID(ctx context.Context, id string) (*Organization, error)
	UpdateAdminEmail(ctx context.Context, name, email string) error
	Delete(ctx context.Context, name string) error
}
