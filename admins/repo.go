package admins

import (
	"context"
	"time"
)

// Repo is the registry-level store for admin principals. Email is unique
// across all tenants; the backing store enforces that at write time.
type Repo interface {
	Insert(ctx context.Context, admin *Admin) error
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	GetByID(ctx context.Context, id string) (*Admin, error)
	SetOrganization(ctx context.Context, id, organizationID string) error
	UpdateCredentials(ctx context.Context, id, email, passwordHash string) error
	SetRefreshDigest(ctx context.Context, id, digest string, issuedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
