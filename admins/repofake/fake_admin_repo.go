package repofake

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jrsteele09/go-org-service/admins"
	serviceerrors "github.com/jrsteele09/go-org-service/internal/errors"
)

var _ admins.Repo = (*FakeAdminRepo)(nil)

type FakeAdminRepo struct {
	admins   map[string]*admins.Admin
	emailIds map[string]string // email to admin id
	lock     sync.RWMutex
}

func NewFakeAdminRepo() *FakeAdminRepo {
	return &FakeAdminRepo{
		admins:   make(map[string]*admins.Admin),
		emailIds: make(map[string]string),
	}
}

func (ar *FakeAdminRepo) Insert(_ context.Context, admin *admins.Admin) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	if _, ok := ar.emailIds[admin.Email]; ok {
		return serviceerrors.ErrAlreadyExists
	}
	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}
	copied := *admin
	ar.admins[admin.ID] = &copied
	ar.emailIds[admin.Email] = admin.ID
	return nil
}

func (ar *FakeAdminRepo) GetByEmail(_ context.Context, email string) (*admins.Admin, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	id, ok := ar.emailIds[email]
	if !ok {
		return nil, serviceerrors.ErrNotFound
	}
	copied := *ar.admins[id]
	return &copied, nil
}

func (ar *FakeAdminRepo) GetByID(_ context.Context, id string) (*admins.Admin, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	admin, ok := ar.admins[id]
	if !ok {
		return nil, serviceerrors.ErrNotFound
	}
	copied := *admin
	return &copied, nil
}

func (ar *FakeAdminRepo) SetOrganization(_ context.Context, id, organizationID string) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	admin, ok := ar.admins[id]
	if !ok {
		return serviceerrors.ErrNotFound
	}
	admin.OrganizationID = organizationID
	return nil
}

func (ar *FakeAdminRepo) UpdateCredentials(_ context.Context, id, email, passwordHash string) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	admin, ok := ar.admins[id]
	if !ok {
		return serviceerrors.ErrNotFound
	}
	delete(ar.emailIds, admin.Email)
	admin.Email = email
	admin.PasswordHash = passwordHash
	ar.emailIds[email] = id
	return nil
}

func (ar *FakeAdminRepo) SetRefreshDigest(_ context.Context, id, digest string, issuedAt time.Time) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	admin, ok := ar.admins[id]
	if !ok {
		return serviceerrors.ErrNotFound
	}
	admin.RefreshDigest = digest
	admin.RefreshIssued = &issuedAt
	return nil
}

func (ar *FakeAdminRepo) Delete(_ context.Context, id string) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	admin, ok := ar.admins[id]
	if !ok {
		return serviceerrors.ErrNotFound
	}
	delete(ar.emailIds, admin.Email)
	delete(ar.admins, id)
	return nil
}
