package repofake

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-org-service/organizations"
	serviceerrors "github.com/jrsteele09/go-org-service/internal/errors"
)

var _ organizations.Repo = (*FakeOrganizationRepo)(nil)

type FakeOrganizationRepo struct {
	orgs map[string]*organizations.Organization
	lock sync.RWMutex
}

func NewFakeOrganizationRepo() *FakeOrganizationRepo {
	return &FakeOrganizationRepo{
		orgs: make(map[string]*organizations.Organization),
	}
}

func (or *FakeOrganizationRepo) Insert(_ context.Context, org *organizations.Organization) error {
	or.lock.Lock()
	defer or.lock.Unlock()

	if _, ok := or.orgs[org.Name]; ok {
		return serviceerrors.ErrAlreadyExists
	}
	copied := *org
	or.orgs[org.Name] = &copied
	return nil
}

func (or *FakeOrganizationRepo) GetByName(_ context.Context, name string) (*organizations.Organization, error) {
	or.lock.RLock()
	defer or.lock.RUnlock()

	org, ok := or.orgs[name]
	if !ok {
		return nil, serviceerrors.ErrNotFound
	}
	copied := *org
	return &copied, nil
}

func (or *FakeOrganizationRepo) GetByID(_ context.Context, id string) (*organizations.Organization, error) {
	or.lock.RLock()
	defer or.lock.RUnlock()

	for _, org := range or.orgs {
		if org.ID == id {
			copied := *org
			return &copied, nil
		}
	}
	return nil, serviceerrors.ErrNotFound
}

func (or *FakeOrganizationRepo) UpdateAdminEmail(_ context.Context, name, email string) error {
	or.lock.Lock()
	defer or.lock.Unlock()

	org, ok := or.orgs[name]
	if !ok {
		return serviceerrors.ErrNotFound
	}
	org.AdminEmail = email
	return nil
}

func (or *FakeOrganizationRepo) Delete(_ context.Context, name string) error {
	or.lock.Lock()
	defer or.lock.Unlock()

	if _, ok := or.orgs[name]; !ok {
		return serviceerrors.ErrNotFound
	}
	delete(or.orgs, name)
	return nil
}
