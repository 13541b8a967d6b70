package storefake

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-org-service/tenants"
	serviceerrors "github.com/jrsteele09/go-org-service/internal/errors"
)

var _ tenants.Store = (*FakeTenantStore)(nil)

// FakeTenantStore keeps each tenant namespace as an in-memory user map.
type FakeTenantStore struct {
	namespaces map[string]map[string]*tenants.User // namespace -> email -> user
	lock       sync.RWMutex
}

func NewFakeTenantStore() *FakeTenantStore {
	return &FakeTenantStore{
		namespaces: make(map[string]map[string]*tenants.User),
	}
}

func (ts *FakeTenantStore) Create(_ context.Context, orgName string) (string, tenants.Handle, error) {
	ts.lock.Lock()
	defer ts.lock.Unlock()

	namespace := tenants.NamespaceFor(orgName)
	if _, ok := ts.namespaces[namespace]; !ok {
		ts.namespaces[namespace] = make(map[string]*tenants.User)
	}
	return namespace, &fakeHandle{store: ts, namespace: namespace}, nil
}

func (ts *FakeTenantStore) Resolve(orgName string) tenants.Handle {
	return &fakeHandle{store: ts, namespace: tenants.NamespaceFor(orgName)}
}

func (ts *FakeTenantStore) Drop(_ context.Context, orgName string) error {
	ts.lock.Lock()
	defer ts.lock.Unlock()

	delete(ts.namespaces, tenants.NamespaceFor(orgName))
	return nil
}

// Exists reports whether the namespace has been provisioned. Test helper.
func (ts *FakeTenantStore) Exists(namespace string) bool {
	ts.lock.RLock()
	defer ts.lock.RUnlock()

	_, ok := ts.namespaces[namespace]
	return ok
}

type fakeHandle struct {
	store     *FakeTenantStore
	namespace string
}

func (h *fakeHandle) InsertUser(_ context.Context, user *tenants.User) error {
	h.store.lock.Lock()
	defer h.store.lock.Unlock()

	users, ok := h.store.namespaces[h.namespace]
	if !ok {
		return serviceerrors.ErrNotFound
	}
	if _, exists := users[user.Email]; exists {
		return serviceerrors.ErrAlreadyExists
	}
	copied := *user
	users[user.Email] = &copied
	return nil
}

func (h *fakeHandle) UpdateUserCredentials(_ context.Context, userID, email, passwordHash string) error {
	h.store.lock.Lock()
	defer h.store.lock.Unlock()

	users, ok := h.store.namespaces[h.namespace]
	if !ok {
		return serviceerrors.ErrNotFound
	}
	for oldEmail, user := range users {
		if user.ID == userID {
			delete(users, oldEmail)
			user.Email = email
			user.PasswordHash = passwordHash
			users[email] = user
			return nil
		}
	}
	return serviceerrors.ErrNotFound
}

func (h *fakeHandle) GetUserByEmail(_ context.Context, email string) (*tenants.User, error) {
	h.store.lock.RLock()
	defer h.store.lock.RUnlock()

	users, ok := h.store.namespaces[h.namespace]
	if !ok {
		return nil, serviceerrors.ErrNotFound
	}
	user, ok := users[email]
	if !ok {
		return nil, serviceerrors.ErrNotFound
	}
	copied := *user
	return &copied, nil
}
