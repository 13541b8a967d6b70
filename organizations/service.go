package organizations

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jrsteele09/go-org-service/admins"
	serviceerrors "github.com/jrsteele09/go-org-service/internal/errors"
	"github.com/jrsteele09/go-org-service/tenants"
)

// Lifecycle is the capability interface the HTTP layer consumes for
// organization management.
type Lifecycle interface {
	Create(ctx context.Context, name, email, password string) (*Organization, error)
	Get(ctx context.Context, name string) (*Organization, error)
	Update(ctx context.Context, name, newEmail, newPassword string) error
	Delete(ctx context.Context, name, requestingPrincipalID string) error
}

// Repos holds the registry repositories the Service depends on.
type Repos struct {
	Organizations Repo
	Admins        admins.Repo
}

// Service orchestrates the organization lifecycle across the registry and
// the tenant store. Multi-step writes are not transactional; a failure
// partway through leaves visible partial state (see package docs).
type Service struct {
	repos       Repos
	tenantStore tenants.Store
	nowTime     func() time.Time
}

var _ Lifecycle = (*Service)(nil)

type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// NewService initializes a Service with its required dependencies.
func NewService(repos Repos, tenantStore tenants.Store, options ...ServiceOption) (*Service, error) {
	if repos.Organizations == nil {
		return nil, errors.New("[NewService] Organizations repo is required")
	}
	if repos.Admins == nil {
		return nil, errors.New("[NewService] Admins repo is required")
	}
	if tenantStore == nil {
		return nil, errors.New("[NewService] tenant store is required")
	}

	s := &Service{
		repos:       repos,
		tenantStore: tenantStore,
		nowTime:     time.Now,
	}

	for _, opt := range options {
		opt(s)
	}

	return s, nil
}

// Create provisions a new organization: tenant namespace, admin principal,
// tenant-local user mirror, registry record, then the admin's organization
// back-fill. The duplicate-name pre-check runs before any provisioning so
// the common duplicate-submission case never orphans a tenant store; the
// registry's unique constraint remains the actual correctness guarantee.
func (s *Service) Create(ctx context.Context, name, email, password string) (*Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, serviceerrors.Validationf("organization name is required")
	}
	if err := admins.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := admins.ValidatePassword(password); err != nil {
		return nil, err
	}

	if _, err := s.repos.Organizations.GetByName(ctx, name); err == nil {
		return nil, serviceerrors.ErrAlreadyExists
	} else if !errors.Is(err, serviceerrors.ErrNotFound) {
		return nil, serviceerrors.Wrapf(err, "[Service.Create] GetByName")
	}

	namespace, handle, err := s.tenantStore.Create(ctx, name)
	if err != nil {
		return nil, serviceerrors.Wrapf(err, "[Service.Create] tenantStore.Create")
	}

	passwordHash, err := admins.HashPassword(password)
	if err != nil {
		return nil, serviceerrors.Wrapf(err, "[Service.Create] HashPassword")
	}

	now := s.nowTime()
	admin := &admins.Admin{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         admins.RoleOrgAdmin,
		CreatedAt:    now,
		Active:       true,
	}
	if err := s.repos.Admins.Insert(ctx, admin); err != nil {
		return nil, serviceerrors.Wrapf(err, "[Service.Create] Admins.Insert")
	}

	if err := handle.InsertUser(ctx, &tenants.User{
		ID:           admin.ID,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         string(admins.RoleOrgAdmin),
		CreatedAt:    now,
	}); err != nil {
		return nil, serviceerrors.Wrapf(err, "[Service.Create] handle.InsertUser")
	}

	org := &Organization{
		ID:         uuid.New().String(),
		Name:       name,
		Namespace:  namespace,
		AdminEmail: email,
		AdminID:    admin.ID,
		CreatedAt:  now,
		Active:     true,
	}
	if err := s.repos.Organizations.Insert(ctx, org); err != nil {
		return nil, serviceerrors.Wrapf(err, "[Service.Create] Organizations.Insert")
	}

	if err := s.repos.Admins.SetOrganization(ctx, admin.ID, org.ID); err != nil {
		return nil, serviceerrors.Wrapf(err, "[Service.Create] Admins.SetOrganization")
	}

	return org, nil
}

// Get is a pure registry read.
func (s *Service) Get(ctx context.Context, name string) (*Organization, error) {
	org, err := s.repos.Organizations.GetByName(ctx, name)
	if err != nil {
		return nil, serviceerrors.Wrapf(err, "[Service.Get] GetByName %q", name)
	}
	return org, nil
}

// Update replaces the admin's email and password. The password is always
// re-hashed, even if unchanged. The admin principal and the tenant-local
// mirror are independent writes with no cross-store transaction.
func (s *Service) Update(ctx context.Context, name, newEmail, newPassword string) error {
	if err := admins.ValidateEmail(newEmail); err != nil {
		return err
	}
	if err := admins.ValidatePassword(newPassword); err != nil {
		return err
	}

	org, err := s.repos.Organizations.GetByName(ctx, name)
	if err != nil {
		return serviceerrors.Wrapf(err, "[Service.Update] GetByName %q", name)
	}

	passwordHash, err := admins.HashPassword(newPassword)
	if err != nil {
		return serviceerrors.Wrapf(err, "[Service.Update] HashPassword")
	}

	if err := s.repos.Admins.UpdateCredentials(ctx, org.AdminID, newEmail, passwordHash); err != nil {
		return serviceerrors.Wrapf(err, "[Service.Update] Admins.UpdateCredentials")
	}

	handle := s.tenantStore.Resolve(name)
	if err := handle.UpdateUserCredentials(ctx, org.AdminID, newEmail, passwordHash); err != nil {
		return serviceerrors.Wrapf(err, "[Service.Update] handle.UpdateUserCredentials")
	}

	if err := s.repos.Organizations.UpdateAdminEmail(ctx, name, newEmail); err != nil {
		return serviceerrors.Wrapf(err, "[Service.Update] Organizations.UpdateAdminEmail")
	}

	return nil
}

// Delete removes the registry record, deletes the admin principal, then
// drops the tenant namespace, in that order. A crash mid-sequence can leave
// an orphaned tenant store; that is an accepted failure mode.
func (s *Service) Delete(ctx context.Context, name, requestingPrincipalID string) error {
	org, err := s.repos.Organizations.GetByName(ctx, name)
	if err != nil {
		return serviceerrors.Wrapf(err, "[Service.Delete] GetByName %q", name)
	}

	requester, err := s.repos.Admins.GetByID(ctx, requestingPrincipalID)
	if err != nil || !requester.CanManage(org.ID) {
		return serviceerrors.ErrForbidden
	}

	if err := s.repos.Organizations.Delete(ctx, name); err != nil {
		return serviceerrors.Wrapf(err, "[Service.Delete] Organizations.Delete")
	}

	if err := s.repos.Admins.Delete(ctx, org.AdminID); err != nil {
		return serviceerrors.Wrapf(err, "[Service.Delete] Admins.Delete")
	}

	if err := s.tenantStore.Drop(ctx, name); err != nil {
		return serviceerrors.Wrapf(err, "[Service.Delete] tenantStore.Drop")
	}

	return nil
}
