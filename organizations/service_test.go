package organizations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-org-service/admins"
	adminrepofake "github.com/jrsteele09/go-org-service/admins/repofake"
	serviceerrors "github.com/jrsteele09/go-org-service/internal/errors"
	"github.com/jrsteele09/go-org-service/organizations"
	orgrepofake "github.com/jrsteele09/go-org-service/organizations/repofake"
	"github.com/jrsteele09/go-org-service/tenants"
	"github.com/jrsteele09/go-org-service/tenants/storefake"
)

const (
	testOrgName       = "Acme Inc"
	testAdminEmail    = "admin@acme.com"
	testAdminPassword = "Secret123"
)

type testFixture struct {
	orgRepo     *orgrepofake.FakeOrganizationRepo
	adminRepo   *adminrepofake.FakeAdminRepo
	tenantStore *storefake.FakeTenantStore
	service     *organizations.Service
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	or := orgrepofake.NewFakeOrganizationRepo()
	ar := adminrepofake.NewFakeAdminRepo()
	ts := storefake.NewFakeTenantStore()

	service, err := organizations.NewService(organizations.Repos{
		Organizations: or,
		Admins:        ar,
	}, ts)
	require.NoError(t, err)

	return &testFixture{
		orgRepo:     or,
		adminRepo:   ar,
		tenantStore: ts,
		service:     service,
	}
}

func (f *testFixture) createTestOrg(t *testing.T) *organizations.Organization {
	t.Helper()

	org, err := f.service.Create(context.Background(), testOrgName, testAdminEmail, testAdminPassword)
	require.NoError(t, err)
	return org
}

func TestCreateThenGet(t *testing.T) {
	f := setupTestFixture(t)

	created := f.createTestOrg(t)
	require.Equal(t, tenants.NamespaceFor(testOrgName), created.Namespace)
	require.Equal(t, "tenant_acme_inc", created.Namespace)
	require.NotEmpty(t, created.ID)
	require.True(t, created.Active)

	got, err := f.service.Get(context.Background(), testOrgName)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, created.Namespace, got.Namespace)
	require.Equal(t, testAdminEmail, got.AdminEmail)
}

func TestCreateProvisionsAdminAndMirror(t *testing.T) {
	f := setupTestFixture(t)

	org := f.createTestOrg(t)

	admin, err := f.adminRepo.GetByEmail(context.Background(), testAdminEmail)
	require.NoError(t, err)
	require.Equal(t, org.AdminID, admin.ID)
	require.Equal(t, admins.RoleOrgAdmin, admin.Role)
	require.Equal(t, org.ID, admin.OrganizationID)
	require.True(t, admins.CheckPasswordHash(testAdminPassword, admin.PasswordHash))

	require.True(t, f.tenantStore.Exists(org.Namespace))
	mirror, err := f.tenantStore.Resolve(testOrgName).GetUserByEmail(context.Background(), testAdminEmail)
	require.NoError(t, err)
	require.Equal(t, admin.ID, mirror.ID)
	require.Equal(t, admin.PasswordHash, mirror.PasswordHash)
}

func TestCreateDuplicateName(t *testing.T) {
	f := setupTestFixture(t)

	first := f.createTestOrg(t)

	_, err := f.service.Create(context.Background(), testOrgName, "other@acme.com", "Different123")
	require.ErrorIs(t, err, serviceerrors.ErrAlreadyExists)

	// First organization's record is unchanged
	got, err := f.service.Get(context.Background(), testOrgName)
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
	require.Equal(t, testAdminEmail, got.AdminEmail)
}

func TestCreateValidation(t *testing.T) {
	f := setupTestFixture(t)

	tests := []struct {
		name     string
		orgName  string
		email    string
		password string
	}{
		{name: "missing name", orgName: "", email: testAdminEmail, password: testAdminPassword},
		{name: "blank name", orgName: "   ", email: testAdminEmail, password: testAdminPassword},
		{name: "missing email", orgName: testOrgName, email: "", password: testAdminPassword},
		{name: "bad email", orgName: testOrgName, email: "not-an-email", password: testAdminPassword},
		{name: "missing password", orgName: testOrgName, email: testAdminEmail, password: ""},
		{name: "short password", orgName: testOrgName, email: testAdminEmail, password: "short"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Create(context.Background(), tc.orgName, tc.email, tc.password)
			require.ErrorIs(t, err, serviceerrors.ErrValidation)
		})
	}
}

func TestGetUnknownOrganization(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Get(context.Background(), "Nobody Inc")
	require.ErrorIs(t, err, serviceerrors.ErrNotFound)
}

func TestUpdateRehashesAndWritesBothStores(t *testing.T) {
	f := setupTestFixture(t)

	org := f.createTestOrg(t)

	err := f.service.Update(context.Background(), testOrgName, "new@acme.com", "NewSecret456")
	require.NoError(t, err)

	admin, err := f.adminRepo.GetByID(context.Background(), org.AdminID)
	require.NoError(t, err)
	require.Equal(t, "new@acme.com", admin.Email)
	require.False(t, admins.CheckPasswordHash(testAdminPassword, admin.PasswordHash))
	require.True(t, admins.CheckPasswordHash("NewSecret456", admin.PasswordHash))

	mirror, err := f.tenantStore.Resolve(testOrgName).GetUserByEmail(context.Background(), "new@acme.com")
	require.NoError(t, err)
	require.Equal(t, admin.PasswordHash, mirror.PasswordHash)

	got, err := f.service.Get(context.Background(), testOrgName)
	require.NoError(t, err)
	require.Equal(t, "new@acme.com", got.AdminEmail)
}

func TestUpdateUnknownOrganization(t *testing.T) {
	f := setupTestFixture(t)

	err := f.service.Update(context.Background(), "Nobody Inc", "new@acme.com", "NewSecret456")
	require.ErrorIs(t, err, serviceerrors.ErrNotFound)
}

func TestDeleteRemovesEverything(t *testing.T) {
	f := setupTestFixture(t)

	org := f.createTestOrg(t)

	err := f.service.Delete(context.Background(), testOrgName, org.AdminID)
	require.NoError(t, err)

	_, err = f.service.Get(context.Background(), testOrgName)
	require.ErrorIs(t, err, serviceerrors.ErrNotFound)

	_, err = f.adminRepo.GetByID(context.Background(), org.AdminID)
	require.ErrorIs(t, err, serviceerrors.ErrNotFound)

	require.False(t, f.tenantStore.Exists(org.Namespace))

	// Repeat delete also reports NotFound
	err = f.service.Delete(context.Background(), testOrgName, org.AdminID)
	require.ErrorIs(t, err, serviceerrors.ErrNotFound)
}

func TestDeleteForbiddenForOtherOrgAdmin(t *testing.T) {
	f := setupTestFixture(t)

	f.createTestOrg(t)
	other, err := f.service.Create(context.Background(), "Other Corp", "admin@other.com", "Secret456")
	require.NoError(t, err)

	err = f.service.Delete(context.Background(), testOrgName, other.AdminID)
	require.ErrorIs(t, err, serviceerrors.ErrForbidden)

	// Target organization survives
	_, err = f.service.Get(context.Background(), testOrgName)
	require.NoError(t, err)
}

func TestDeleteAllowedForSuperAdmin(t *testing.T) {
	f := setupTestFixture(t)

	f.createTestOrg(t)

	super := &admins.Admin{
		ID:           "super-1",
		Email:        "root@example.com",
		PasswordHash: "irrelevant",
		Role:         admins.RoleSuperAdmin,
		Active:       true,
	}
	require.NoError(t, f.adminRepo.Insert(context.Background(), super))

	err := f.service.Delete(context.Background(), testOrgName, super.ID)
	require.NoError(t, err)
}

func TestDeleteForbiddenForUnknownPrincipal(t *testing.T) {
	f := setupTestFixture(t)

	f.createTestOrg(t)

	err := f.service.Delete(context.Background(), testOrgName, "no-such-principal")
	require.ErrorIs(t, err, serviceerrors.ErrForbidden)
}
