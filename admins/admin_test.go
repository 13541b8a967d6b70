package admins_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-org-service/admins"
	serviceerrors "github.com/jrsteele09/go-org-service/internal/errors"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := admins.HashPassword("Secret123")
	require.NoError(t, err)
	require.NotEqual(t, "Secret123", hash)

	require.True(t, admins.CheckPasswordHash("Secret123", hash))
	require.False(t, admins.CheckPasswordHash("secret123", hash))
	require.False(t, admins.CheckPasswordHash("", hash))
}

func TestValidateEmail(t *testing.T) {
	require.NoError(t, admins.ValidateEmail("admin@acme.com"))

	for _, email := range []string{"", "  ", "admin", "admin@", "@acme.com", "admin@acme"} {
		err := admins.ValidateEmail(email)
		require.ErrorIs(t, err, serviceerrors.ErrValidation, "email %q", email)
	}
}

func TestValidatePassword(t *testing.T) {
	require.NoError(t, admins.ValidatePassword("Secret123"))

	require.ErrorIs(t, admins.ValidatePassword(""), serviceerrors.ErrValidation)
	require.ErrorIs(t, admins.ValidatePassword("short"), serviceerrors.ErrValidation)
}

func TestCanManage(t *testing.T) {
	super := &admins.Admin{Role: admins.RoleSuperAdmin}
	require.True(t, super.CanManage("org-1"))
	require.True(t, super.CanManage("org-2"))

	scoped := &admins.Admin{Role: admins.RoleOrgAdmin, OrganizationID: "org-1"}
	require.True(t, scoped.CanManage("org-1"))
	require.False(t, scoped.CanManage("org-2"))
}
