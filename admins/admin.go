package admins

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	serviceerrors "github.com/jrsteele09/go-org-service/internal/errors"
)

// bcryptCost is the fixed work factor for credential hashing.
const bcryptCost = 12

// RoleType represents an admin role.
type RoleType string

const (
	// RoleSuperAdmin can manage every organization in the registry.
	RoleSuperAdmin RoleType = "admin"
	// RoleOrgAdmin is scoped to exactly one organization.
	RoleOrgAdmin RoleType = "org_admin"
)

// Admin is the principal record stored in the registry. One admin exists per
// organization; OrganizationID is empty only transiently while an
// organization is being created.
type Admin struct {
	ID             string     `bson:"_id" json:"id"`
	Email          string     `bson:"email" json:"email"`
	PasswordHash   string     `bson:"password_hash" json:"-"`
	Role           RoleType   `bson:"role" json:"role"`
	OrganizationID string     `bson:"organization_id,omitempty" json:"organization_id,omitempty"`
	RefreshDigest  string     `bson:"refresh_digest,omitempty" json:"-"`
	RefreshIssued  *time.Time `bson:"refresh_issued,omitempty" json:"-"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
	Active         bool       `bson:"active" json:"active"`
}

// CanManage reports whether the admin may operate on the given organization.
func (a *Admin) CanManage(organizationID string) bool {
	if a.Role == RoleSuperAdmin {
		return true
	}
	return a.Role == RoleOrgAdmin && a.OrganizationID == organizationID
}

// HashPassword produces a salted bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// CheckPasswordHash checks a password against a stored hash. It returns false
// on any mismatch and never reports why.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidateEmail checks that email looks like a deliverable address.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return serviceerrors.Validationf("email is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return serviceerrors.Validationf("invalid email format")
	}
	if !strings.Contains(email[at:], ".") {
		return serviceerrors.Validationf("invalid email format")
	}
	return nil
}

// ValidatePassword checks the minimum password length.
func ValidatePassword(password string) error {
	if password == "" {
		return serviceerrors.Validationf("password is required")
	}
	if len(password) < 8 {
		return serviceerrors.Validationf("password must be at least 8 characters long")
	}
	return nil
}
