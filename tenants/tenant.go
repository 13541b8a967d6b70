package tenants

import (
	"strings"
	"time"
)

// NamespacePrefix is prepended to every derived tenant namespace identifier.
const NamespacePrefix = "tenant_"

// User mirrors the admin principal's credentials inside the tenant's own
// namespace. It is a structural copy, not a reference to the registry record.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// NamespaceFor derives the tenant namespace identifier for an organization
// name: trimmed, lowercased, whitespace runs collapsed to a single
// underscore, prefixed. The derivation is a pure function of the name.
func NamespaceFor(orgName string) string {
	fields := strings.Fields(strings.ToLower(orgName))
	return NamespacePrefix + strings.Join(fields, "_")
}
