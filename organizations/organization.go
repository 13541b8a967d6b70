package organizations

import "time"

// Organization is the registry record for one tenant organization. Name is
// globally unique; Namespace is a pure function of Name (tenants.NamespaceFor)
// and never shared between organizations.
type Organization struct {
	ID         string    `bson:"_id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Namespace  string    `bson:"namespace" json:"namespace"`
	AdminEmail string    `bson:"admin_email" json:"admin_email"`
	AdminID    string    `bson:"admin_id" json:"admin_id"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	Active     bool      `bson:"active" json:"active"`
}
