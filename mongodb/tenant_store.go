package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	serviceerrors "github.com/jrsteele09/go-org-service/internal/errors"
	"github.com/jrsteele09/go-org-service/tenants"
)

var _ tenants.Store = (*TenantStore)(nil)

// TenantStore maps each organization onto its own Mongo database, named by
// the derived namespace identifier. Dropping the database destroys the whole
// tenant namespace in one operation.
type TenantStore struct {
	client *Client
}

func NewTenantStore(client *Client) *TenantStore {
	return &TenantStore{client: client}
}

// Create provisions the tenant database and the unique index on the tenant
// users' email field. Not idempotency-safe; the lifecycle manager checks
// registry uniqueness first.
func (ts *TenantStore) Create(ctx context.Context, orgName string) (string, tenants.Handle, error) {
	namespace := tenants.NamespaceFor(orgName)
	db := ts.client.client.Database(namespace)

	users := db.Collection(tenantUsersCollection)
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return "", nil, serviceerrors.Store(err, "TenantStore.Create email index")
	}

	return namespace, &tenantHandle{db: db}, nil
}

// Resolve returns a handle without provisioning anything.
func (ts *TenantStore) Resolve(orgName string) tenants.Handle {
	return &tenantHandle{db: ts.client.client.Database(tenants.NamespaceFor(orgName))}
}

// Drop destroys the tenant database and all of its contents. Irreversible,
// and not transactional with registry deletion.
func (ts *TenantStore) Drop(ctx context.Context, orgName string) error {
	if err := ts.client.client.Database(tenants.NamespaceFor(orgName)).Drop(ctx); err != nil {
		return serviceerrors.Store(err, "TenantStore.Drop")
	}
	return nil
}

type tenantHandle struct {
	db *mongo.Database
}

func (h *tenantHandle) InsertUser(ctx context.Context, user *tenants.User) error {
	_, err := h.db.Collection(tenantUsersCollection).InsertOne(ctx, user)
	return wrapWriteError(err, "tenantHandle.InsertUser")
}

func (h *tenantHandle) UpdateUserCredentials(ctx context.Context, userID, email, passwordHash string) error {
	res, err := h.db.Collection(tenantUsersCollection).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"email": email, "password_hash": passwordHash}},
	)
	if err != nil {
		return wrapWriteError(err, "tenantHandle.UpdateUserCredentials")
	}
	if res.MatchedCount == 0 {
		return serviceerrors.ErrNotFound
	}
	return nil
}

func (h *tenantHandle) GetUserByEmail(ctx context.Context, email string) (*tenants.User, error) {
	var user tenants.User
	if err := h.db.Collection(tenantUsersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, serviceerrors.ErrNotFound
		}
		return nil, serviceerrors.Store(err, "tenantHandle.GetUserByEmail")
	}
	return &user, nil
}
