// Package mongodb provides the Mongo-backed registry repositories and the
// per-organization tenant store. One Client is constructed at process start
// and shared by every request; the entry point owns its connect/disconnect
// lifecycle.
package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jrsteele09/go-org-service/internal/config"
	serviceerrors "github.com/jrsteele09/go-org-service/internal/errors"
)

const (
	organizationsCollection = "organizations"
	adminsCollection        = "admins"
	tenantUsersCollection   = "users"
)

// Client wraps the shared driver client together with the registry database
// name.
type Client struct {
	client     *mongo.Client
	registryDB string
}

// Connect establishes the process-wide store session and ensures the
// registry's uniqueness constraints exist.
func Connect(ctx context.Context, cfg config.StoreConfig) (*Client, error) {
	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.GetMongoURI()))
	if err != nil {
		return nil, serviceerrors.Store(err, "mongo.Connect")
	}

	c := &Client{client: mc, registryDB: cfg.GetRegistryDatabase()}
	if err := c.ensureRegistryIndexes(ctx); err != nil {
		_ = mc.Disconnect(ctx)
		return nil, err
	}
	return c, nil
}

// Disconnect tears down the shared session. Call once at shutdown.
func (c *Client) Disconnect(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return serviceerrors.Store(err, "mongo.Disconnect")
	}
	return nil
}

// Ping checks store reachability, used by the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return serviceerrors.Store(err, "mongo.Ping")
	}
	return nil
}

func (c *Client) registry() *mongo.Database {
	return c.client.Database(c.registryDB)
}

// ensureRegistryIndexes creates the unique constraints the pre-checks rely
// on only for friendliness: organization name and admin email uniqueness are
// actually guaranteed here, at write time.
func (c *Client) ensureRegistryIndexes(ctx context.Context) error {
	orgs := c.registry().Collection(organizationsCollection)
	_, err := orgs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return serviceerrors.Store(err, "create organizations name index")
	}

	adminColl := c.registry().Collection(adminsCollection)
	_, err = adminColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return serviceerrors.Store(err, "create admins email index")
	}
	return nil
}

// wrapWriteError maps driver errors onto the service taxonomy.
func wrapWriteError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return serviceerrors.ErrAlreadyExists
	}
	return serviceerrors.Store(err, operation)
}
