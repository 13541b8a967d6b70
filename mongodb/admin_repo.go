package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jrsteele09/go-org-service/admins"
	serviceerrors "github.com/jrsteele09/go-org-service/internal/errors"
)

var _ admins.Repo = (*AdminRepo)(nil)

// AdminRepo stores admin principals in the registry database.
type AdminRepo struct {
	coll *mongo.Collection
}

func NewAdminRepo(client *Client) *AdminRepo {
	return &AdminRepo{coll: client.registry().Collection(adminsCollection)}
}

func (ar *AdminRepo) Insert(ctx context.Context, admin *admins.Admin) error {
	_, err := ar.coll.InsertOne(ctx, admin)
	return wrapWriteError(err, "AdminRepo.Insert")
}

func (ar *AdminRepo) GetByEmail(ctx context.Context, email string) (*admins.Admin, error) {
	return ar.findOne(ctx, bson.M{"email": email}, "AdminRepo.GetByEmail")
}

func (ar *AdminRepo) GetByID(ctx context.Context, id string) (*admins.Admin, error) {
	return ar.findOne(ctx, bson.M{"_id": id}, "AdminRepo.GetByID")
}

func (ar *AdminRepo) findOne(ctx context.Context, filter bson.M, operation string) (*admins.Admin, error) {
	var admin admins.Admin
	if err := ar.coll.FindOne(ctx, filter).Decode(&admin); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, serviceerrors.ErrNotFound
		}
		return nil, serviceerrors.Store(err, operation)
	}
	return &admin, nil
}

func (ar *AdminRepo) SetOrganization(ctx context.Context, id, organizationID string) error {
	return ar.updateOne(ctx, id, bson.M{"organization_id": organizationID}, "AdminRepo.SetOrganization")
}

func (ar *AdminRepo) UpdateCredentials(ctx context.Context, id, email, passwordHash string) error {
	return ar.updateOne(ctx, id, bson.M{"email": email, "password_hash": passwordHash}, "AdminRepo.UpdateCredentials")
}

func (ar *AdminRepo) SetRefreshDigest(ctx context.Context, id, digest string, issuedAt time.Time) error {
	return ar.updateOne(ctx, id, bson.M{"refresh_digest": digest, "refresh_issued": issuedAt}, "AdminRepo.SetRefreshDigest")
}

func (ar *AdminRepo) updateOne(ctx context.Context, id string, set bson.M, operation string) error {
	res, err := ar.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return wrapWriteError(err, operation)
	}
	if res.MatchedCount == 0 {
		return serviceerrors.ErrNotFound
	}
	return nil
}

func (ar *AdminRepo) Delete(ctx context.Context, id string) error {
	res, err := ar.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return serviceerrors.Store(err, "AdminRepo.Delete")
	}
	if res.DeletedCount == 0 {
		return serviceerrors.ErrNotFound
	}
	return nil
}
