package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	serviceerrors "github.com/jrsteele09/go-org-service/internal/errors"
	"github.com/jrsteele09/go-org-service/organizations"
)

var _ organizations.Repo = (*OrganizationRepo)(nil)

// OrganizationRepo stores organization records in the registry database.
type OrganizationRepo struct {
	coll *mongo.Collection
}

func NewOrganizationRepo(client *Client) *OrganizationRepo {
	return &OrganizationRepo{coll: client.registry().Collection(organizationsCollection)}
}

func (or *OrganizationRepo) Insert(ctx context.Context, org *organizations.Organization) error {
	_, err := or.coll.InsertOne(ctx, org)
	return wrapWriteError(err, "OrganizationRepo.Insert")
}

func (or *OrganizationRepo) GetByName(ctx context.Context, name string) (*organizations.Organization, error) {
	return or.findOne(ctx, bson.M{"name": name}, "OrganizationRepo.GetByName")
}

func (or *OrganizationRepo) GetByID(ctx context.Context, id string) (*organizations.Organization, error) {
	return or.findOne(ctx, bson.M{"_id": id}, "OrganizationRepo.GetByID")
}

func (or *OrganizationRepo) findOne(ctx context.Context, filter bson.M, operation string) (*organizations.Organization, error) {
	var org organizations.Organization
	if err := or.coll.FindOne(ctx, filter).Decode(&org); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, serviceerrors.ErrNotFound
		}
		return nil, serviceerrors.Store(err, operation)
	}
	return &org, nil
}

func (or *OrganizationRepo) UpdateAdminEmail(ctx context.Context, name, email string) error {
	res, err := or.coll.UpdateOne(ctx, bson.M{"name": name}, bson.M{"$set": bson.M{"admin_email": email}})
	if err != nil {
		return serviceerrors.Store(err, "OrganizationRepo.UpdateAdminEmail")
	}
	if res.MatchedCount == 0 {
		return serviceerrors.ErrNotFound
	}
	return nil
}

func (or *OrganizationRepo) Delete(ctx context.Context, name string) error {
	res, err := or.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return serviceerrors.Store(err, "OrganizationRepo.Delete")
	}
	if res.DeletedCount == 0 {
		return serviceerrors.ErrNotFound
	}
	return nil
}
