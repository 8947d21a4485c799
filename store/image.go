package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"snapfeed/models"
)

// metaProjection keeps blob payloads out of list and lookup responses.
var metaProjection = bson.M{"data": 0}

// ImageStore persists Image blobs.
type ImageStore struct {
	coll *mongo.Collection
}

func NewImageStore(coll *mongo.Collection) *ImageStore {
	return &ImageStore{coll: coll}
}

func (s *ImageStore) Insert(ctx context.Context, img *models.Image) error {
	now := time.Now()
	img.CreatedAt = now
	img.UpdatedAt = now

	_, err := s.coll.InsertOne(ctx, img)
	return err
}

// FindByID loads a full image including its byte payload.
func (s *ImageStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Image, error) {
	var img models.Image
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&img)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// FindMeta lists all image metadata without payloads.
func (s *ImageStore) FindMeta(ctx context.Context) ([]models.Image, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetProjection(metaProjection))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	images := []models.Image{}
	if err := cursor.All(ctx, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// FindMetaByIDs fetches metadata for the given ids. Ids with no backing
// document are simply absent from the result; callers decide how to
// treat the gap.
func (s *ImageStore) FindMetaByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Image, error) {
	if len(ids) == 0 {
		return []models.Image{}, nil
	}

	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(metaProjection))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	images := []models.Image{}
	if err := cursor.All(ctx, &images); err != nil {
		return nil, err
	}
	return images, nil
}

func (s *ImageStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
