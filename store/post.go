package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"snapfeed/models"
)

// PostStore persists Post documents. The collection carries a unique
// index on slug; Insert and Save map its violation to ErrDuplicate.
type PostStore struct {
	coll *mongo.Collection
}

func NewPostStore(coll *mongo.Collection) *PostStore {
	return &PostStore{coll: coll}
}

func (s *PostStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostStore) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := s.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Search lists posts, optionally filtered by a case-insensitive match on
// title or description.
func (s *PostStore) Search(ctx context.Context, query string) ([]models.Post, error) {
	filter := bson.M{}
	if query != "" {
		regex := primitive.Regex{Pattern: query, Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"title": regex},
			bson.M{"description": regex},
		}}
	}

	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostStore) Insert(ctx context.Context, post *models.Post) error {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := s.coll.InsertOne(ctx, post)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// Save replaces the whole document by id.
func (s *PostStore) Save(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now()

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddEngagement records userID in the post-side set for kind.
func (s *PostStore) AddEngagement(ctx context.Context, postID primitive.ObjectID, kind models.EngagementKind, userID primitive.ObjectID) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{kind.PostField(): userID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveEngagement removes every occurrence of userID from the post-side
// set for kind.
func (s *PostStore) RemoveEngagement(ctx context.Context, postID primitive.ObjectID, kind models.EngagementKind, userID primitive.ObjectID) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": postID},
		bson.M{"$pull": bson.M{kind.PostField(): userID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearUserRefs pulls a deleted user out of every post's likes and
// saves.
func (s *PostStore) ClearUserRefs(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.coll.UpdateMany(ctx, bson.M{}, bson.M{"$pull": bson.M{
		"likes": userID,
		"saves": userID,
	}})
	return err
}
