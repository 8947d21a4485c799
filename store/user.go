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

// UserStore persists User documents.
type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(coll *mongo.Collection) *UserStore {
	return &UserStore{coll: coll}
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Search lists users, optionally filtered by a case-insensitive match on
// username or email.
func (s *UserStore) Search(ctx context.Context, query string) ([]models.User, error) {
	filter := bson.M{}
	if query != "" {
		regex := primitive.Regex{Pattern: query, Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"username": regex},
			bson.M{"email": regex},
		}}
	}

	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := s.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// Save replaces the whole document by id.
func (s *UserStore) Save(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
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

func (s *UserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddEngagedPost records postID in the user-side mirror set for kind.
// $addToSet keeps the list a set even when toggles race.
func (s *UserStore) AddEngagedPost(ctx context.Context, userID primitive.ObjectID, kind models.EngagementKind, postID primitive.ObjectID) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{kind.UserField(): postID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveEngagedPost removes every occurrence of postID from the mirror
// set, not just the first.
func (s *UserStore) RemoveEngagedPost(ctx context.Context, userID primitive.ObjectID, kind models.EngagementKind, postID primitive.ObjectID) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$pull": bson.M{kind.UserField(): postID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearPostRefs pulls a deleted post out of every user's likedPosts and
// savedPosts.
func (s *UserStore) ClearPostRefs(ctx context.Context, postID primitive.ObjectID) error {
	_, err := s.coll.UpdateMany(ctx, bson.M{}, bson.M{"$pull": bson.M{
		"likedPosts": postID,
		"savedPosts": postID,
	}})
	return err
}
