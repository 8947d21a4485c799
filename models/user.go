package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account. LikedPosts and SavedPosts mirror the
// membership of this user's id in each post's likes/saves sets; the
// engagement service is the only writer of those four fields.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username     string               `bson:"username" json:"username"`
	Email        string               `bson:"email" json:"email"`
	PasswordHash string               `bson:"passwordHash" json:"-"`
	LikedPosts   []primitive.ObjectID `bson:"likedPosts" json:"likedPosts"`
	SavedPosts   []primitive.ObjectID `bson:"savedPosts" json:"savedPosts"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}
