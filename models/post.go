package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post carries a unique, title-derived slug and two engagement sets.
// Likes and Saves hold user ids; each referenced user's likedPosts or
// savedPosts holds this post's id in return.
type Post struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Slug        string               `bson:"slug" json:"slug"`
	Description string               `bson:"description" json:"description"`
	Creator     primitive.ObjectID   `bson:"creator" json:"creator"`
	Images      []primitive.ObjectID `bson:"images" json:"images"`
	Likes       []primitive.ObjectID `bson:"likes" json:"likes"`
	Saves       []primitive.ObjectID `bson:"saves" json:"saves"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Engagement returns the post-side membership set for kind.
func (p *Post) Engagement(kind EngagementKind) []primitive.ObjectID {
	if kind == EngagementSave {
		return p.Saves
	}
	return p.Likes
}
