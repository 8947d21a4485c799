package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is a Mongo-resident blob. Size is the human-readable byte count
// computed once at upload time. Posts reference images by id only;
// deleting an image leaves referencing posts untouched.
type Image struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Data        []byte             `bson:"data,omitempty" json:"-"`
	ContentType string             `bson:"contentType" json:"contentType"`
	Size        string             `bson:"size" json:"size"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
