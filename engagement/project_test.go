package engagement

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"snapfeed/models"
)

func TestProjectPostWithoutViewerOmitsFlags(t *testing.T) {
	post := &models.Post{
		ID:    primitive.NewObjectID(),
		Title: "Sunset",
		Slug:  "sunset",
		Likes: []primitive.ObjectID{primitive.NewObjectID()},
	}

	view := ProjectPost(post, nil, nil, nil)
	assert.Nil(t, view.IsLiked)
	assert.Nil(t, view.IsSaved)

	body, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "isLiked")
	assert.NotContains(t, string(body), "isSaved")
}

func TestProjectPostWithViewerFlags(t *testing.T) {
	liker := primitive.NewObjectID()
	bystander := primitive.NewObjectID()
	post := &models.Post{
		ID:    primitive.NewObjectID(),
		Likes: []primitive.ObjectID{liker},
	}

	view := ProjectPost(post, nil, nil, &liker)
	require.NotNil(t, view.IsLiked)
	require.NotNil(t, view.IsSaved)
	assert.True(t, *view.IsLiked)
	assert.False(t, *view.IsSaved)

	// A viewer who has not liked gets an explicit false, not an omission.
	view = ProjectPost(post, nil, nil, &bystander)
	require.NotNil(t, view.IsLiked)
	assert.False(t, *view.IsLiked)

	body, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"isLiked":false`)
}

func TestProjectPostCountsAndCreator(t *testing.T) {
	creator := &models.User{
		ID:       primitive.NewObjectID(),
		Username: "ada",
		Email:    "ada@example.com",
	}
	post := &models.Post{
		ID:      primitive.NewObjectID(),
		Title:   "Hello, World!",
		Slug:    "hello-world",
		Creator: creator.ID,
		Likes:   []primitive.ObjectID{creator.ID},
	}

	view := ProjectPost(post, creator, nil, nil)
	assert.Equal(t, 1, view.Likes)
	assert.Equal(t, 0, view.Saves)
	assert.Equal(t, "1 like", view.FormattedLikes)
	assert.Equal(t, "0 saves", view.FormattedSaves)
	require.NotNil(t, view.Creator)
	assert.Equal(t, creator.ID.Hex(), view.Creator.ID)
	assert.Equal(t, "ada", view.Creator.Username)
	assert.Equal(t, "ada@example.com", view.Creator.Email)
}

func TestProjectPostImageOrderAndDanglingRefs(t *testing.T) {
	img1 := models.Image{ID: primitive.NewObjectID(), Name: "first.png", Size: "1.20KB"}
	img3 := models.Image{ID: primitive.NewObjectID(), Name: "third.png", Size: "2.00MB"}
	deleted := primitive.NewObjectID()

	post := &models.Post{
		ID:     primitive.NewObjectID(),
		Images: []primitive.ObjectID{img1.ID, deleted, img3.ID},
	}

	// Store lookups return in arbitrary order; the post's order wins and
	// the deleted ref is skipped.
	view := ProjectPost(post, nil, []models.Image{img3, img1}, nil)
	require.Len(t, view.Images, 2)
	assert.Equal(t, "first.png", view.Images[0].Name)
	assert.Equal(t, "third.png", view.Images[1].Name)
	assert.Equal(t, "1.20KB", view.Images[0].Size)
}
