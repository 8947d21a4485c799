package engagement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"snapfeed/models"
	"snapfeed/store"
)

func TestCreatePostAutoLikesAndMirrors(t *testing.T) {
	creator := &models.User{ID: primitive.NewObjectID()}
	posts := newFakePostStore()
	users := newFakeUserStore(creator)
	svc := NewService(posts, users)

	post := &models.Post{
		ID:      primitive.NewObjectID(),
		Title:   "Hello, World!",
		Slug:    "hello-world",
		Creator: creator.ID,
	}
	require.NoError(t, svc.CreatePost(context.Background(), post))

	stored, err := posts.FindByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{creator.ID}, stored.Likes)
	assert.Empty(t, stored.Saves)
	assert.Equal(t, []primitive.ObjectID{post.ID}, creator.LikedPosts)
	assert.Empty(t, creator.SavedPosts)
}

func TestCreatePostSurfacesMirrorFailure(t *testing.T) {
	creator := &models.User{ID: primitive.NewObjectID()}
	posts := newFakePostStore()
	users := newFakeUserStore(creator)
	users.failWrites = true
	svc := NewService(posts, users)

	post := &models.Post{ID: primitive.NewObjectID(), Creator: creator.ID}
	err := svc.CreatePost(context.Background(), post)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPartialUpdate)

	// The insert landed with the creator's like; only the mirror is
	// missing.
	stored, findErr := posts.FindByID(context.Background(), post.ID)
	require.NoError(t, findErr)
	assert.Equal(t, []primitive.ObjectID{creator.ID}, stored.Likes)
	assert.Empty(t, creator.LikedPosts)
}

func TestRemovePostClearsUserMirrors(t *testing.T) {
	liker := &models.User{ID: primitive.NewObjectID()}
	saver := &models.User{ID: primitive.NewObjectID()}
	post := &models.Post{
		ID:    primitive.NewObjectID(),
		Likes: []primitive.ObjectID{liker.ID},
		Saves: []primitive.ObjectID{saver.ID},
	}
	liker.LikedPosts = []primitive.ObjectID{post.ID}
	saver.SavedPosts = []primitive.ObjectID{post.ID}

	posts := newFakePostStore(post)
	users := newFakeUserStore(liker, saver)
	svc := NewService(posts, users)

	require.NoError(t, svc.RemovePost(context.Background(), post.ID))

	_, err := posts.FindByID(context.Background(), post.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Empty(t, liker.LikedPosts)
	assert.Empty(t, saver.SavedPosts)
}

func TestRemovePostSurfacesCascadeFailure(t *testing.T) {
	post := &models.Post{ID: primitive.NewObjectID()}
	posts := newFakePostStore(post)
	users := newFakeUserStore()
	users.failWrites = true
	svc := NewService(posts, users)

	err := svc.RemovePost(context.Background(), post.ID)
	assert.ErrorIs(t, err, ErrPartialUpdate)
}

func TestRemovePostNotFound(t *testing.T) {
	svc := NewService(newFakePostStore(), newFakeUserStore())

	err := svc.RemovePost(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRemoveUserClearsPostMirrors(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID()}
	other := primitive.NewObjectID()
	post := &models.Post{
		ID:    primitive.NewObjectID(),
		Likes: []primitive.ObjectID{user.ID, other},
		Saves: []primitive.ObjectID{user.ID},
	}
	posts := newFakePostStore(post)
	users := newFakeUserStore(user)
	svc := NewService(posts, users)

	require.NoError(t, svc.RemoveUser(context.Background(), user.ID))

	_, err := users.FindByID(context.Background(), user.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, []primitive.ObjectID{other}, post.Likes)
	assert.Empty(t, post.Saves)
}

func TestRemoveUserSurfacesCascadeFailure(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID()}
	posts := newFakePostStore()
	posts.failWrites = true
	users := newFakeUserStore(user)
	svc := NewService(posts, users)

	err := svc.RemoveUser(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrPartialUpdate)
}

func TestRemoveUserNotFound(t *testing.T) {
	svc := NewService(newFakePostStore(), newFakeUserStore())

	err := svc.RemoveUser(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, store.ErrNotFound)
}
