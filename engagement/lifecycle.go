package engagement

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"snapfeed/models"
)

// CreatePost stores a new post with its creator as the first liker and
// mirrors that like on the creator's record. Like Toggle, the insert
// and the mirror are writes to separate documents; a failed mirror
// wraps ErrPartialUpdate instead of letting the pair drift silently.
func (s *Service) CreatePost(ctx context.Context, post *models.Post) error {
	post.Likes = []primitive.ObjectID{post.Creator}
	if post.Saves == nil {
		post.Saves = []primitive.ObjectID{}
	}
	if post.Images == nil {
		post.Images = []primitive.ObjectID{}
	}

	if err := s.posts.Insert(ctx, post); err != nil {
		return err
	}
	if err := s.users.AddEngagedPost(ctx, post.Creator, models.EngagementLike, post.ID); err != nil {
		return fmt.Errorf("%w: post %s created, creator %s mirror failed: %v",
			ErrPartialUpdate, post.ID.Hex(), post.Creator.Hex(), err)
	}
	return nil
}

// RemovePost deletes a post and clears its id from every user's
// likedPosts and savedPosts. A failed cleanup after a successful
// delete wraps ErrPartialUpdate.
func (s *Service) RemovePost(ctx context.Context, postID primitive.ObjectID) error {
	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}
	if err := s.users.ClearPostRefs(ctx, postID); err != nil {
		return fmt.Errorf("%w: post %s deleted, user mirrors not cleared: %v",
			ErrPartialUpdate, postID.Hex(), err)
	}
	return nil
}

// RemoveUser deletes a user and clears their id from every post's
// likes and saves. A failed cleanup after a successful delete wraps
// ErrPartialUpdate.
func (s *Service) RemoveUser(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	if err := s.posts.ClearUserRefs(ctx, userID); err != nil {
		return fmt.Errorf("%w: user %s deleted, post mirrors not cleared: %v",
			ErrPartialUpdate, userID.Hex(), err)
	}
	return nil
}
