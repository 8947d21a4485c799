package engagement

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"snapfeed/models"
)

// ErrPartialUpdate reports that the post-side write succeeded but the
// user-side mirror write did not, leaving the pair inconsistent.
var ErrPartialUpdate = errors.New("engagement partially updated")

// PostStore is the content-store surface the engagement service needs.
type PostStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Insert(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddEngagement(ctx context.Context, postID primitive.ObjectID, kind models.EngagementKind, userID primitive.ObjectID) error
	RemoveEngagement(ctx context.Context, postID primitive.ObjectID, kind models.EngagementKind, userID primitive.ObjectID) error
	ClearUserRefs(ctx context.Context, userID primitive.ObjectID) error
}

// UserStore is the identity-store surface the engagement service needs.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddEngagedPost(ctx context.Context, userID primitive.ObjectID, kind models.EngagementKind, postID primitive.ObjectID) error
	RemoveEngagedPost(ctx context.Context, userID primitive.ObjectID, kind models.EngagementKind, postID primitive.ObjectID) error
	ClearPostRefs(ctx context.Context, postID primitive.ObjectID) error
}

// Service keeps a post's likes/saves sets and the engaged users'
// mirrored likedPosts/savedPosts sets in lockstep.
type Service struct {
	posts PostStore
	users UserStore
}

func NewService(posts PostStore, users UserStore) *Service {
	return &Service{posts: posts, users: users}
}

// Outcome is the result of a toggle: the actor's new membership state
// and the engagement count after the flip.
type Outcome struct {
	Active    bool
	Count     int
	Formatted string
}

// Toggle flips the actor's membership in the post's engagement set for
// kind and mirrors the flip on the actor's own record. The two writes
// hit separate documents and are not a transaction: when the mirror
// write fails the returned error wraps ErrPartialUpdate so callers can
// report the inconsistent pair instead of pretending the toggle never
// happened. The count is derived from the snapshot read at the start,
// so racing toggles may see each other's effect only in the stored
// sets, never as corruption.
func (s *Service) Toggle(ctx context.Context, kind models.EngagementKind, actor, postID primitive.ObjectID) (*Outcome, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, actor); err != nil {
		return nil, err
	}

	members := post.Engagement(kind)
	wasActive := containsID(members, actor)
	count := len(members)

	if wasActive {
		if err := s.posts.RemoveEngagement(ctx, postID, kind, actor); err != nil {
			return nil, err
		}
		if err := s.users.RemoveEngagedPost(ctx, actor, kind, postID); err != nil {
			return nil, fmt.Errorf("%w: post %s updated, user %s mirror failed: %v",
				ErrPartialUpdate, postID.Hex(), actor.Hex(), err)
		}
		count--
	} else {
		if err := s.posts.AddEngagement(ctx, postID, kind, actor); err != nil {
			return nil, err
		}
		if err := s.users.AddEngagedPost(ctx, actor, kind, postID); err != nil {
			return nil, fmt.Errorf("%w: post %s updated, user %s mirror failed: %v",
				ErrPartialUpdate, postID.Hex(), actor.Hex(), err)
		}
		count++
	}

	if count < 0 {
		count = 0
	}

	return &Outcome{
		Active:    !wasActive,
		Count:     count,
		Formatted: FormatEngagement(count, kind.Noun()),
	}, nil
}

// Status reports the actor's like/save state for a post alongside both
// counts.
type Status struct {
	IsLiked        bool   `json:"isLiked"`
	IsSaved        bool   `json:"isSaved"`
	Likes          int    `json:"likes"`
	Saves          int    `json:"saves"`
	FormattedLikes string `json:"formattedLikes"`
	FormattedSaves string `json:"formattedSaves"`
}

func (s *Service) Status(ctx context.Context, actor, postID primitive.ObjectID) (*Status, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &Status{
		IsLiked:        containsID(post.Likes, actor),
		IsSaved:        containsID(post.Saves, actor),
		Likes:          len(post.Likes),
		Saves:          len(post.Saves),
		FormattedLikes: FormatEngagement(len(post.Likes), "like"),
		FormattedSaves: FormatEngagement(len(post.Saves), "save"),
	}, nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
