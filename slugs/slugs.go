package slugs

import (
	"context"
	"errors"

	"github.com/gosimple/slug"

	"snapfeed/models"
	"snapfeed/store"
)

// ErrDuplicateTitle reports that another post already owns the slug a
// title derives to.
var ErrDuplicateTitle = errors.New("a post with this title already exists")

// Finder is the content-store lookup the uniqueness check runs against.
type Finder interface {
	FindBySlug(ctx context.Context, slug string) (*models.Post, error)
}

// Make derives the URL-safe lowercase slug for a title.
func Make(title string) string {
	return slug.Make(title)
}

// Assign derives the slug for title and checks that no existing post
// owns it. The check alone is racy against concurrent creators; the
// unique index on posts.slug is the enforcement of last resort, and
// inserts map its violation to store.ErrDuplicate.
func Assign(ctx context.Context, title string, posts Finder) (string, error) {
	s := Make(title)

	_, err := posts.FindBySlug(ctx, s)
	if err == nil {
		return "", ErrDuplicateTitle
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", err
	}
	return s, nil
}
