package slugs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapfeed/models"
	"snapfeed/store"
)

type fakeFinder struct {
	existing map[string]*models.Post
	err      error
}

func (f *fakeFinder) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.existing[slug]; ok {
		return p, nil
	}
	return nil, store.ErrNotFound
}

func TestMake(t *testing.T) {
	assert.Equal(t, "hello-world", Make("Hello, World!"))
	assert.Equal(t, "a-trip-to-the-beach", Make("  A Trip   to the BEACH "))
}

func TestAssign(t *testing.T) {
	finder := &fakeFinder{existing: map[string]*models.Post{}}

	s, err := Assign(context.Background(), "Hello, World!", finder)
	require.NoError(t, err)
	assert.Equal(t, "hello-world", s)
}

func TestAssignDuplicateTitle(t *testing.T) {
	finder := &fakeFinder{existing: map[string]*models.Post{
		"hello-world": {Slug: "hello-world"},
	}}

	_, err := Assign(context.Background(), "Hello, World!", finder)
	assert.ErrorIs(t, err, ErrDuplicateTitle)
}

func TestAssignPropagatesLookupErrors(t *testing.T) {
	boom := errors.New("boom")
	finder := &fakeFinder{err: boom}

	_, err := Assign(context.Background(), "Hello, World!", finder)
	assert.ErrorIs(t, err, boom)
}
