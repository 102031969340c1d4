package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndesc/ndesc-api/models"
)

func newTestPostStore(t *testing.T) *PostStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPostStore(client)
}

func testPost() models.Post {
	return models.Post{
		Title:      "Test Post 01",
		Author:     "jdoe",
		Datetime:   "2023-04-01T10:00:00Z",
		FeatureImg: "https://example.com/img.png",
		Content:    "<p>hello world</p>",
	}
}

func TestListEmptyStore(t *testing.T) {
	s := newTestPostStore(t)

	posts, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestCreateThenFetch(t *testing.T) {
	s := newTestPostStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, "test-post-01-42", testPost()))

	got, err := s.Fetch(ctx, "test-post-01-42")
	require.NoError(t, err)
	assert.Equal(t, "test-post-01-42", got.Slug)
	assert.Equal(t, "Test Post 01", got.Title)
	assert.Equal(t, "jdoe", got.Author)
	assert.Equal(t, "2023-04-01T10:00:00Z", got.Datetime)
	assert.Equal(t, "https://example.com/img.png", got.FeatureImg)
	assert.Equal(t, "<p>hello world</p>", got.Content)
}

func TestFetchMissing(t *testing.T) {
	s := newTestPostStore(t)

	_, err := s.Fetch(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListJoinsSlugs(t *testing.T) {
	s := newTestPostStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, "one-1", testPost()))
	require.NoError(t, s.Create(ctx, "two-2", testPost()))

	posts, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	slugs := []string{posts[0].Slug, posts[1].Slug}
	assert.ElementsMatch(t, []string{"one-1", "two-2"}, slugs)
}

func TestEditPartialPatchPost(t *testing.T) {
	s := newTestPostStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, "test-post-01-42", testPost()))

	title := "New"
	require.NoError(t, s.Edit(ctx, "test-post-01-42", models.PostPatch{Title: &title}))

	got, err := s.Fetch(ctx, "test-post-01-42")
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	// Everything else survives the patch.
	assert.Equal(t, "jdoe", got.Author)
	assert.Equal(t, "2023-04-01T10:00:00Z", got.Datetime)
	assert.Equal(t, "https://example.com/img.png", got.FeatureImg)
	assert.Equal(t, "<p>hello world</p>", got.Content)
}

func TestEditMissingPost(t *testing.T) {
	s := newTestPostStore(t)

	title := "New"
	err := s.Edit(context.Background(), "nope", models.PostPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOverwritesOnCollision(t *testing.T) {
	s := newTestPostStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, "same-slug-1", testPost()))

	other := testPost()
	other.Title = "Another"
	require.NoError(t, s.Create(ctx, "same-slug-1", other))

	got, err := s.Fetch(ctx, "same-slug-1")
	require.NoError(t, err)
	assert.Equal(t, "Another", got.Title)
}

func TestDeletePost(t *testing.T) {
	s := newTestPostStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.Delete(ctx, "nope"), ErrNotFound)

	require.NoError(t, s.Create(ctx, "test-post-01-42", testPost()))
	require.NoError(t, s.Delete(ctx, "test-post-01-42"))

	_, err := s.Fetch(ctx, "test-post-01-42")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostExists(t *testing.T) {
	s := newTestPostStore(t)
	ctx := context.Background()

	ok, err := s.Exists(ctx, "test-post-01-42")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Create(ctx, "test-post-01-42", testPost()))

	ok, err = s.Exists(ctx, "test-post-01-42")
	require.NoError(t, err)
	assert.True(t, ok)
}
