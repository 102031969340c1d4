package store

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/ndesc/ndesc-api/models"
)

const postKeyPrefix = "posts/"

// Tracking tags for post store call sites.
const (
	tagListPosts  = "LA507"
	tagCreatePost = "CP508"
	tagFetchPost  = "FP509"
	tagEditPost   = "EP510"
	tagDeletePost = "DP511"
)

// PostStore wraps post records stored as hashes keyed by slug. The slug is
// derived by the caller; the store assumes a valid one is supplied.
type PostStore struct {
	rdb redis.Cmdable
}

// NewPostStore returns a PostStore over rdb.
func NewPostStore(rdb redis.Cmdable) *PostStore {
	return &PostStore{rdb: rdb}
}

func postKey(slug string) string { return postKeyPrefix + slug }

// List returns every post joined with its slug. Order follows store
// iteration and is not guaranteed. An empty store yields an empty slice.
func (s *PostStore) List(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, postKeyPrefix+"*", 200).Result()
		if err != nil {
			return nil, unavailable(tagListPosts, err)
		}
		for _, k := range keys {
			h, err := s.rdb.HGetAll(ctx, k).Result()
			if err != nil {
				return nil, unavailable(tagListPosts, err)
			}
			if len(h) == 0 {
				// Deleted between scan and read.
				continue
			}
			posts = append(posts, decodePost(k[len(postKeyPrefix):], h))
		}
		cursor = next
		if cursor == 0 {
			return posts, nil
		}
	}
}

// Create writes the record unconditionally: a slug collision overwrites the
// fields of the existing post. Collision avoidance is the caller's job.
func (s *PostStore) Create(ctx context.Context, slug string, p models.Post) error {
	fields := map[string]interface{}{
		"title":       p.Title,
		"author":      p.Author,
		"datetime":    p.Datetime,
		"feature_img": p.FeatureImg,
		"content":     p.Content,
	}
	if err := s.rdb.HSet(ctx, postKey(slug), fields).Err(); err != nil {
		return unavailable(tagCreatePost, err)
	}
	return nil
}

// Fetch returns the record stored under slug.
func (s *PostStore) Fetch(ctx context.Context, slug string) (models.Post, error) {
	h, err := s.rdb.HGetAll(ctx, postKey(slug)).Result()
	if err != nil {
		return models.Post{}, unavailable(tagFetchPost, err)
	}
	if len(h) == 0 {
		return models.Post{}, ErrNotFound
	}
	return decodePost(slug, h), nil
}

// Edit merges the non-nil fields of patch into an existing record.
func (s *PostStore) Edit(ctx context.Context, slug string, patch models.PostPatch) error {
	n, err := s.rdb.Exists(ctx, postKey(slug)).Result()
	if err != nil {
		return unavailable(tagEditPost, err)
	}
	if n == 0 {
		return ErrNotFound
	}

	fields := map[string]interface{}{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Author != nil {
		fields["author"] = *patch.Author
	}
	if patch.Datetime != nil {
		fields["datetime"] = *patch.Datetime
	}
	if patch.FeatureImg != nil {
		fields["feature_img"] = *patch.FeatureImg
	}
	if patch.Content != nil {
		fields["content"] = *patch.Content
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.rdb.HSet(ctx, postKey(slug), fields).Err(); err != nil {
		return unavailable(tagEditPost, err)
	}
	return nil
}

// Delete removes the record stored under slug.
func (s *PostStore) Delete(ctx context.Context, slug string) error {
	n, err := s.rdb.Exists(ctx, postKey(slug)).Result()
	if err != nil {
		return unavailable(tagDeletePost, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	if err := s.rdb.Del(ctx, postKey(slug)).Err(); err != nil {
		return unavailable(tagDeletePost, err)
	}
	return nil
}

// Exists reports whether a record is stored under slug.
func (s *PostStore) Exists(ctx context.Context, slug string) (bool, error) {
	n, err := s.rdb.Exists(ctx, postKey(slug)).Result()
	if err != nil {
		return false, unavailable(tagCreatePost, err)
	}
	return n > 0, nil
}

func decodePost(slug string, h map[string]string) models.Post {
	return models.Post{
		Slug:       slug,
		Title:      h["title"],
		Author:     h["author"],
		Datetime:   h["datetime"],
		FeatureImg: h["feature_img"],
		Content:    h["content"],
	}
}
