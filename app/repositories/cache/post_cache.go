package cache

import (
	"time"

	"linkboard/app/models"
	"linkboard/app/repositories"
)

// CachedPostRepository wraps a PostRepository, serving the approved feed from
// redis and invalidating it on every status change.
type CachedPostRepository struct {
	inner repositories.PostRepository
	feed  *FeedCache
}

// NewCachedPostRepository creates a CachedPostRepository.
func NewCachedPostRepository(inner repositories.PostRepository, feed *FeedCache) *CachedPostRepository {
	return &CachedPostRepository{inner: inner, feed: feed}
}

func (r *CachedPostRepository) Insert(post *models.Post) error {
	// New posts are pending; the approved feed is unaffected.
	return r.inner.Insert(post)
}

func (r *CachedPostRepository) GetByID(id string) (*models.Post, error) {
	return r.inner.GetByID(id)
}

func (r *CachedPostRepository) UpdateStatus(id string, status models.Status, moderatorID string, decidedAt time.Time) (*models.Post, error) {
	post, err := r.inner.UpdateStatus(id, status, moderatorID, decidedAt)
	if err != nil {
		return nil, err
	}
	r.feed.Invalidate()
	return post, nil
}

func (r *CachedPostRepository) ListByStatus(status models.Status) ([]*models.Post, error) {
	if status != models.StatusApproved {
		return r.inner.ListByStatus(status)
	}

	if posts, ok := r.feed.Get(); ok {
		return posts, nil
	}

	posts, err := r.inner.ListByStatus(status)
	if err != nil {
		return nil, err
	}
	r.feed.Set(posts)
	return posts, nil
}
