package cache

import (
	"linkboard/app/models"
	"linkboard/app/repositories"
)

// CachedVoteRepository wraps a VoteRepository and drops the cached approved
// feed whenever a cast changes a post's aggregate count.
type CachedVoteRepository struct {
	inner repositories.VoteRepository
	feed  *FeedCache
}

// NewCachedVoteRepository creates a CachedVoteRepository.
func NewCachedVoteRepository(inner repositories.VoteRepository, feed *FeedCache) *CachedVoteRepository {
	return &CachedVoteRepository{inner: inner, feed: feed}
}

func (r *CachedVoteRepository) Get(postID, voterID string) (*models.Vote, error) {
	return r.inner.Get(postID, voterID)
}

func (r *CachedVoteRepository) GetForPosts(postIDs []string, voterID string) (map[string]int, error) {
	return r.inner.GetForPosts(postIDs, voterID)
}

func (r *CachedVoteRepository) ListByPost(postID string) ([]*models.Vote, error) {
	return r.inner.ListByPost(postID)
}

func (r *CachedVoteRepository) Cast(postID, voterID string, value int) (*repositories.CastResult, error) {
	result, err := r.inner.Cast(postID, voterID, value)
	if err != nil {
		return nil, err
	}
	r.feed.Invalidate()
	return result, nil
}
