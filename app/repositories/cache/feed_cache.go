// Package cache decorates the badger repositories with a redis read cache
// for the public approved feed. The cache is a pure read-through layer: every
// write that could change the feed (a moderation decision, a vote cast)
// drops the cached copy, so readers only ever see confirmed store state.
package cache

import (
	"context"
	"encoding/json"
	"time"

	applog "linkboard/app/log"
	"linkboard/app/models"

	"github.com/go-redis/redis/v8"
)

const approvedFeedKey = "linkboard:feed:approved"

// opTimeout caps how long any cache call may block. A slow or unreachable
// redis must never hold up a request; the store serves the read instead.
const opTimeout = 500 * time.Millisecond

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// FeedCache holds the cached approved feed.
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFeedCache creates a FeedCache with the given TTL.
func NewFeedCache(client *redis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{client: client, ttl: ttl}
}

// Get returns the cached feed and whether it was present. Redis failures are
// logged and reported as a miss; the store stays the source of truth.
func (c *FeedCache) Get() ([]*models.Post, bool) {
	ctx, cancel := opContext()
	defer cancel()

	data, err := c.client.Get(ctx, approvedFeedKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		applog.Warn.Printf("feed cache get: %v", err)
		return nil, false
	}

	var posts []*models.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		applog.Warn.Printf("feed cache decode: %v", err)
		return nil, false
	}
	return posts, true
}

// Set caches the feed for the configured TTL.
func (c *FeedCache) Set(posts []*models.Post) {
	data, err := json.Marshal(posts)
	if err != nil {
		applog.Warn.Printf("feed cache encode: %v", err)
		return
	}

	ctx, cancel := opContext()
	defer cancel()
	if err := c.client.Set(ctx, approvedFeedKey, data, c.ttl).Err(); err != nil {
		applog.Warn.Printf("feed cache set: %v", err)
	}
}

// Invalidate drops the cached feed.
func (c *FeedCache) Invalidate() {
	ctx, cancel := opContext()
	defer cancel()
	if err := c.client.Del(ctx, approvedFeedKey).Err(); err != nil {
		applog.Warn.Printf("feed cache invalidate: %v", err)
	}
}
