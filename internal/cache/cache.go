package cache

import (
	"context"
	"sync"
	"time"

	"lala-site-api/models"
)

// PostStore holds the feed mirror's last successful upstream result for the
// freshness window. A miss (expired or never set) means the caller refetches.
type PostStore interface {
	Get(ctx context.Context) ([]models.FeedItem, bool)
	Set(ctx context.Context, posts []models.FeedItem, ttl time.Duration)
}

// MemoryStore is the in-process fallback used when no Redis is configured.
// Safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	posts     []models.FeedItem
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(_ context.Context) ([]models.FeedItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.posts == nil || time.Now().After(s.expiresAt) {
		return nil, false
	}

	// Copy so callers can't mutate the cached slice.
	posts := make([]models.FeedItem, len(s.posts))
	copy(posts, s.posts)
	return posts, true
}

func (s *MemoryStore) Set(_ context.Context, posts []models.FeedItem, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = make([]models.FeedItem, len(posts))
	copy(s.posts, posts)
	s.expiresAt = time.Now().Add(ttl)
}
