package services

import (
	"context"
	"time"

	"lala-site-api/internal/cache"
	"lala-site-api/internal/instagram"
	"lala-site-api/internal/logger"
	"lala-site-api/internal/telemetry"
	"lala-site-api/models"
)

// MediaFetcher is the upstream side of the feed mirror.
type MediaFetcher interface {
	RecentMedia(ctx context.Context) ([]instagram.Media, error)
}

// FeedService serves the Instagram mirror: cached posts within the freshness
// window, a fresh upstream fetch otherwise. Only successful results are
// cached; upstream errors pass through to the endpoint untouched.
type FeedService struct {
	fetcher MediaFetcher
	store   cache.PostStore
	ttl     time.Duration
	metrics *telemetry.Metrics
}

func NewFeedService(fetcher MediaFetcher, store cache.PostStore, ttl time.Duration, metrics *telemetry.Metrics) *FeedService {
	return &FeedService{fetcher: fetcher, store: store, ttl: ttl, metrics: metrics}
}

// Posts returns the display feed, reusing the cached result while fresh.
func (s *FeedService) Posts(ctx context.Context) ([]models.FeedItem, error) {
	if posts, ok := s.store.Get(ctx); ok {
		return posts, nil
	}
	return s.Refresh(ctx)
}

// Refresh always fetches upstream and replaces the cached result. The
// prefetch job calls this directly so visitors never pay the fetch latency.
func (s *FeedService) Refresh(ctx context.Context) ([]models.FeedItem, error) {
	media, err := s.fetcher.RecentMedia(ctx)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.FeedFetches.Add(ctx, 1)
	}

	posts := TransformMedia(media)
	s.store.Set(ctx, posts, s.ttl)
	return posts, nil
}

// TransformMedia maps upstream media to display items, preserving order.
// Video posts use the thumbnail as their display image; items that end up
// without both an image and a permalink are dropped.
func TransformMedia(media []instagram.Media) []models.FeedItem {
	posts := make([]models.FeedItem, 0, len(media))
	for _, item := range media {
		image := item.MediaURL
		if item.MediaType == instagram.MediaTypeVideo {
			image = item.ThumbnailURL
		}

		if image == "" || item.Permalink == "" {
			continue
		}

		posts = append(posts, models.FeedItem{
			ID:        item.ID,
			Caption:   item.Caption,
			Image:     image,
			Permalink: item.Permalink,
			Timestamp: item.Timestamp,
		})
	}
	return posts
}

// WarmCache is the prefetch job body. Errors are logged and swallowed so a
// failed refresh never kills the scheduler; the stale entry simply expires.
func (s *FeedService) WarmCache() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.Refresh(ctx); err != nil {
		logger.Warn("Feed cache prefetch failed", "error", err)
	}
	return nil
}
