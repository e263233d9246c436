package services

import (
	"time"

	"github.com/go-co-op/gocron"

	"lala-site-api/internal/logger"
)

// FeedPrefetcher re-fetches the Instagram feed every freshness window so the
// cache never goes cold, mirroring the site's old background revalidation.
type FeedPrefetcher struct {
	scheduler *gocron.Scheduler
}

func NewFeedPrefetcher(feed *FeedService, interval time.Duration) (*FeedPrefetcher, error) {
	s := gocron.NewScheduler(time.UTC)

	if _, err := s.Every(interval).Tag("feed-prefetch").Do(feed.WarmCache); err != nil {
		return nil, err
	}

	return &FeedPrefetcher{scheduler: s}, nil
}

func (p *FeedPrefetcher) Start() {
	p.scheduler.StartAsync()
	logger.Info("Feed prefetch scheduler started")
}

func (p *FeedPrefetcher) Stop() {
	p.scheduler.Stop()
}
