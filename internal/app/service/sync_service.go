package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"tour-catalog-service/internal/domain"
)

// SyncService pulls records from the upstream feeds into the catalog
// store. On any successful feed sync the search cache is cleared so
// listings never serve records the feed has since changed.
type SyncService struct {
	repo   domain.RecordRepository
	feeds  []domain.Feed
	cache  domain.Cache // nil when caching is disabled
	logger *zap.Logger
}

// NewSyncService creates a new SyncService. cache may be nil.
func NewSyncService(repo domain.RecordRepository, feeds []domain.Feed, cache domain.Cache, logger *zap.Logger) *SyncService {
	return &SyncService{
		repo:   repo,
		feeds:  feeds,
		cache:  cache,
		logger: logger,
	}
}

// SyncResult holds the outcome of syncing one feed.
type SyncResult struct {
	Feed     string
	Count    int
	Duration time.Duration
	Error    error
}

// SyncAll synchronizes records from all feeds concurrently. Partial
// failures are allowed; each feed gets its own result.
func (s *SyncService) SyncAll(ctx context.Context) []SyncResult {
	results := make([]SyncResult, len(s.feeds))
	var wg sync.WaitGroup

	s.logger.Info("starting sync from all feeds",
		zap.Int("feed_count", len(s.feeds)),
	)

	for i, f := range s.feeds {
		wg.Add(1)
		go func(idx int, f domain.Feed) {
			defer wg.Done()
			results[idx] = s.syncFeed(ctx, f)
		}(i, f)
	}

	wg.Wait()

	totalSynced := 0
	totalErrors := 0
	for _, r := range results {
		if r.Error != nil {
			totalErrors++
		} else {
			totalSynced += r.Count
		}
	}

	if totalErrors < len(results) {
		s.clearCache(ctx)
	}

	s.logger.Info("sync completed",
		zap.Int("total_synced", totalSynced),
		zap.Int("feeds_failed", totalErrors),
	)

	return results
}

// SyncFeed synchronizes records from a single named feed.
// Returns (nil, nil) when no feed carries that name.
func (s *SyncService) SyncFeed(ctx context.Context, feedName string) (*SyncResult, error) {
	for _, f := range s.feeds {
		if f.Name() == feedName {
			result := s.syncFeed(ctx, f)
			if result.Error == nil {
				s.clearCache(ctx)
			}

			return &result, result.Error
		}
	}

	return nil, nil // Feed not found
}

// syncFeed fetches and upserts records from one feed.
func (s *SyncService) syncFeed(ctx context.Context, f domain.Feed) SyncResult {
	start := time.Now()
	result := SyncResult{
		Feed: f.Name(),
	}

	s.logger.Debug("syncing feed", zap.String("feed", f.Name()))

	records, err := f.Fetch(ctx)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		s.logger.Warn("feed fetch failed",
			zap.String("feed", f.Name()),
			zap.Error(err),
		)

		return result
	}

	if len(records) > 0 {
		if err := s.repo.BulkUpsert(ctx, records); err != nil {
			result.Error = err
			result.Duration = time.Since(start)
			s.logger.Error("bulk upsert failed",
				zap.String("feed", f.Name()),
				zap.Error(err),
			)

			return result
		}
	}

	result.Count = len(records)
	result.Duration = time.Since(start)

	s.logger.Info("feed sync completed",
		zap.String("feed", f.Name()),
		zap.Int("count", result.Count),
		zap.Duration("duration", result.Duration),
	)

	return result
}

// GetFeedNames returns the names of all registered feeds.
func (s *SyncService) GetFeedNames() []string {
	names := make([]string, len(s.feeds))
	for i, f := range s.feeds {
		names[i] = f.Name()
	}

	return names
}

func (s *SyncService) clearCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Clear(ctx); err != nil {
		s.logger.Warn("search cache clear failed", zap.Error(err))
	}
}
