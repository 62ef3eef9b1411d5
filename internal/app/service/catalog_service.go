// Package service provides application use cases.
package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"tour-catalog-service/internal/domain"
)

// CatalogService answers listing, detail and related-item queries. The
// filter pipeline runs in memory on the stored catalog: the repository
// returns records in feed order and the pure domain functions do the
// rest. Results are cached in Redis when a cache is configured.
type CatalogService struct {
	repo      domain.RecordRepository
	cache     domain.Cache // nil when caching is disabled
	searchTTL time.Duration
	logger    *zap.Logger
}

// NewCatalogService creates a new CatalogService. cache may be nil.
func NewCatalogService(repo domain.RecordRepository, cache domain.Cache, searchTTL time.Duration, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:      repo,
		cache:     cache,
		searchTTL: searchTTL,
		logger:    logger,
	}
}

// Search filters the catalog by the given params and returns one page of
// results plus section counts for the whole filtered set.
func (s *CatalogService) Search(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error) {
	params.Validate()

	cacheKey := params.CacheKey()
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	s.logger.Debug("searching catalog",
		zap.String("query", params.Query),
		zap.String("kind", string(params.Kind)),
		zap.Int("page", params.Page),
		zap.Int("page_size", params.PageSize),
	)

	records, err := s.repo.ListByKind(ctx, params.Kind)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))

		return nil, err
	}

	filtered := domain.Filter(records, domain.BuildPredicate(params.FilterState()))
	result := domain.NewSearchResult(filtered, params)

	s.toCache(ctx, cacheKey, result)

	s.logger.Debug("search completed",
		zap.Int("total", result.Total),
		zap.Int("count", len(result.Records)),
	)

	return result, nil
}

// Sections classifies the filtered catalog into the listing page's
// section buckets. Unlike Search this returns the full membership of
// each bucket, not just counts.
func (s *CatalogService) Sections(ctx context.Context, params domain.SearchParams) (*domain.Sections, error) {
	params.Validate()

	records, err := s.repo.ListByKind(ctx, params.Kind)
	if err != nil {
		s.logger.Error("sections failed", zap.Error(err))

		return nil, err
	}

	filtered := domain.Filter(records, domain.BuildPredicate(params.FilterState()))

	return domain.Classify(filtered), nil
}

// GetByID retrieves a single record. Returns (nil, nil) when missing.
func (s *CatalogService) GetByID(ctx context.Context, id string) (*domain.Record, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("get by id failed", zap.String("id", id), zap.Error(err))

		return nil, err
	}

	return record, nil
}

// Related returns up to count records related to the given one, drawn
// from records of the same kind. Blogs keep their stored order; tours
// and destinations get a deterministic per-record shuffle, so a detail
// page always shows the same picks.
func (s *CatalogService) Related(ctx context.Context, id string, count int) ([]*domain.Record, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	if count <= 0 {
		count = domain.DefaultRelatedCount
	}

	pool, err := s.repo.ListByKind(ctx, current.Kind)
	if err != nil {
		s.logger.Error("related pool load failed", zap.String("id", id), zap.Error(err))

		return nil, err
	}

	return domain.SelectRelated(pool, current, count, domain.PolicyForKind(current.Kind)), nil
}

// Count returns the total number of stored records.
func (s *CatalogService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, "")
}

// CountByKind returns stored record counts grouped by kind.
func (s *CatalogService) CountByKind(ctx context.Context) (map[domain.Kind]int64, error) {
	return s.repo.CountByKind(ctx)
}

// fromCache returns a cached result for key, or nil on miss, disabled
// cache, or any cache failure. Cache trouble never fails a search.
func (s *CatalogService) fromCache(ctx context.Context, key string) *domain.SearchResult {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil
	}

	var result domain.SearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		s.logger.Warn("dropping undecodable cache entry",
			zap.String("key", key),
			zap.Error(err),
		)
		_ = s.cache.Delete(ctx, key)

		return nil
	}

	return &result
}

// toCache stores a search result, best effort.
func (s *CatalogService) toCache(ctx context.Context, key string, result *domain.SearchResult) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}

	_ = s.cache.Set(ctx, key, data, s.searchTTL)
}
