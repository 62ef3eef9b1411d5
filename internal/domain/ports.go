package domain

import (
	"context"
	"time"
)

// RecordRepository defines the interface for catalog record persistence.
// Implementations: internal/infra/postgres/repository.go
type RecordRepository interface {
	// ListByKind returns all records of a kind in feed order. An empty kind
	// returns the whole catalog.
	ListByKind(ctx context.Context, kind Kind) ([]*Record, error)

	// GetByID retrieves a single record by its internal ID.
	GetByID(ctx context.Context, id string) (*Record, error)

	// GetByFeedAndExternalID retrieves a record by feed and external ID.
	GetByFeedAndExternalID(ctx context.Context, feedID, externalID string) (*Record, error)

	// Upsert creates or updates a single record.
	// Uses feed_id + external_id as the unique key.
	Upsert(ctx context.Context, record *Record) error

	// BulkUpsert creates or updates multiple records in a batch.
	BulkUpsert(ctx context.Context, records []*Record) error

	// Delete removes a record by its internal ID.
	Delete(ctx context.Context, id string) error

	// Count returns the number of records of a kind; empty kind counts all.
	Count(ctx context.Context, kind Kind) (int64, error)

	// CountByKind returns record counts grouped by kind.
	CountByKind(ctx context.Context) (map[Kind]int64, error)
}

// Feed defines the interface for upstream content feeds.
// Implementations: internal/infra/feed/cms/, internal/infra/feed/blog/
type Feed interface {
	// Name returns the unique identifier for this feed.
	Name() string

	// Fetch retrieves all available records from the feed, already
	// normalized and in feed order.
	Fetch(ctx context.Context) ([]*Record, error)

	// HealthCheck verifies the feed is accessible.
	HealthCheck(ctx context.Context) error
}

// Cache defines the interface for caching operations.
// Implementations: internal/infra/redis/cache.go (optional)
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all cached values.
	Clear(ctx context.Context) error
}
