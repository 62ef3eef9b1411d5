package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tour-catalog-service/internal/domain"
)

// stubFeed is a canned domain.Feed for sync tests.
type stubFeed struct {
	name    string
	records []*domain.Record
	err     error
}

func (s *stubFeed) Name() string { return s.name }

func (s *stubFeed) Fetch(_ context.Context) ([]*domain.Record, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.records, nil
}

func (s *stubFeed) HealthCheck(_ context.Context) error { return s.err }

func feedRecords(feedID string, n int) []*domain.Record {
	records := make([]*domain.Record, n)
	for i := range records {
		records[i] = &domain.Record{
			FeedID:     feedID,
			ExternalID: string(rune('a' + i)),
			Kind:       domain.KindTour,
			Title:      "Record " + string(rune('A'+i)),
			Position:   i,
		}
	}

	return records
}

func TestSyncService_SyncAll_AllFeedsSucceed(t *testing.T) {
	repo := &stubRepo{}
	cache := newFakeCache()
	cache.data["search:stale"] = []byte("x")

	feeds := []domain.Feed{
		&stubFeed{name: "cms", records: feedRecords("cms", 3)},
		&stubFeed{name: "blog", records: feedRecords("blog", 2)},
	}
	svc := NewSyncService(repo, feeds, cache, zap.NewNop())

	results := svc.SyncAll(context.Background())

	require.Len(t, results, 2)
	for _, r := range results {
		assert.NoError(t, r.Error)
	}
	assert.Equal(t, 3, results[0].Count)
	assert.Equal(t, 2, results[1].Count)
	assert.Len(t, repo.records, 5, "All fetched records should be stored")
	assert.Empty(t, cache.data, "Successful sync should clear the search cache")
}

func TestSyncService_SyncAll_PartialFailure(t *testing.T) {
	repo := &stubRepo{}
	cache := newFakeCache()
	cache.data["search:stale"] = []byte("x")

	feeds := []domain.Feed{
		&stubFeed{name: "cms", records: feedRecords("cms", 3)},
		&stubFeed{name: "blog", err: errors.New("connection refused")},
	}
	svc := NewSyncService(repo, feeds, cache, zap.NewNop())

	results := svc.SyncAll(context.Background())

	require.Len(t, results, 2)
	assert.NoError(t, results[0].Error)
	assert.Error(t, results[1].Error)
	assert.Len(t, repo.records, 3, "Healthy feed still syncs when another fails")
	assert.Empty(t, cache.data, "Cache clears as long as one feed synced")
}

func TestSyncService_SyncAll_TotalFailure(t *testing.T) {
	repo := &stubRepo{}
	cache := newFakeCache()
	cache.data["search:live"] = []byte("x")

	feeds := []domain.Feed{
		&stubFeed{name: "cms", err: errors.New("down")},
		&stubFeed{name: "blog", err: errors.New("down")},
	}
	svc := NewSyncService(repo, feeds, cache, zap.NewNop())

	results := svc.SyncAll(context.Background())

	for _, r := range results {
		assert.Error(t, r.Error)
	}
	assert.NotEmpty(t, cache.data, "Cache keeps serving when no feed delivered anything")
}

func TestSyncService_SyncFeed(t *testing.T) {
	repo := &stubRepo{}
	feeds := []domain.Feed{
		&stubFeed{name: "cms", records: feedRecords("cms", 2)},
		&stubFeed{name: "blog", records: feedRecords("blog", 1)},
	}
	svc := NewSyncService(repo, feeds, nil, zap.NewNop())

	result, err := svc.SyncFeed(context.Background(), "blog")

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "blog", result.Feed)
	assert.Equal(t, 1, result.Count)
	assert.Len(t, repo.records, 1, "Only the named feed syncs")
}

func TestSyncService_SyncFeed_Unknown(t *testing.T) {
	svc := NewSyncService(&stubRepo{}, []domain.Feed{&stubFeed{name: "cms"}}, nil, zap.NewNop())

	result, err := svc.SyncFeed(context.Background(), "tripadvisor")

	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestSyncService_GetFeedNames(t *testing.T) {
	svc := NewSyncService(&stubRepo{}, []domain.Feed{
		&stubFeed{name: "cms"},
		&stubFeed{name: "blog"},
	}, nil, zap.NewNop())

	assert.Equal(t, []string{"cms", "blog"}, svc.GetFeedNames())
}
