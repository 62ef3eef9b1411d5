package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tour-catalog-service/internal/domain"
)

// stubRepo is an in-memory RecordRepository for service tests. Records
// are returned in insertion order, mirroring the feed ordering the real
// repository preserves. Writes are mutex-guarded because SyncAll
// upserts from one goroutine per feed.
type stubRepo struct {
	mu      sync.Mutex
	records []*domain.Record
	listErr error
}

func (s *stubRepo) ListByKind(_ context.Context, kind domain.Kind) ([]*domain.Record, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if kind == "" {
		return s.records, nil
	}

	var out []*domain.Record
	for _, r := range s.records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}

	return out, nil
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*domain.Record, error) {
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}

	return nil, nil
}

func (s *stubRepo) GetByFeedAndExternalID(_ context.Context, feedID, externalID string) (*domain.Record, error) {
	for _, r := range s.records {
		if r.FeedID == feedID && r.ExternalID == externalID {
			return r, nil
		}
	}

	return nil, nil
}

func (s *stubRepo) Upsert(_ context.Context, record *domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)

	return nil
}

func (s *stubRepo) BulkUpsert(_ context.Context, records []*domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)

	return nil
}

func (s *stubRepo) Delete(_ context.Context, id string) error {
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)

			return nil
		}
	}

	return nil
}

func (s *stubRepo) Count(_ context.Context, kind domain.Kind) (int64, error) {
	records, _ := s.ListByKind(context.Background(), kind)

	return int64(len(records)), nil
}

func (s *stubRepo) CountByKind(_ context.Context) (map[domain.Kind]int64, error) {
	counts := make(map[domain.Kind]int64)
	for _, r := range s.records {
		counts[r.Kind]++
	}

	return counts, nil
}

// fakeCache is a map-backed domain.Cache; TTLs are ignored.
type fakeCache struct {
	data map[string][]byte
	sets int
	gets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	f.gets++

	return f.data[key], nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.sets++
	f.data[key] = value

	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.data, key)

	return nil
}

func (f *fakeCache) Clear(_ context.Context) error {
	f.data = map[string][]byte{}

	return nil
}

func enabledMonth() []domain.MonthAvailability {
	return []domain.MonthAvailability{
		{Month: "June", Dates: []domain.DepartureDate{{Label: "12 Jun", Enabled: true}}},
	}
}

func catalogFixture() []*domain.Record {
	return []*domain.Record{
		{
			ID: "r1", FeedID: "cms", ExternalID: "t1", Kind: domain.KindTour,
			Title: "Goa Weekend Getaway", Location: "Goa", LocationType: "Domestic",
			Categories: []string{"Beach"}, Price: "₹8,999", Duration: "3D/2N",
			Availability: enabledMonth(),
		},
		{
			ID: "r2", FeedID: "cms", ExternalID: "t2", Kind: domain.KindTour,
			Title: "Kerala Backwaters Escape", Location: "Kerala", LocationType: "Domestic",
			Categories: []string{"Honeymoon"}, Tags: []string{"houseboat"},
			Price: "₹12,500", Duration: "5D/4N",
			Availability: enabledMonth(),
		},
		{
			ID: "r3", FeedID: "cms", ExternalID: "t3", Kind: domain.KindTour,
			Title: "Bali Island Hopper", Location: "Bali", LocationType: "International",
			Categories: []string{"Honeymoon"}, Price: "₹58,000", Duration: "6D/5N",
			Availability: enabledMonth(),
		},
		{
			ID: "r4", FeedID: "blog", ExternalID: "p1", Kind: domain.KindBlog,
			Title: "Kerala Food Guide", Categories: []string{"Food"},
		},
	}
}

func newTestCatalogService(repo *stubRepo, cache domain.Cache) *CatalogService {
	return NewCatalogService(repo, cache, time.Minute, zap.NewNop())
}

func TestCatalogService_Search_FiltersAndPaginates(t *testing.T) {
	repo := &stubRepo{records: catalogFixture()}
	svc := newTestCatalogService(repo, nil)

	params := domain.SearchParams{Query: "kerala", Page: 1, PageSize: 6}
	result, err := svc.Search(context.Background(), params)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Total, "tour and blog post both mention Kerala")
	require.Len(t, result.Records, 2)
	assert.Equal(t, "r2", result.Records[0].ID)
	assert.Equal(t, "r4", result.Records[1].ID)
}

func TestCatalogService_Search_KindRestricts(t *testing.T) {
	repo := &stubRepo{records: catalogFixture()}
	svc := newTestCatalogService(repo, nil)

	params := domain.SearchParams{Kind: domain.KindTour, Page: 1, PageSize: 6}
	result, err := svc.Search(context.Background(), params)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
}

func TestCatalogService_Search_SectionCountsCoverWholeFilteredSet(t *testing.T) {
	repo := &stubRepo{records: catalogFixture()}
	svc := newTestCatalogService(repo, nil)

	// Page size 1: the page shows one record but section counts still
	// describe all matching tours
	params := domain.SearchParams{Kind: domain.KindTour, Page: 1, PageSize: 1}
	result, err := svc.Search(context.Background(), params)

	require.NoError(t, err)
	assert.Len(t, result.Records, 1)
	counts := result.Sections
	assert.Equal(t, 3, counts.Short+counts.Domestic+counts.International+counts.Other)
	assert.Equal(t, 1, counts.Short, "3-day Goa trip")
	assert.Equal(t, 1, counts.Domestic, "5-day Kerala trip")
	assert.Equal(t, 1, counts.International, "6-day Bali trip")
}

func TestCatalogService_Search_UsesCache(t *testing.T) {
	repo := &stubRepo{records: catalogFixture()}
	cache := newFakeCache()
	svc := newTestCatalogService(repo, cache)

	params := domain.SearchParams{Query: "kerala", Page: 1, PageSize: 6}

	first, err := svc.Search(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets, "First search should populate the cache")

	// Mutate the repo; a cached search must not see the change
	repo.listErr = errors.New("repo should not be hit on cache hit")

	second, err := svc.Search(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, first.Total, second.Total)
	require.Len(t, second.Records, len(first.Records))
	assert.Equal(t, first.Records[0].ID, second.Records[0].ID)
}

func TestCatalogService_Search_RepoError(t *testing.T) {
	repo := &stubRepo{listErr: errors.New("connection refused")}
	svc := newTestCatalogService(repo, nil)

	_, err := svc.Search(context.Background(), domain.SearchParams{Page: 1, PageSize: 6})
	assert.Error(t, err)
}

func TestCatalogService_Sections(t *testing.T) {
	repo := &stubRepo{records: catalogFixture()}
	svc := newTestCatalogService(repo, nil)

	sections, err := svc.Sections(context.Background(), domain.SearchParams{Kind: domain.KindTour})

	require.NoError(t, err)
	require.Len(t, sections.Short, 1)
	assert.Equal(t, "r1", sections.Short[0].ID)
	require.Len(t, sections.Domestic, 1)
	assert.Equal(t, "r2", sections.Domestic[0].ID)
	require.Len(t, sections.International, 1)
	assert.Equal(t, "r3", sections.International[0].ID)
	assert.Empty(t, sections.Other)
}

func TestCatalogService_Related(t *testing.T) {
	repo := &stubRepo{records: catalogFixture()}
	svc := newTestCatalogService(repo, nil)

	related, err := svc.Related(context.Background(), "r2", 2)

	require.NoError(t, err)
	require.Len(t, related, 2)
	for _, r := range related {
		assert.NotEqual(t, "r2", r.ID, "Related picks must never include the record itself")
		assert.Equal(t, domain.KindTour, r.Kind, "Related picks stay within the record's kind")
	}

	// Deterministic: same record, same picks
	again, err := svc.Related(context.Background(), "r2", 2)
	require.NoError(t, err)
	require.Len(t, again, 2)
	assert.Equal(t, related[0].ID, again[0].ID)
	assert.Equal(t, related[1].ID, again[1].ID)
}

func TestCatalogService_Related_MissingRecord(t *testing.T) {
	repo := &stubRepo{records: catalogFixture()}
	svc := newTestCatalogService(repo, nil)

	related, err := svc.Related(context.Background(), "nope", 3)

	require.NoError(t, err)
	assert.Nil(t, related, "Missing record reads as nil, not an empty slice")
}

func TestCatalogService_GetByID(t *testing.T) {
	repo := &stubRepo{records: catalogFixture()}
	svc := newTestCatalogService(repo, nil)

	record, err := svc.GetByID(context.Background(), "r1")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "Goa Weekend Getaway", record.Title)

	missing, err := svc.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
