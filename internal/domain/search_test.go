package domain

import "testing"

func TestSearchParams_Validate(t *testing.T) {
	tests := []struct {
		name     string
		params   SearchParams
		wantPage int
		wantSize int
	}{
		{"zero values", SearchParams{}, 1, 6},
		{"negative page", SearchParams{Page: -2, PageSize: 10}, 1, 10},
		{"oversized page size", SearchParams{Page: 3, PageSize: 500}, 3, 100},
		{"already valid", SearchParams{Page: 2, PageSize: 9}, 2, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.Validate()
			if tt.params.Page != tt.wantPage || tt.params.PageSize != tt.wantSize {
				t.Errorf("Validate() → page=%d size=%d, want page=%d size=%d",
					tt.params.Page, tt.params.PageSize, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestSearchParams_CacheKey(t *testing.T) {
	a := SearchParams{
		Query:       "Ladakh",
		Kind:        KindTour,
		Categories:  []string{"Adventure", "Trekking"},
		PriceRanges: []string{"₹0-₹10,000"},
		Page:        1,
		PageSize:    6,
	}
	b := SearchParams{
		Query:       "  ladakh ",
		Kind:        KindTour,
		Categories:  []string{"trekking", "ADVENTURE"}, // different order and case
		PriceRanges: []string{"₹0-₹10,000"},
		Page:        1,
		PageSize:    6,
	}

	if a.CacheKey() != b.CacheKey() {
		t.Errorf("equivalent params produced different cache keys:\n%s\n%s", a.CacheKey(), b.CacheKey())
	}

	c := a
	c.Page = 2
	if a.CacheKey() == c.CacheKey() {
		t.Error("different pages share a cache key")
	}
}

func TestNewSearchResult(t *testing.T) {
	filtered := []*Record{
		{ID: "s1", Duration: "3D/2N", Availability: enabledJune()},
		{ID: "d1", Duration: "7D/6N", LocationType: "domestic", Availability: enabledJune()},
		{ID: "o1"},
	}

	params := SearchParams{Page: 1, PageSize: 2}
	result := NewSearchResult(filtered, params)

	if result.Total != 3 {
		t.Errorf("Total = %d, want 3", result.Total)
	}
	if len(result.Records) != 2 {
		t.Errorf("page length = %d, want 2", len(result.Records))
	}
	if result.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", result.TotalPages)
	}
	// Section counts cover the whole filtered set, not just the page.
	want := SectionCounts{Short: 1, Domestic: 1, Other: 1}
	if result.Sections != want {
		t.Errorf("Sections = %+v, want %+v", result.Sections, want)
	}
}

func TestNewSearchResult_Empty(t *testing.T) {
	result := NewSearchResult(nil, SearchParams{Page: 1, PageSize: 6})
	if result.Total != 0 || result.TotalPages != 0 || len(result.Records) != 0 {
		t.Errorf("empty input produced %+v", result)
	}
}
