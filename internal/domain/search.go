package domain

import (
	"sort"
	"strconv"
	"strings"
)

// SearchParams holds search, facet and pagination parameters for catalog
// listing queries.
type SearchParams struct {
	// Text search
	Query string

	// Facets
	Kind        Kind     // restrict to one content kind (tour, destination, blog)
	Categories  []string // OR'd within the facet
	Tags        []string // OR'd within the facet
	PriceRanges []string // bucket labels, OR'd

	// Pagination
	Page     int // 1-indexed
	PageSize int
}

// DefaultSearchParams returns search params with the listing pages' defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Page:     1,
		PageSize: 6, // card grid size on the listing pages
	}
}

// Validate ensures search params are within acceptable bounds. This is bound
// correction, not validation.
func (p *SearchParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 6
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// FilterState extracts the predicate inputs from the params.
func (p *SearchParams) FilterState() FilterState {
	return FilterState{
		Query:       p.Query,
		Categories:  p.Categories,
		Tags:        p.Tags,
		PriceRanges: p.PriceRanges,
	}
}

// CacheKey builds a deterministic cache key for the params. Facet order does
// not affect results, so selections are sorted before joining.
func (p *SearchParams) CacheKey() string {
	var b strings.Builder
	b.WriteString("search:kind=")
	b.WriteString(string(p.Kind))
	b.WriteString(":q=")
	b.WriteString(strings.ToLower(strings.TrimSpace(p.Query)))
	b.WriteString(":cat=")
	b.WriteString(sortedJoin(p.Categories))
	b.WriteString(":tag=")
	b.WriteString(sortedJoin(p.Tags))
	b.WriteString(":price=")
	b.WriteString(sortedJoin(p.PriceRanges))
	b.WriteString(":page=")
	b.WriteString(strconv.Itoa(p.Page))
	b.WriteString(":size=")
	b.WriteString(strconv.Itoa(p.PageSize))
	return b.String()
}

func sortedJoin(values []string) string {
	tokens := lowerTokens(values)
	sort.Strings(tokens)
	return strings.Join(tokens, ",")
}

// SearchResult holds one page of filtered records plus the section counts
// the listing pages render as badges.
type SearchResult struct {
	Records    []*Record     `json:"records"`
	Total      int           `json:"total"` // total matching records before pagination
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
	Sections   SectionCounts `json:"sections"`
}

// NewSearchResult assembles a SearchResult from a filtered set and params.
// The page window and section counts are both derived from the same filtered
// set, so the badges always agree with the visible list.
func NewSearchResult(filtered []*Record, params SearchParams) *SearchResult {
	return &SearchResult{
		Records:    Paginate(filtered, params.Page, params.PageSize),
		Total:      len(filtered),
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: TotalPages(len(filtered), params.PageSize),
		Sections:   Classify(filtered).Counts(),
	}
}
