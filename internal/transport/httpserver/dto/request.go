// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import "tour-catalog-service/internal/domain"

// SearchRequest represents the query parameters for catalog searches.
// Repeated facets arrive as category=a&category=b; Fiber's QueryParser
// also accepts the comma-joined form.
type SearchRequest struct {
	Query       string   `query:"q" validate:"max=200"`
	Kind        string   `query:"kind" validate:"omitempty,oneof=tour destination blog"`
	Categories  []string `query:"category" validate:"omitempty,max=20,dive,max=100"`
	Tags        []string `query:"tag" validate:"omitempty,max=20,dive,max=100"`
	PriceRanges []string `query:"price" validate:"omitempty,max=10,dive,pricerange"`
	Page        int      `query:"page" validate:"omitempty,min=1"`
	PageSize    int      `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// ToSearchParams converts SearchRequest to domain.SearchParams.
func (r *SearchRequest) ToSearchParams() domain.SearchParams {
	params := domain.DefaultSearchParams()

	params.Query = r.Query
	params.Kind = domain.Kind(r.Kind)
	params.Categories = r.Categories
	params.Tags = r.Tags
	params.PriceRanges = r.PriceRanges

	if r.Page > 0 {
		params.Page = r.Page
	}
	if r.PageSize > 0 {
		params.PageSize = r.PageSize
	}

	return params
}

// RelatedRequest represents the query parameters for related lookups.
type RelatedRequest struct {
	Count int `query:"count" validate:"omitempty,min=1,max=12"`
}
