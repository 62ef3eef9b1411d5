package dto

import (
	"time"

	"tour-catalog-service/internal/app/service"
	"tour-catalog-service/internal/domain"
)

// RecordResponse represents a single catalog record in API responses.
type RecordResponse struct {
	ID         string `json:"id"`
	FeedID     string `json:"feed_id"`
	ExternalID string `json:"external_id"`
	Kind       string `json:"kind"`

	Title        string   `json:"title"`
	Route        string   `json:"route,omitempty"`
	Description  string   `json:"description,omitempty"`
	Location     string   `json:"location,omitempty"`
	LocationType string   `json:"location_type,omitempty"`
	Categories   []string `json:"categories,omitempty"`
	Tags         []string `json:"tags,omitempty"`

	// Raw display strings; parsing happens server-side for filtering only
	Price    string `json:"price,omitempty"`
	Duration string `json:"duration,omitempty"`

	Availability []AvailabilityResponse `json:"availability,omitempty"`
	Gallery      []GalleryResponse      `json:"gallery,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// AvailabilityResponse is one month of departure dates.
type AvailabilityResponse struct {
	Month string                  `json:"month"`
	Dates []DepartureDateResponse `json:"dates"`
}

// DepartureDateResponse is a single departure slot.
type DepartureDateResponse struct {
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

// GalleryResponse is one responsive gallery image.
type GalleryResponse struct {
	SrcSetWebp  string `json:"src_set_webp,omitempty"`
	SrcFallback string `json:"src_fallback,omitempty"`
}

// FromDomainRecord converts a domain.Record to a RecordResponse.
func FromDomainRecord(r *domain.Record) RecordResponse {
	resp := RecordResponse{
		ID:           r.ID,
		FeedID:       r.FeedID,
		ExternalID:   r.ExternalID,
		Kind:         string(r.Kind),
		Title:        r.Title,
		Route:        r.Route,
		Description:  r.Description,
		Location:     r.Location,
		LocationType: r.LocationType,
		Categories:   r.Categories,
		Tags:         r.Tags,
		Price:        r.Price,
		Duration:     r.Duration,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}

	for _, m := range r.Availability {
		month := AvailabilityResponse{Month: m.Month}
		for _, d := range m.Dates {
			month.Dates = append(month.Dates, DepartureDateResponse{
				Label:   d.Label,
				Enabled: d.Enabled,
			})
		}
		resp.Availability = append(resp.Availability, month)
	}

	for _, g := range r.Gallery {
		resp.Gallery = append(resp.Gallery, GalleryResponse{
			SrcSetWebp:  g.SrcSetWebp,
			SrcFallback: g.SrcFallback,
		})
	}

	return resp
}

// FromDomainRecords converts a record slice.
func FromDomainRecords(records []*domain.Record) []RecordResponse {
	out := make([]RecordResponse, len(records))
	for i, r := range records {
		out[i] = FromDomainRecord(r)
	}

	return out
}

// SearchResponse represents one page of search results.
type SearchResponse struct {
	Records    []RecordResponse `json:"records"`
	Pagination PaginationMeta   `json:"pagination"`
	Sections   SectionCountsMeta `json:"sections"`
}

// PaginationMeta holds pagination metadata.
type PaginationMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// SectionCountsMeta holds per-section counts for the whole filtered set.
type SectionCountsMeta struct {
	Short         int `json:"short"`
	Domestic      int `json:"domestic"`
	International int `json:"international"`
	Other         int `json:"other"`
}

// FromSearchResult converts a domain.SearchResult to a SearchResponse.
func FromSearchResult(result *domain.SearchResult) SearchResponse {
	return SearchResponse{
		Records: FromDomainRecords(result.Records),
		Pagination: PaginationMeta{
			Total:      result.Total,
			Page:       result.Page,
			PageSize:   result.PageSize,
			TotalPages: result.TotalPages,
		},
		Sections: SectionCountsMeta{
			Short:         result.Sections.Short,
			Domestic:      result.Sections.Domestic,
			International: result.Sections.International,
			Other:         result.Sections.Other,
		},
	}
}

// SectionsResponse carries full section membership, not just counts.
type SectionsResponse struct {
	Short         []RecordResponse `json:"short"`
	Domestic      []RecordResponse `json:"domestic"`
	International []RecordResponse `json:"international"`
	Other         []RecordResponse `json:"other"`
}

// FromSections converts domain.Sections to a SectionsResponse.
func FromSections(s *domain.Sections) SectionsResponse {
	return SectionsResponse{
		Short:         FromDomainRecords(s.Short),
		Domestic:      FromDomainRecords(s.Domestic),
		International: FromDomainRecords(s.International),
		Other:         FromDomainRecords(s.Other),
	}
}

// RelatedResponse carries related-item picks for a record.
type RelatedResponse struct {
	Records []RecordResponse `json:"records"`
}

// SyncResultResponse represents the outcome of syncing one feed.
type SyncResultResponse struct {
	Feed     string `json:"feed"`
	Count    int    `json:"count"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// SyncResponse represents the response for a sync-all operation.
type SyncResponse struct {
	Results []SyncResultResponse `json:"results"`
	Summary SyncSummary          `json:"summary"`
}

// SyncSummary aggregates a sync round.
type SyncSummary struct {
	TotalSynced int `json:"total_synced"`
	FeedsOK     int `json:"feeds_ok"`
	FeedsFail   int `json:"feeds_fail"`
}

// FromSyncResults converts service sync results to a SyncResponse.
func FromSyncResults(results []service.SyncResult) SyncResponse {
	resp := SyncResponse{
		Results: make([]SyncResultResponse, len(results)),
	}

	for i, r := range results {
		errMsg := ""
		if r.Error != nil {
			errMsg = r.Error.Error()
			resp.Summary.FeedsFail++
		} else {
			resp.Summary.TotalSynced += r.Count
			resp.Summary.FeedsOK++
		}

		resp.Results[i] = SyncResultResponse{
			Feed:     r.Feed,
			Count:    r.Count,
			Duration: r.Duration.String(),
			Error:    errMsg,
		}
	}

	return resp
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
