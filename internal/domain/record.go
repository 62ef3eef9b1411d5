// Package domain contains the core business logic and entities.
// This package has no external dependencies (only stdlib).
package domain

import (
	"strings"
	"time"
)

// Kind represents the type of catalog record.
type Kind string

const (
	KindTour        Kind = "tour"
	KindDestination Kind = "destination"
	KindBlog        Kind = "blog"
)

// Location type tags carried by upstream feeds. Matching is case-insensitive
// and trimmed; any other value is treated as unknown.
const (
	LocationTypeDomestic      = "domestic"
	LocationTypeInternational = "international"
)

// Record represents a unified catalog entity (tour, destination or blog post)
// from any feed. This is the core domain entity used throughout the application.
type Record struct {
	// Primary identifiers
	ID         string `json:"id"`          // Internal UUID
	FeedID     string `json:"feed_id"`     // e.g., "cms", "blog"
	ExternalID string `json:"external_id"` // ID from the feed (unique per feed)

	// Catalog metadata
	Kind        Kind     `json:"kind"`
	Title       string   `json:"title"`
	Route       string   `json:"route,omitempty"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`      // free string, e.g. "India"
	LocationType string  `json:"location_type,omitempty"` // "domestic" | "international" when tagged
	Categories  []string `json:"categories,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	// Raw trip attributes. Kept as the feed sent them; parsed on demand by
	// ParsePrice / ParseDurationDays so unparsable values can fail closed.
	Price    string `json:"price,omitempty"`    // e.g. "₹12,500"
	Duration string `json:"duration,omitempty"` // e.g. "5D/4N"

	// Departure calendar and media
	Availability []MonthAvailability `json:"availability,omitempty"`
	Gallery      []GalleryImage      `json:"gallery,omitempty"`

	// Position preserves the feed's original ordering. Listing pages and the
	// related-items fallback pools rely on it being stable.
	Position int `json:"position"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MonthAvailability groups departure dates under a display month.
type MonthAvailability struct {
	Month string          `json:"month"`
	Dates []DepartureDate `json:"dates"`
}

// DepartureDate is a single departure slot. Label is a date or a date range
// as the feed printed it.
type DepartureDate struct {
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

// GalleryImage is the unified shape for gallery entries. Legacy feeds send
// bare URL strings, newer ones send srcset objects; both normalize to this.
type GalleryImage struct {
	SrcSetWebp  string `json:"srcset_webp,omitempty"`
	SrcFallback string `json:"src_fallback,omitempty"`
}

// NewRecord creates a new Record with timestamps set.
func NewRecord(feedID, externalID, title string, kind Kind) *Record {
	now := time.Now().UTC()
	return &Record{
		FeedID:     feedID,
		ExternalID: externalID,
		Title:      title,
		Kind:       kind,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsTour returns true if the record is a tour.
func (r *Record) IsTour() bool {
	return r.Kind == KindTour
}

// IsBlog returns true if the record is a blog post.
func (r *Record) IsBlog() bool {
	return r.Kind == KindBlog
}

// HasEnabledDeparture reports whether at least one departure date is enabled.
// Records without any enabled date are excluded from every fixed-departure
// bucket by the classifier.
func (r *Record) HasEnabledDeparture() bool {
	for _, month := range r.Availability {
		for _, d := range month.Dates {
			if d.Enabled {
				return true
			}
		}
	}
	return false
}

// DurationDays returns the parsed trip length in days, or DurationUnknown.
func (r *Record) DurationDays() int {
	return ParseDurationDays(r.Duration)
}

// PriceAmount returns the parsed numeric price. ok is false when the price
// is absent or unparsable; callers must fail closed on false.
func (r *Record) PriceAmount() (float64, bool) {
	return ParsePrice(r.Price)
}

// CategoryTokens returns the record's categories lower-cased and trimmed,
// ready for set intersection with filter selections.
func (r *Record) CategoryTokens() []string {
	return lowerTokens(r.Categories)
}

// TagTokens returns the record's tags lower-cased and trimmed.
func (r *Record) TagTokens() []string {
	return lowerTokens(r.Tags)
}

// isDomesticTagged reports an explicit "domestic" location type tag.
func (r *Record) isDomesticTagged() bool {
	return strings.EqualFold(strings.TrimSpace(r.LocationType), LocationTypeDomestic)
}

// isInternationalTagged reports an explicit "international" location type tag.
func (r *Record) isInternationalTagged() bool {
	return strings.EqualFold(strings.TrimSpace(r.LocationType), LocationTypeInternational)
}

// searchText builds the lower-cased haystack for free-text matching. Absent
// fields are simply skipped rather than treated as mismatches.
func (r *Record) searchText() string {
	parts := make([]string, 0, 5+len(r.Categories))
	for _, s := range []string{r.Title, r.Route, r.Description, r.Location} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	parts = append(parts, r.Categories...)
	return strings.ToLower(strings.Join(parts, " "))
}

// lowerTokens trims and lower-cases values, dropping empties.
func lowerTokens(values []string) []string {
	tokens := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			tokens = append(tokens, v)
		}
	}
	return tokens
}
