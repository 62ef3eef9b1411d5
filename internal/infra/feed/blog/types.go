package blog

import (
	"tour-catalog-service/internal/domain"
)

// Response is the blog platform's post listing.
type Response struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

// Post is a single blog post. Unlike the CMS export the blog API has a
// stable schema, so the fields are typed instead of going through the
// raw-map normalizer.
type Post struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	Location    string   `json:"location"`
	Categories  []string `json:"categories"`
	Tags        []string `json:"tags"`
	HeroImage   Image    `json:"hero_image"`
	PublishedAt string   `json:"published_at"`
}

// Image holds the responsive image sources for a post hero.
type Image struct {
	Webp     string `json:"webp"`
	Fallback string `json:"fallback"`
}

// Pagination holds listing info.
type Pagination struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// ToDomain converts a Post to a catalog record.
func (p *Post) ToDomain(feedID string, position int) *domain.Record {
	record := &domain.Record{
		FeedID:      feedID,
		ExternalID:  p.ID,
		Kind:        domain.KindBlog,
		Title:       p.Title,
		Description: p.Excerpt,
		Location:    p.Location,
		Categories:  p.Categories,
		Tags:        p.Tags,
		Position:    position,
	}

	if p.HeroImage.Webp != "" || p.HeroImage.Fallback != "" {
		record.Gallery = []domain.GalleryImage{{
			SrcSetWebp:  p.HeroImage.Webp,
			SrcFallback: p.HeroImage.Fallback,
		}}
	}

	return record
}
