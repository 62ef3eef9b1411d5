package postgres

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"tour-catalog-service/internal/domain"
)

// AvailabilityColumn stores a departure calendar as JSONB.
type AvailabilityColumn []domain.MonthAvailability

// Value implements driver.Valuer.
func (a AvailabilityColumn) Value() (driver.Value, error) {
	if len(a) == 0 {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *AvailabilityColumn) Scan(src any) error {
	return scanJSON(src, a)
}

// GalleryColumn stores gallery entries as JSONB.
type GalleryColumn []domain.GalleryImage

// Value implements driver.Valuer.
func (g GalleryColumn) Value() (driver.Value, error) {
	if len(g) == 0 {
		return nil, nil
	}
	return json.Marshal(g)
}

// Scan implements sql.Scanner.
func (g *GalleryColumn) Scan(src any) error {
	return scanJSON(src, g)
}

// scanJSON decodes a JSONB column into dest, tolerating NULL.
func scanJSON(src, dest any) error {
	if src == nil {
		return nil
	}
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, dest)
	case string:
		return json.Unmarshal([]byte(data), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}

// RecordModel is the GORM model for the records table.
type RecordModel struct {
	ID         string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FeedID     string `gorm:"type:varchar(50);not null;index:idx_feed_external,unique"`
	ExternalID string `gorm:"type:varchar(100);not null;index:idx_feed_external,unique"`

	Kind         string         `gorm:"type:varchar(20);not null;index"`
	Title        string         `gorm:"type:varchar(500);not null"`
	Route        string         `gorm:"type:varchar(500)"`
	Description  string         `gorm:"type:text"`
	Location     string         `gorm:"type:varchar(200)"`
	LocationType string         `gorm:"type:varchar(20)"`
	Categories   pq.StringArray `gorm:"type:text[]"`
	Tags         pq.StringArray `gorm:"type:text[]"`

	Price    string `gorm:"type:varchar(50)"`
	Duration string `gorm:"type:varchar(50)"`

	Availability AvailabilityColumn `gorm:"type:jsonb"`
	Gallery      GalleryColumn      `gorm:"type:jsonb"`

	// Position preserves feed order for listings.
	Position int `gorm:"not null;default:0;index"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for RecordModel.
func (RecordModel) TableName() string {
	return "records"
}

// ToDomain converts RecordModel to domain.Record.
func (m *RecordModel) ToDomain() *domain.Record {
	return &domain.Record{
		ID:           m.ID,
		FeedID:       m.FeedID,
		ExternalID:   m.ExternalID,
		Kind:         domain.Kind(m.Kind),
		Title:        m.Title,
		Route:        m.Route,
		Description:  m.Description,
		Location:     m.Location,
		LocationType: m.LocationType,
		Categories:   m.Categories,
		Tags:         m.Tags,
		Price:        m.Price,
		Duration:     m.Duration,
		Availability: m.Availability,
		Gallery:      m.Gallery,
		Position:     m.Position,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain creates a RecordModel from domain.Record.
func FromDomain(r *domain.Record) *RecordModel {
	return &RecordModel{
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
		Availability: r.Availability,
		Gallery:      r.Gallery,
		Position:     r.Position,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// FromDomainSlice converts a slice of domain.Record to RecordModels.
func FromDomainSlice(records []*domain.Record) []*RecordModel {
	models := make([]*RecordModel, len(records))
	for i, r := range records {
		models[i] = FromDomain(r)
	}

	return models
}
