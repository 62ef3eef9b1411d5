package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tour-catalog-service/internal/domain"
)

// upsertColumns are the fields refreshed when a feed re-sends a record.
var upsertColumns = []string{
	"kind", "title", "route", "description", "location", "location_type",
	"categories", "tags", "price", "duration", "availability", "gallery",
	"position", "updated_at",
}

// Repository implements domain.RecordRepository using PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByKind returns all records of a kind ordered as the feeds sent them.
// An empty kind returns the whole catalog. The in-memory filter pipeline
// depends on this ordering being stable across calls.
func (r *Repository) ListByKind(ctx context.Context, kind domain.Kind) ([]*domain.Record, error) {
	query := r.db.WithContext(ctx).Model(&RecordModel{})
	if kind != "" {
		query = query.Where("kind = ?", string(kind))
	}

	var models []RecordModel
	if err := query.Order("feed_id, position").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	records := make([]*domain.Record, len(models))
	for i := range models {
		records[i] = models[i].ToDomain()
	}

	return records, nil
}

// GetByID retrieves a single record by its internal ID.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Record, error) {
	var model RecordModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not found
		}

		return nil, fmt.Errorf("getting record by id: %w", err)
	}

	return model.ToDomain(), nil
}

// GetByFeedAndExternalID retrieves a record by feed and external ID.
func (r *Repository) GetByFeedAndExternalID(ctx context.Context, feedID, externalID string) (*domain.Record, error) {
	var model RecordModel
	err := r.db.WithContext(ctx).
		Where("feed_id = ? AND external_id = ?", feedID, externalID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not found
		}

		return nil, fmt.Errorf("getting record by feed and external id: %w", err)
	}

	return model.ToDomain(), nil
}

// Upsert creates or updates a single record.
func (r *Repository) Upsert(ctx context.Context, record *domain.Record) error {
	model := FromDomain(record)
	model.UpdatedAt = time.Now().UTC()

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "feed_id"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(model).Error

	if err != nil {
		return fmt.Errorf("upserting record: %w", err)
	}

	// Update the domain object with database-generated fields
	record.ID = model.ID
	record.CreatedAt = model.CreatedAt
	record.UpdatedAt = model.UpdatedAt

	return nil
}

// BulkUpsert creates or updates multiple records in a batch.
func (r *Repository) BulkUpsert(ctx context.Context, records []*domain.Record) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := FromDomainSlice(records)
	for _, m := range models {
		m.UpdatedAt = now
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "feed_id"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).CreateInBatches(models, 100).Error

	if err != nil {
		return fmt.Errorf("bulk upserting records: %w", err)
	}

	// Update domain objects with database-generated fields
	for i, m := range models {
		records[i].ID = m.ID
		records[i].CreatedAt = m.CreatedAt
		records[i].UpdatedAt = m.UpdatedAt
	}

	return nil
}

// Delete removes a record by its internal ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&RecordModel{})
	if result.Error != nil {
		return fmt.Errorf("deleting record: %w", result.Error)
	}

	return nil
}

// Count returns the number of records of a kind; empty kind counts all.
func (r *Repository) Count(ctx context.Context, kind domain.Kind) (int64, error) {
	query := r.db.WithContext(ctx).Model(&RecordModel{})
	if kind != "" {
		query = query.Where("kind = ?", string(kind))
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}

	return count, nil
}

// CountByKind returns record counts grouped by kind.
func (r *Repository) CountByKind(ctx context.Context) (map[domain.Kind]int64, error) {
	type kindCount struct {
		Kind  string
		Count int64
	}

	var rows []kindCount
	err := r.db.WithContext(ctx).
		Model(&RecordModel{}).
		Select("kind, count(*) as count").
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("counting records by kind: %w", err)
	}

	counts := make(map[domain.Kind]int64, len(rows))
	for _, row := range rows {
		counts[domain.Kind(row.Kind)] = row.Count
	}

	return counts, nil
}
