package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createRecordsTable creates the records table with all indexes.
func createRecordsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_records",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS records (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					feed_id VARCHAR(50) NOT NULL,
					external_id VARCHAR(100) NOT NULL,

					kind VARCHAR(20) NOT NULL,
					title VARCHAR(500) NOT NULL,
					route VARCHAR(500),
					description TEXT,
					location VARCHAR(200),
					location_type VARCHAR(20),
					categories TEXT[],
					tags TEXT[],

					-- Raw trip attributes, parsed in memory
					price VARCHAR(50),
					duration VARCHAR(50),

					-- Departure calendar and media
					availability JSONB,
					gallery JSONB,

					-- Feed ordering for listings
					position INTEGER NOT NULL DEFAULT 0,

					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

					-- Unique constraint for upsert
					CONSTRAINT uq_feed_external UNIQUE (feed_id, external_id)
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_records_kind ON records(kind);",
				"CREATE INDEX IF NOT EXISTS idx_records_position ON records(feed_id, position);",
				"CREATE INDEX IF NOT EXISTS idx_records_location_type ON records(location_type);",
			}

			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE IF EXISTS records;").Error
		},
	}
}
