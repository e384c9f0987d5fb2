package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds indexes AutoMigrate does not cover
func MigrateConstraints(db *gorm.DB) error {
	// Index for status-filtered listings ordered by date
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_events_status_date_time
		ON events (status, date_time);
	`).Error
	if err != nil {
		return err
	}

	// GIN index so seating maps can be queried by section attributes
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_events_seating_map
		ON events USING GIN (seating_map);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
