package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Habit lookups are always scoped to one user; the active flag keeps
		// the dense-ordering queries off soft-deleted rows.
		{"habits", "idx_habits_user_active", "user_id, active"},
		{"habits", "idx_habits_user_priority", "user_id, priority"},

		// Activity log range scans for summaries
		{"activity_logs", "idx_activity_logs_user_date", "user_id, date"},
		{"activity_logs", "idx_activity_logs_habit_date", "habit_id, date"},

		// Verification token expiry sweeps
		{"verification_tokens", "idx_verification_tokens_expires_at", "expires_at"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
