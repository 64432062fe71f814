package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes used by the task listing query.
// Single-column and uniqueness indexes are declared on the models.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Listing: owner filter, then completed / due_date ordering
		{"tasks", "idx_tasks_user_completed_due", "user_id, completed, due_date"},
		{"tasks", "idx_tasks_user_created", "user_id, created_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
