package database

import (
	"gorm.io/gorm"
)

// OwnedBy restricts a query on table to rows owned by userID.
func OwnedBy(table string, userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".user_id = ?", userID)
	}
}

// TaskListOrder sorts open tasks first, then by due date with undated tasks
// last, then newest first.
func TaskListOrder(db *gorm.DB) *gorm.DB {
	return db.
		Order("tasks.completed ASC").
		Order("CASE WHEN tasks.due_date IS NULL THEN 1 ELSE 0 END").
		Order("tasks.due_date ASC").
		Order("tasks.created_at DESC").
		Order("tasks.id DESC")
}
