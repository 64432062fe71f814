package repository

import (
	"github.com/yukikurage/task-organizer-api/internal/database"
	"github.com/yukikurage/task-organizer-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task. Tags already attached to the task are linked in
// the same transaction.
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Tags.*").Create(task).Error
	})
}

// FindOwned finds a task by ID owned by userID
func (r *GormTaskRepository) FindOwned(id, userID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.
		Scopes(database.OwnedBy("tasks", userID)).
		Preload("Tags", orderTagsByName).
		First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByUser lists all tasks owned by userID
func (r *GormTaskRepository) ListByUser(userID uint64) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.
		Scopes(database.OwnedBy("tasks", userID), database.TaskListOrder).
		Preload("Tags", orderTagsByName).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update saves the task's columns. A nil tags slice leaves associations
// untouched; a non-nil one (possibly empty) replaces them.
func (r *GormTaskRepository) Update(task *models.Task, tags []models.Tag) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(task).Select("*").Omit("ID", "UserID", "CreatedAt", "Tags").Updates(task).Error; err != nil {
			return err
		}

		if tags == nil {
			return nil
		}

		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			links := make([]models.TaskTag, len(tags))
			for i, tag := range tags {
				links[i] = models.TaskTag{TaskID: task.ID, TagID: tag.ID}
			}
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}
		task.Tags = tags
		return nil
	})
}

// Delete removes a task and its tag associations
func (r *GormTaskRepository) Delete(id, userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}

		result := tx.Scopes(database.OwnedBy("tasks", userID)).Delete(&models.Task{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func orderTagsByName(db *gorm.DB) *gorm.DB {
	return db.Order("tags.name ASC")
}
