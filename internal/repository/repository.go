package repository

import (
	"github.com/yukikurage/task-organizer-api/internal/models"
)

// TaskRepository defines the interface for task data access. Every lookup is
// scoped to the owning user.
type TaskRepository interface {
	// Create creates a new task together with its tag associations
	Create(task *models.Task) error

	// FindOwned finds a task by ID owned by userID, with its tags
	FindOwned(id, userID uint64) (*models.Task, error)

	// ListByUser lists all tasks owned by userID in display order
	ListByUser(userID uint64) ([]models.Task, error)

	// Update saves task fields and, when tags is non-nil, replaces its tag set
	Update(task *models.Task, tags []models.Tag) error

	// Delete removes a task and its tag associations
	Delete(id, userID uint64) error
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	// Create creates a new tag
	Create(tag *models.Tag) error

	// FindByName finds a tag by its exact name for userID
	FindByName(name string, userID uint64) (*models.Tag, error)

	// ListByUser lists all tags owned by userID ordered by name
	ListByUser(userID uint64) ([]models.Tag, error)

	// FindOwnedByIDs returns the subset of ids that are tags owned by userID
	FindOwnedByIDs(ids []uint64, userID uint64) ([]models.Tag, error)

	// Delete removes a tag and detaches it from every task
	Delete(id, userID uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Delete removes a user and everything the user owns
	Delete(id uint64) error
}
