package repository

import (
	"github.com/yukikurage/task-organizer-api/internal/database"
	"github.com/yukikurage/task-organizer-api/internal/models"
	"gorm.io/gorm"
)

// GormTagRepository is a GORM implementation of TagRepository
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &GormTagRepository{db: db}
}

// Create creates a new tag
func (r *GormTagRepository) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// FindByName finds a tag by name for userID
func (r *GormTagRepository) FindByName(name string, userID uint64) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Scopes(database.OwnedBy("tags", userID)).
		Where("tags.name = ?", name).
		First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListByUser lists all tags owned by userID ordered by name
func (r *GormTagRepository) ListByUser(userID uint64) ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := r.db.Scopes(database.OwnedBy("tags", userID)).
		Order("tags.name ASC").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// FindOwnedByIDs returns the tags among ids that belong to userID. Unknown
// and foreign ids are silently left out.
func (r *GormTagRepository) FindOwnedByIDs(ids []uint64, userID uint64) ([]models.Tag, error) {
	tags := []models.Tag{}
	if len(ids) == 0 {
		return tags, nil
	}

	if err := r.db.Scopes(database.OwnedBy("tags", userID)).
		Where("tags.id IN ?", ids).
		Order("tags.name ASC").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Delete removes a tag and its task associations in a transaction. Tasks
// that referenced the tag are left as they are.
func (r *GormTagRepository) Delete(id, userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}

		result := tx.Scopes(database.OwnedBy("tags", userID)).Delete(&models.Tag{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
