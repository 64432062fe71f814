package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/task-organizer-api/internal/constants"
	"github.com/yukikurage/task-organizer-api/internal/models"
	"github.com/yukikurage/task-organizer-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTagNotFound     = errors.New("tag not found")
	ErrTagNameRequired = errors.New("tag name is required")
	ErrTagNameTooLong  = fmt.Errorf("tag name must be at most %d characters", constants.MaxTagNameLength)
	ErrTagExists       = errors.New("tag already exists")
)

// TagService handles tag business logic
type TagService struct {
	tagRepo repository.TagRepository
}

// NewTagService creates a new TagService
func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{
		tagRepo: tagRepo,
	}
}

// ListTags returns the user's tags ordered by name
func (s *TagService) ListTags(userID uint64) ([]models.Tag, error) {
	tags, err := s.tagRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// CreateTag creates a tag with a trimmed, per-user unique name
func (s *TagService) CreateTag(userID uint64, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTagNameRequired
	}
	if utf8.RuneCountInString(name) > constants.MaxTagNameLength {
		return nil, ErrTagNameTooLong
	}

	if _, err := s.tagRepo.FindByName(name, userID); err == nil {
		return nil, ErrTagExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check tag name: %w", err)
	}

	tag := &models.Tag{
		Name:   name,
		UserID: userID,
	}
	if err := s.tagRepo.Create(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTagExists
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return tag, nil
}

// DeleteTag deletes an owned tag and detaches it from every task
func (s *TagService) DeleteTag(tagID, userID uint64) error {
	if err := s.tagRepo.Delete(tagID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}
