package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/task-organizer-api/internal/constants"
	"github.com/yukikurage/task-organizer-api/internal/models"
	"github.com/yukikurage/task-organizer-api/internal/repository"
	"github.com/yukikurage/task-organizer-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrTitleRequired  = errors.New("title is required")
	ErrTitleTooLong   = fmt.Errorf("title must be at most %d characters", constants.MaxTaskTitleLength)
	ErrInvalidDueDate = errors.New("invalid due_date format")
)

// TaskService handles task business logic. Every operation is scoped to the
// calling user; tasks of other users behave as if they did not exist.
type TaskService struct {
	taskRepo repository.TaskRepository
	tagRepo  repository.TagRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, tagRepo repository.TagRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		tagRepo:  tagRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	UserID             uint64
	Title              string
	Description        *string
	DueDate            *string
	Status             string
	Priority           string
	EisenhowerQuadrant string
	Completed          bool
	TagIDs             []uint64
}

// UpdateTaskInput represents a partial update. Nil fields are left
// unchanged. DueDate pointing at "" clears the due date; a non-nil TagIDs
// (even empty) replaces the tag set.
type UpdateTaskInput struct {
	Title              *string
	Description        *string
	ClearDescription   bool
	DueDate            *string
	Status             *string
	Priority           *string
	EisenhowerQuadrant *string
	Completed          *bool
	TagIDs             []uint64
}

// ListTasks returns every task owned by userID in display order
func (s *TaskService) ListTasks(userID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns one owned task with its tags
func (s *TaskService) GetTask(taskID, userID uint64) (*models.Task, error) {
	return s.findOwned(taskID, userID)
}

// CreateTask validates input, resolves tags owned by the user and stores the task
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	title, err := validateTitle(input.Title)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		UserID:             input.UserID,
		Title:              title,
		Description:        input.Description,
		Status:             defaultString(input.Status, constants.DefaultTaskStatus),
		Priority:           defaultString(input.Priority, constants.DefaultTaskPriority),
		EisenhowerQuadrant: defaultString(input.EisenhowerQuadrant, constants.DefaultEisenhowerQuadrant),
		Completed:          input.Completed,
	}

	if input.DueDate != nil && strings.TrimSpace(*input.DueDate) != "" {
		due, err := utils.ParseDueDate(*input.DueDate)
		if err != nil {
			return nil, ErrInvalidDueDate
		}
		task.DueDate = &due
	}

	tags, err := s.resolveTags(input.UserID, input.TagIDs)
	if err != nil {
		return nil, err
	}
	task.Tags = tags

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.findOwned(task.ID, input.UserID)
}

// UpdateTask applies a partial update to an owned task
func (s *TaskService) UpdateTask(taskID, userID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findOwned(taskID, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title, err := validateTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		task.Title = title
	}
	if input.ClearDescription {
		task.Description = nil
	} else if input.Description != nil {
		task.Description = input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.EisenhowerQuadrant != nil {
		task.EisenhowerQuadrant = *input.EisenhowerQuadrant
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}
	if input.DueDate != nil {
		if strings.TrimSpace(*input.DueDate) == "" {
			task.DueDate = nil
		} else {
			due, err := utils.ParseDueDate(*input.DueDate)
			if err != nil {
				return nil, ErrInvalidDueDate
			}
			task.DueDate = &due
		}
	}

	var tags []models.Tag
	if input.TagIDs != nil {
		if tags, err = s.resolveTags(userID, input.TagIDs); err != nil {
			return nil, err
		}
	}

	if err := s.taskRepo.Update(task, tags); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.findOwned(task.ID, userID)
}

// SetCompleted sets the completion flag of an owned task
func (s *TaskService) SetCompleted(taskID, userID uint64, completed bool) (*models.Task, error) {
	return s.UpdateTask(taskID, userID, UpdateTaskInput{Completed: &completed})
}

// DeleteTask deletes an owned task. Its tags are kept.
func (s *TaskService) DeleteTask(taskID, userID uint64) error {
	if err := s.taskRepo.Delete(taskID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *TaskService) findOwned(taskID, userID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindOwned(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// resolveTags maps requested ids to tags owned by userID. Unknown and foreign
// ids are dropped without error. The result is never nil.
func (s *TaskService) resolveTags(userID uint64, tagIDs []uint64) ([]models.Tag, error) {
	tags, err := s.tagRepo.FindOwnedByIDs(uniqueUint64(tagIDs), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tags: %w", err)
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	return tags, nil
}

// validateTitle rejects blank titles. The title is stored as sent.
func validateTitle(title string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > constants.MaxTaskTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
