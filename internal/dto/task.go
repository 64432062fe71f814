package dto

import (
	"github.com/yukikurage/task-organizer-api/internal/models"
	"github.com/yukikurage/task-organizer-api/internal/utils"
)

// UserDTO represents the public fields of a user in API responses
type UserDTO struct {
	ID        uint64  `json:"id"`
	Email     string  `json:"email"`
	Name      *string `json:"name"`
	CreatedAt string  `json:"created_at"`
}

// TagDTO represents a tag in API responses
type TagDTO struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	UserID uint64 `json:"user_id"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID                 uint64   `json:"id"`
	UserID             uint64   `json:"user_id"`
	Title              string   `json:"title"`
	Description        *string  `json:"description"`
	DueDate            *string  `json:"due_date"`
	Status             string   `json:"status"`
	Priority           string   `json:"priority"`
	EisenhowerQuadrant string   `json:"eisenhower_quadrant"`
	Completed          bool     `json:"completed"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
	Tags               []TagDTO `json:"tags"`
}

// AuthResponse wraps the user returned by register and login
type AuthResponse struct {
	Message string  `json:"message"`
	User    UserDTO `json:"user"`
}

// CheckAuthResponse is returned by the session check endpoint
type CheckAuthResponse struct {
	IsAuthenticated bool    `json:"is_authenticated"`
	User            UserDTO `json:"user"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: utils.FormatDateTime(user.CreatedAt),
	}
}

// ToTagDTO converts a Tag model to TagDTO
func ToTagDTO(tag models.Tag) TagDTO {
	return TagDTO{
		ID:     tag.ID,
		Name:   tag.Name,
		UserID: tag.UserID,
	}
}

// ToTagDTOs converts tags, always returning a non-nil slice
func ToTagDTOs(tags []models.Tag) []TagDTO {
	items := make([]TagDTO, len(tags))
	for i, tag := range tags {
		items[i] = ToTagDTO(tag)
	}
	return items
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:                 task.ID,
		UserID:             task.UserID,
		Title:              task.Title,
		Description:        task.Description,
		Status:             task.Status,
		Priority:           task.Priority,
		EisenhowerQuadrant: task.EisenhowerQuadrant,
		Completed:          task.Completed,
		CreatedAt:          utils.FormatDateTime(task.CreatedAt),
		UpdatedAt:          utils.FormatDateTime(task.UpdatedAt),
		Tags:               ToTagDTOs(task.Tags),
	}

	if task.DueDate != nil {
		due := utils.FormatDateTime(*task.DueDate)
		dto.DueDate = &due
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
