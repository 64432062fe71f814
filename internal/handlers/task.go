package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-organizer-api/internal/dto"
	apierrors "github.com/yukikurage/task-organizer-api/internal/errors"
	"github.com/yukikurage/task-organizer-api/internal/middleware"
	"github.com/yukikurage/task-organizer-api/internal/services"
)

const taskNotFoundMessage = "Task not found"

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns all tasks of the current user: open before completed,
// earliest due first with undated last, newest first on ties
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.taskService.ListTasks(userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, taskID, ok := taskRequestIDs(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title              string  `json:"title"`
		Description        *string `json:"description"`
		DueDate            *string `json:"due_date"`
		Status             string  `json:"status"`
		Priority           string  `json:"priority"`
		EisenhowerQuadrant string  `json:"eisenhower_quadrant"`
		Completed          bool    `json:"completed"`
		TagIDs             []any   `json:"tag_ids"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		UserID:             userID,
		Title:              req.Title,
		Description:        req.Description,
		DueDate:            req.DueDate,
		Status:             req.Status,
		Priority:           req.Priority,
		EisenhowerQuadrant: req.EisenhowerQuadrant,
		Completed:          req.Completed,
		TagIDs:             parseTagIDs(req.TagIDs),
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies the fields present in the body to an existing task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, taskID, ok := h.ownedTaskIDs(c)
	if !ok {
		return
	}

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, err := buildUpdateInput(rawReq)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.UpdateTask(taskID, userID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CompleteTask sets the completed flag of a task
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	userID, taskID, ok := h.ownedTaskIDs(c)
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	value, present := rawReq["completed"]
	if !present {
		apierrors.MissingField(c, `The "completed" field is required`)
		return
	}
	completed, isBool := value.(bool)
	if !isBool {
		apierrors.BadRequest(c, "completed must be a boolean")
		return
	}

	task, err := h.taskService.SetCompleted(taskID, userID, completed)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, taskID, ok := taskRequestIDs(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func taskRequestIDs(c *gin.Context) (userID, taskID uint64, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return 0, 0, false
	}

	taskID, exists = middleware.GetID(c)
	if !exists {
		apierrors.NotFound(c, taskNotFoundMessage)
		return 0, 0, false
	}

	return userID, taskID, true
}

// ownedTaskIDs is taskRequestIDs plus an ownership lookup, so that an
// unknown or foreign task answers 404 before the body is looked at.
func (h *TaskHandler) ownedTaskIDs(c *gin.Context) (userID, taskID uint64, ok bool) {
	userID, taskID, ok = taskRequestIDs(c)
	if !ok {
		return 0, 0, false
	}

	if _, err := h.taskService.GetTask(taskID, userID); err != nil {
		respondTaskError(c, err)
		return 0, 0, false
	}

	return userID, taskID, true
}

// buildUpdateInput converts a decoded JSON object into a partial update.
// Keys that are absent stay nil.
func buildUpdateInput(raw map[string]any) (services.UpdateTaskInput, error) {
	var input services.UpdateTaskInput
	var err error

	if input.Title, err = optionalString(raw, "title"); err != nil {
		return input, err
	}
	if input.Status, err = optionalString(raw, "status"); err != nil {
		return input, err
	}
	if input.Priority, err = optionalString(raw, "priority"); err != nil {
		return input, err
	}
	if input.EisenhowerQuadrant, err = optionalString(raw, "eisenhower_quadrant"); err != nil {
		return input, err
	}

	if value, ok := raw["description"]; ok {
		switch v := value.(type) {
		case nil:
			input.ClearDescription = true
		case string:
			input.Description = &v
		default:
			return input, errors.New("description must be a string")
		}
	}

	if value, ok := raw["due_date"]; ok {
		switch v := value.(type) {
		case nil:
			empty := ""
			input.DueDate = &empty
		case string:
			input.DueDate = &v
		default:
			return input, errors.New("due_date must be a string")
		}
	}

	if value, ok := raw["completed"]; ok {
		completed, isBool := value.(bool)
		if !isBool {
			return input, errors.New("completed must be a boolean")
		}
		input.Completed = &completed
	}

	if value, ok := raw["tag_ids"]; ok && value != nil {
		list, isList := value.([]any)
		if !isList {
			return input, errors.New("tag_ids must be a list")
		}
		input.TagIDs = parseTagIDs(list)
	}

	return input, nil
}

func optionalString(raw map[string]any, key string) (*string, error) {
	value, ok := raw[key]
	if !ok {
		return nil, nil
	}
	s, isString := value.(string)
	if !isString {
		return nil, errors.New(key + " must be a string")
	}
	return &s, nil
}

// parseTagIDs accepts numbers and numeric strings; anything else cannot name
// one of the user's tags and is dropped. The result is never nil.
func parseTagIDs(values []any) []uint64 {
	ids := make([]uint64, 0, len(values))
	for _, value := range values {
		var (
			id  uint64
			err error
		)
		switch v := value.(type) {
		case float64:
			if v <= 0 || v != float64(uint64(v)) {
				continue
			}
			id = uint64(v)
		case json.Number:
			id, err = strconv.ParseUint(v.String(), 10, 64)
		case string:
			id, err = strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		default:
			continue
		}
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, taskNotFoundMessage)
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.MissingField(c, err.Error())
	case errors.Is(err, services.ErrTitleTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidDueDate):
		apierrors.InvalidFormat(c, err.Error())
	default:
		log.Printf("Task request failed: %v", err)
		apierrors.InternalError(c, "")
	}
}
