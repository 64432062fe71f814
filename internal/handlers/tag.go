package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-organizer-api/internal/dto"
	apierrors "github.com/yukikurage/task-organizer-api/internal/errors"
	"github.com/yukikurage/task-organizer-api/internal/middleware"
	"github.com/yukikurage/task-organizer-api/internal/services"
)

const tagNotFoundMessage = "Tag not found"

// TagHandler handles tag HTTP requests
type TagHandler struct {
	tagService *services.TagService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
	}
}

// ListTags returns the current user's tags ordered by name
func (h *TagHandler) ListTags(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	tags, err := h.tagService.ListTags(userID)
	if err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTagDTOs(tags))
}

// CreateTag creates a new tag
func (h *TagHandler) CreateTag(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTagRequest struct {
		Name string `json:"name"`
	}

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	tag, err := h.tagService.CreateTag(userID, req.Name)
	if err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTagDTO(*tag))
}

// DeleteTag deletes a tag and detaches it from the user's tasks
func (h *TagHandler) DeleteTag(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	tagID, exists := middleware.GetID(c)
	if !exists {
		apierrors.NotFound(c, tagNotFoundMessage)
		return
	}

	if err := h.tagService.DeleteTag(tagID, userID); err != nil {
		respondTagError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondTagError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTagNotFound):
		apierrors.NotFound(c, tagNotFoundMessage)
	case errors.Is(err, services.ErrTagNameRequired):
		apierrors.MissingField(c, err.Error())
	case errors.Is(err, services.ErrTagNameTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTagExists):
		apierrors.Conflict(c, err.Error())
	default:
		log.Printf("Tag request failed: %v", err)
		apierrors.InternalError(c, "")
	}
}
