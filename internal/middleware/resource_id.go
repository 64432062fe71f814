package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-organizer-api/internal/constants"
	apierrors "github.com/yukikurage/task-organizer-api/internal/errors"
)

// RequireIDParam parses the :id path parameter. A malformed id is reported as
// not found, the same answer an unknown or foreign id gets.
func RequireIDParam(notFoundMessage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			apierrors.NotFound(c, notFoundMessage)
			return
		}

		c.Set(constants.ContextKeyID, id)
		c.Next()
	}
}

// GetID retrieves the id parsed by RequireIDParam
func GetID(c *gin.Context) (uint64, bool) {
	id, exists := c.Get(constants.ContextKeyID)
	if !exists {
		return 0, false
	}
	v, ok := id.(uint64)
	return v, ok
}
