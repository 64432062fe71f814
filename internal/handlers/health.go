package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	apierrors "github.com/yukikurage/task-organizer-api/internal/errors"
	"gorm.io/gorm"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandler reports whether the database and, when sessions live in
// redis, the session redis are reachable.
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler creates a HealthHandler. redisClient may be nil.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redisClient,
	}
}

// Check pings each dependency
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		log.Printf("Health check: database unreachable: %v", err)
		apierrors.ServiceUnavailable(c, "Database unavailable")
		return
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			log.Printf("Health check: session redis unreachable: %v", err)
			apierrors.ServiceUnavailable(c, "Session store unavailable")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Task API is running",
	})
}
