package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-organizer-api/internal/middleware"
)

// Handlers groups the handlers mounted by RegisterRoutes
type Handlers struct {
	Auth   *AuthHandler
	Task   *TaskHandler
	Tag    *TagHandler
	Health *HealthHandler
}

// RegisterRoutes mounts the API on r. The session middleware must already
// be installed on r.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	if h.Health != nil {
		r.GET("/health", h.Health.Check)
	}

	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", h.Auth.Register)
		api.POST("/login", h.Auth.Login)
		api.POST("/logout", h.Auth.Logout)
		api.GET("/check_auth", middleware.RequireAuth(), h.Auth.CheckAuth)
		api.DELETE("/account", middleware.RequireAuth(), h.Auth.DeleteAccount)

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			taskID := middleware.RequireIDParam(taskNotFoundMessage)
			tasks.GET("", h.Task.ListTasks)
			tasks.POST("", h.Task.CreateTask)
			tasks.GET("/:id", taskID, h.Task.GetTask)
			tasks.PUT("/:id", taskID, h.Task.UpdateTask)
			tasks.DELETE("/:id", taskID, h.Task.DeleteTask)
			tasks.PATCH("/:id/complete", taskID, h.Task.CompleteTask)
		}

		// Tag routes (protected)
		tags := api.Group("/tags")
		tags.Use(middleware.RequireAuth())
		{
			tags.GET("", h.Tag.ListTags)
			tags.POST("", h.Tag.CreateTag)
			tags.DELETE("/:id", middleware.RequireIDParam(tagNotFoundMessage), h.Tag.DeleteTag)
		}
	}
}
