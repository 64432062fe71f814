package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/task-organizer-api/internal/config"
	"github.com/yukikurage/task-organizer-api/internal/constants"
	"github.com/yukikurage/task-organizer-api/internal/database"
	"github.com/yukikurage/task-organizer-api/internal/handlers"
	"github.com/yukikurage/task-organizer-api/internal/repository"
	"github.com/yukikurage/task-organizer-api/internal/services"
	"github.com/yukikurage/task-organizer-api/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Initialize Gin router
	r := gin.Default()

	// The SPA sends the session cookie cross-origin, so credentials are allowed
	// for the configured origins only.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Setup session middleware
	store, err := session.NewStore(cfg, db)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	var redisClient *redis.Client
	if cfg.SessionStore == config.SessionStoreRedis {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()
	}

	// Initialize repositories, services and handlers
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tagRepo := repository.NewTagRepository(db)

	handlers.RegisterRoutes(r, handlers.Handlers{
		Auth:   handlers.NewAuthHandler(services.NewAuthService(userRepo), store),
		Task:   handlers.NewTaskHandler(services.NewTaskService(taskRepo, tagRepo)),
		Tag:    handlers.NewTagHandler(services.NewTagService(tagRepo)),
		Health: handlers.NewHealthHandler(db, redisClient),
	})

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
