package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/yukikurage/channel-descriptions-api/internal/cache"
	"github.com/yukikurage/channel-descriptions-api/internal/config"
	"github.com/yukikurage/channel-descriptions-api/internal/database"
	"github.com/yukikurage/channel-descriptions-api/internal/handlers"
	"github.com/yukikurage/channel-descriptions-api/internal/repository"
	"github.com/yukikurage/channel-descriptions-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

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
	if err := database.MigrateDatabase(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Optional Redis content cache
	var contentCache cache.ContentCache
	if cfg.RedisHost != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisHost + ":" + cfg.RedisPort,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		contentCache = cache.NewRedisContentCache(client)
		log.Println("Redis content cache enabled")
	}

	// Initialize repositories and services
	descriptionRepo := repository.NewDescriptionRepository(database.GetDB())
	userRepo := repository.NewUserRepository(database.GetDB())
	descriptionService := services.NewDescriptionService(descriptionRepo, userRepo, contentCache)
	userService := services.NewUserService(userRepo, contentCache)

	// Initialize handlers
	descriptionHandler := handlers.NewDescriptionHandler(descriptionService)
	userHandler := handlers.NewUserHandler(userService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Channel Descriptions API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.DELETE("/:channelId", userHandler.DeleteUser)
		}

		descriptions := api.Group("/descriptions")
		{
			descriptions.POST("", descriptionHandler.CreateDescription)
			descriptions.GET("", descriptionHandler.ListDescriptions)
			descriptions.GET("/:id/content", descriptionHandler.GetDescriptionContent)
			descriptions.PUT("/:id", descriptionHandler.UpdateDescription)
			descriptions.DELETE("/:id", descriptionHandler.DeleteDescription)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
