// main.go
package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"pylingo/config"
	"pylingo/database"
	"pylingo/handlers"
	"pylingo/middleware"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := config.Load()

	// Initialize database
	database.InitDB()
	defer database.CloseDB()

	// Seed starter content on an empty database
	if err := database.SeedCourses(); err != nil {
		log.Printf("Warning: failed to seed courses: %v", err)
	}

	// Wire handlers to the database and config
	handlers.Init(cfg)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "PyLingo API",
		ErrorHandler: customErrorHandler(cfg),
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api/v1")

	// User routes: register/login under stricter rate limiting
	userGroup := api.Group("/users")
	userGroup.Post("/register", middleware.AuthRateLimitMiddleware(), handlers.Register)
	userGroup.Post("/login", middleware.AuthRateLimitMiddleware(), handlers.Login)
	userGroup.Get("/me", middleware.AuthMiddleware, handlers.GetCurrentUser)
	userGroup.Get("/me/stats", middleware.AuthMiddleware, handlers.GetUserStats)

	// Content routes (public; courses include progress when authenticated)
	api.Get("/courses", middleware.OptionalAuthMiddleware, handlers.GetCourses)
	api.Get("/lessons/:id", handlers.GetLesson)

	// Challenge submission: works anonymously, full gamification when
	// authenticated
	api.Post("/challenge-progress", middleware.OptionalAuthMiddleware, handlers.SubmitChallenge)

	// Leaderboard routes
	leaderboardGroup := api.Group("/leaderboard")
	leaderboardGroup.Get("/", middleware.OptionalAuthMiddleware, handlers.GetLeaderboard)
	leaderboardGroup.Get("/weekly", middleware.OptionalAuthMiddleware, handlers.GetWeeklyLeaderboard)

	// Public profile routes
	api.Get("/profiles/:username", handlers.GetUserProfile)
	api.Get("/profiles/:username/stats", handlers.GetUserProfileStats)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	log.Printf("🚀 PyLingo API starting on port %s", cfg.Port)
	log.Printf("📊 Environment: %s", cfg.AppEnv)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

func customErrorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		// Don't expose internal errors in production
		if cfg.AppEnv == "production" && code == 500 {
			message = "An error occurred. Please try again later."
		}

		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   message,
		})
	}
}
