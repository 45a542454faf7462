// handlers/users.go - Current-user endpoints
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pylingo/database"
	"pylingo/middleware"
	"pylingo/models"
	"pylingo/services"
)

// GetCurrentUser returns the authenticated user's profile.
// GET /api/v1/users/me
func GetCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var user models.User
	if err := db.Preload("Subscription").First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(user)
}

// GetUserStats returns the authenticated user's gamification stats, with a
// heart regeneration pass applied first.
// GET /api/v1/users/me/stats
func GetUserStats(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	stats, err := gamification.Stats(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stats"})
	}

	return c.JSON(stats)
}
