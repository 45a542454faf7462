// handlers/challenges.go - Challenge submission endpoint
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pylingo/middleware"
	"pylingo/services"
)

type SubmitChallengeRequest struct {
	ChallengeID string `json:"challenge_id"`
	Answer      string `json:"answer"`
}

// SubmitChallenge validates an answer and runs the gamification workflow.
// Works without authentication: anonymous submissions get demo feedback and
// nothing is persisted.
// POST /api/v1/challenge-progress
func SubmitChallenge(c *fiber.Ctx) error {
	var req SubmitChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	challengeID, err := uuid.Parse(req.ChallengeID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid challenge id"})
	}

	userID := middleware.GetOptionalUserID(c)

	result, err := gamification.SubmitChallenge(userID, challengeID, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChallengeNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "Challenge not found"})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		case errors.Is(err, services.ErrNoHearts):
			return c.Status(403).JSON(fiber.Map{"error": "No hearts remaining. Wait for regeneration or upgrade to Pro."})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to process submission"})
	}

	return c.JSON(result)
}
