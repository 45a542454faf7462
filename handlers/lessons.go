// handlers/lessons.go - Lesson detail for the quiz state machine
package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"pylingo/database"
	"pylingo/models"
)

type ChallengeResponse struct {
	ID         uuid.UUID            `json:"id"`
	Type       models.ChallengeType `json:"type"`
	Question   string               `json:"question"`
	Options    datatypes.JSON       `json:"options"`
	OrderIndex int                  `json:"order_index"`
	// correct_answer intentionally excluded: validation is server-side only
}

type LessonDetailResponse struct {
	ID              uuid.UUID           `json:"id"`
	Title           string              `json:"title"`
	XPReward        int                 `json:"xp_reward"`
	Challenges      []ChallengeResponse `json:"challenges"`
	TotalChallenges int                 `json:"total_challenges"`
}

// GetLesson returns a lesson with its ordered challenges, without the
// correct answers.
// GET /api/v1/lessons/:id
func GetLesson(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid lesson id"})
	}

	db := database.GetDB()
	var lesson models.Lesson
	if err := db.Preload("Challenges").First(&lesson, "id = ?", lessonID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Lesson not found"})
	}

	sort.Slice(lesson.Challenges, func(i, j int) bool {
		return lesson.Challenges[i].OrderIndex < lesson.Challenges[j].OrderIndex
	})

	challenges := make([]ChallengeResponse, 0, len(lesson.Challenges))
	for _, challenge := range lesson.Challenges {
		challenges = append(challenges, ChallengeResponse{
			ID:         challenge.ID,
			Type:       challenge.Type,
			Question:   challenge.Question,
			Options:    challenge.Options,
			OrderIndex: challenge.OrderIndex,
		})
	}

	return c.JSON(LessonDetailResponse{
		ID:              lesson.ID,
		Title:           lesson.Title,
		XPReward:        lesson.XPReward,
		Challenges:      challenges,
		TotalChallenges: len(challenges),
	})
}
