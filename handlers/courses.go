// handlers/courses.go - Journey map: courses with nested progress
package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pylingo/database"
	"pylingo/middleware"
	"pylingo/models"
)

type LessonBrief struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	OrderIndex         int       `json:"order_index"`
	XPReward           int       `json:"xp_reward"`
	ProgressPercentage float64   `json:"progress_percentage"`
}

type UnitResponse struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	OrderIndex  int           `json:"order_index"`
	Color       string        `json:"color"`
	Lessons     []LessonBrief `json:"lessons"`
}

type CourseResponse struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	ImageURL    string         `json:"image_url,omitempty"`
	OrderIndex  int            `json:"order_index"`
	IsActive    bool           `json:"is_active"`
	Units       []UnitResponse `json:"units"`
}

// GetCourses returns all active courses with nested units and lessons, and
// per-lesson completion percentages for the current user (zero when
// anonymous). Eager loading keeps this to two queries.
// GET /api/v1/courses
func GetCourses(c *fiber.Ctx) error {
	db := database.GetDB()

	var courses []models.Course
	if err := db.Preload("Units.Lessons.Challenges").
		Where("is_active = ?", true).
		Order("order_index").
		Find(&courses).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch courses"})
	}

	// One query for the user's completed challenge ids
	completed := map[uuid.UUID]bool{}
	if userID := middleware.GetOptionalUserID(c); userID != nil {
		var ids []uuid.UUID
		if err := db.Model(&models.ChallengeProgress{}).
			Where("user_id = ? AND completed = ?", *userID, true).
			Pluck("challenge_id", &ids).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch progress"})
		}
		for _, id := range ids {
			completed[id] = true
		}
	}

	result := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		units := make([]UnitResponse, 0, len(course.Units))

		sort.Slice(course.Units, func(i, j int) bool {
			return course.Units[i].OrderIndex < course.Units[j].OrderIndex
		})
		for _, unit := range course.Units {
			lessons := make([]LessonBrief, 0, len(unit.Lessons))

			sort.Slice(unit.Lessons, func(i, j int) bool {
				return unit.Lessons[i].OrderIndex < unit.Lessons[j].OrderIndex
			})
			for _, lesson := range unit.Lessons {
				total := len(lesson.Challenges)
				done := 0
				for _, challenge := range lesson.Challenges {
					if completed[challenge.ID] {
						done++
					}
				}
				progress := 0.0
				if total > 0 {
					progress = float64(done) / float64(total) * 100
				}

				lessons = append(lessons, LessonBrief{
					ID:                 lesson.ID,
					Title:              lesson.Title,
					OrderIndex:         lesson.OrderIndex,
					XPReward:           lesson.XPReward,
					ProgressPercentage: progress,
				})
			}

			units = append(units, UnitResponse{
				ID:          unit.ID,
				Title:       unit.Title,
				Description: unit.Description,
				OrderIndex:  unit.OrderIndex,
				Color:       unit.Color,
				Lessons:     lessons,
			})
		}

		result = append(result, CourseResponse{
			ID:          course.ID,
			Title:       course.Title,
			Description: course.Description,
			ImageURL:    course.ImageURL,
			OrderIndex:  course.OrderIndex,
			IsActive:    course.IsActive,
			Units:       units,
		})
	}

	return c.JSON(result)
}
