// handlers/profiles.go - Public user profiles
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pylingo/database"
	"pylingo/models"
	"pylingo/services"
)

// Completion estimates until per-lesson completion rows exist: a lesson
// averages 4 challenges, a course 10 lessons.
const (
	challengesPerLessonEstimate = 4
	lessonsPerCourseEstimate    = 10
)

type UserProfileResponse struct {
	ID                  uuid.UUID           `json:"id"`
	Username            string              `json:"username"`
	AvatarURL           string              `json:"avatar_url,omitempty"`
	TotalXP             int                 `json:"total_xp"`
	CurrentStreak       int                 `json:"current_streak"`
	LongestStreak       int                 `json:"longest_streak"`
	League              services.LeagueTier `json:"league"`
	CoursesCompleted    int                 `json:"courses_completed"`
	LessonsCompleted    int                 `json:"lessons_completed"`
	ChallengesCompleted int                 `json:"challenges_completed"`
	MemberSince         time.Time           `json:"member_since"`
	LastActive          *time.Time          `json:"last_active,omitempty"`
}

// GetUserProfile returns the public profile for a user by username.
// GET /api/v1/profiles/:username
func GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	db := database.GetDB()
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User '" + username + "' not found"})
	}

	var challengesCompleted int64
	db.Model(&models.ChallengeProgress{}).
		Where("user_id = ? AND completed = ?", user.ID, true).
		Count(&challengesCompleted)

	lessonsCompleted := int(challengesCompleted) / challengesPerLessonEstimate
	coursesCompleted := lessonsCompleted / lessonsPerCourseEstimate

	return c.JSON(UserProfileResponse{
		ID:                  user.ID,
		Username:            user.Username,
		AvatarURL:           user.AvatarURL,
		TotalXP:             user.TotalXP,
		CurrentStreak:       user.CurrentStreak,
		LongestStreak:       user.LongestStreak,
		League:              services.LeagueForXP(user.TotalXP),
		CoursesCompleted:    coursesCompleted,
		LessonsCompleted:    lessonsCompleted,
		ChallengesCompleted: int(challengesCompleted),
		MemberSince:         user.CreatedAt,
		LastActive:          user.LastActivityDate,
	})
}

type UserStatsResponse struct {
	TotalXP          int                 `json:"total_xp"`
	CurrentStreak    int                 `json:"current_streak"`
	LongestStreak    int                 `json:"longest_streak"`
	League           services.LeagueTier `json:"league"`
	LeagueRank       int                 `json:"league_rank"`
	CoursesCompleted int                 `json:"courses_completed"`
	LessonsCompleted int                 `json:"lessons_completed"`
}

// GetUserProfileStats is a lighter-weight stats endpoint for a public
// profile page.
// GET /api/v1/profiles/:username/stats
func GetUserProfileStats(c *fiber.Ctx) error {
	username := c.Params("username")

	db := database.GetDB()
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User '" + username + "' not found"})
	}

	var challengesCompleted int64
	db.Model(&models.ChallengeProgress{}).
		Where("user_id = ? AND completed = ?", user.ID, true).
		Count(&challengesCompleted)

	lessonsCompleted := int(challengesCompleted) / challengesPerLessonEstimate
	coursesCompleted := lessonsCompleted / lessonsPerCourseEstimate

	league := services.LeagueForXP(user.TotalXP)

	// Rank within the user's league: ahead of them are league peers with
	// more XP.
	var ahead int64
	db.Model(&models.User{}).
		Where("total_xp > ?", user.TotalXP).
		Where("total_xp >= ? AND total_xp < ?", leagueFloor(league), leagueCeiling(league)).
		Count(&ahead)

	return c.JSON(UserStatsResponse{
		TotalXP:          user.TotalXP,
		CurrentStreak:    user.CurrentStreak,
		LongestStreak:    user.LongestStreak,
		League:           league,
		LeagueRank:       int(ahead) + 1,
		CoursesCompleted: coursesCompleted,
		LessonsCompleted: lessonsCompleted,
	})
}

func leagueFloor(tier services.LeagueTier) int {
	switch tier {
	case services.LeagueDiamond:
		return 50000
	case services.LeagueObsidian:
		return 30000
	case services.LeaguePearl:
		return 20000
	case services.LeagueAmethyst:
		return 15000
	case services.LeagueEmerald:
		return 10000
	case services.LeagueRuby:
		return 5000
	case services.LeagueSapphire:
		return 2500
	case services.LeagueGold:
		return 1000
	case services.LeagueSilver:
		return 500
	default:
		return 0
	}
}

func leagueCeiling(tier services.LeagueTier) int {
	switch tier {
	case services.LeagueDiamond:
		return 1 << 31
	case services.LeagueObsidian:
		return 50000
	case services.LeaguePearl:
		return 30000
	case services.LeagueAmethyst:
		return 20000
	case services.LeagueEmerald:
		return 15000
	case services.LeagueRuby:
		return 10000
	case services.LeagueSapphire:
		return 5000
	case services.LeagueGold:
		return 2500
	case services.LeagueSilver:
		return 1000
	default:
		return 500
	}
}
