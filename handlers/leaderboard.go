// handlers/leaderboard.go - XP leaderboard with league tiers
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pylingo/database"
	"pylingo/middleware"
	"pylingo/models"
	"pylingo/services"
)

type LeaderboardEntry struct {
	Rank          int                 `json:"rank"`
	UserID        uuid.UUID           `json:"user_id"`
	Username      string              `json:"username"`
	AvatarURL     string              `json:"avatar_url,omitempty"`
	WeeklyXP      int                 `json:"weekly_xp"`
	TotalXP       int                 `json:"total_xp"`
	CurrentStreak int                 `json:"current_streak"`
	League        services.LeagueTier `json:"league"`
}

type LeaderboardResponse struct {
	TopUsers          []LeaderboardEntry `json:"top_users"`
	CurrentUser       *LeaderboardEntry  `json:"current_user,omitempty"`
	TotalParticipants int                `json:"total_participants"`
	WeekStart         time.Time          `json:"week_start"`
	WeekEnd           time.Time          `json:"week_end"`
}

// weekBounds returns the current Monday-Sunday window.
func weekBounds(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	weekday := int(today.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	weekStart := today.AddDate(0, 0, -(weekday - 1))
	weekEnd := weekStart.AddDate(0, 0, 7).Add(-time.Second)
	return weekStart, weekEnd
}

// GetLeaderboard returns the top users ranked by XP, each classified into
// its league, plus the current user's own rank even outside the window.
// Weekly XP is not tracked yet; totals stand in for it.
// GET /api/v1/leaderboard?limit=50
func GetLeaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}

	db := database.GetDB()

	var users []models.User
	if err := db.Where("total_xp > 0").
		Order("total_xp DESC").
		Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch leaderboard"})
	}

	currentUserID := middleware.GetOptionalUserID(c)

	topUsers := make([]LeaderboardEntry, 0, limit)
	var currentEntry *LeaderboardEntry

	for i, user := range users {
		entry := LeaderboardEntry{
			Rank:          i + 1,
			UserID:        user.ID,
			Username:      user.Username,
			AvatarURL:     user.AvatarURL,
			WeeklyXP:      user.TotalXP,
			TotalXP:       user.TotalXP,
			CurrentStreak: user.CurrentStreak,
			League:        services.LeagueForXP(user.TotalXP),
		}

		if i < limit {
			topUsers = append(topUsers, entry)
		}

		if currentUserID != nil && user.ID == *currentUserID {
			e := entry
			currentEntry = &e
		}
	}

	weekStart, weekEnd := weekBounds(time.Now())

	return c.JSON(LeaderboardResponse{
		TopUsers:          topUsers,
		CurrentUser:       currentEntry,
		TotalParticipants: len(users),
		WeekStart:         weekStart,
		WeekEnd:           weekEnd,
	})
}

// GetWeeklyLeaderboard is an alias for the main leaderboard.
// GET /api/v1/leaderboard/weekly
func GetWeeklyLeaderboard(c *fiber.Ctx) error {
	return GetLeaderboard(c)
}
