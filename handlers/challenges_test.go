package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pylingo/config"
	"pylingo/database"
	"pylingo/middleware"
	"pylingo/models"
	"pylingo/services"
)

const testSecret = "test-secret-test-secret-test-secret-test"

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	// The auth middleware reads JWT_SECRET from the environment directly.
	t.Setenv("JWT_SECRET", testSecret)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Subscription{},
		&models.Course{},
		&models.Unit{},
		&models.Lesson{},
		&models.Challenge{},
		&models.ChallengeProgress{},
	))

	database.SetDB(db)
	Init(&config.Config{
		JWTSecret:       testSecret,
		TokenTTLHours:   1,
		MaxHearts:       5,
		HeartRegenHours: 5,
	})

	app := fiber.New()
	app.Post("/api/v1/users/register", Register)
	app.Post("/api/v1/challenge-progress", middleware.OptionalAuthMiddleware, SubmitChallenge)
	app.Get("/api/v1/users/me/stats", middleware.AuthMiddleware, GetUserStats)
	return app, db
}

// seedChallenge creates a single-challenge lesson worth 10 XP and returns
// the challenge.
func seedChallenge(t *testing.T, db *gorm.DB) *models.Challenge {
	t.Helper()

	course := models.Course{Title: "Python Fundamentals", IsActive: true}
	require.NoError(t, db.Create(&course).Error)

	unit := models.Unit{CourseID: course.ID, Title: "Variables & Types"}
	require.NoError(t, db.Create(&unit).Error)

	lesson := models.Lesson{UnitID: unit.ID, Title: "Your First Variables", XPReward: 10}
	require.NoError(t, db.Create(&lesson).Error)

	challenge := models.Challenge{
		LessonID:      lesson.ID,
		Type:          models.ChallengeSelect,
		Question:      "Which keyword prints text?",
		Options:       datatypes.JSON(`[{"id":1,"text":"print"},{"id":2,"text":"echo"}]`),
		CorrectAnswer: "print",
	}
	require.NoError(t, db.Create(&challenge).Error)
	return &challenge
}

func postJSON(t *testing.T, app *fiber.App, path, token string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeResult(t *testing.T, resp *http.Response) *services.SubmissionResult {
	t.Helper()
	var result services.SubmissionResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return &result
}

func registerUser(t *testing.T, app *fiber.App, username string) (string, string) {
	t.Helper()

	resp := postJSON(t, app, "/api/v1/users/register", "", RegisterRequest{
		Email:    username + "@example.com",
		Username: username,
		Password: "secret123",
	})
	require.Equal(t, 201, resp.StatusCode)

	var auth AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&auth))
	require.True(t, auth.Success)
	require.NotEmpty(t, auth.Token)
	return auth.Token, auth.User.ID
}

func TestSubmitChallengeEndpointAnonymous(t *testing.T) {
	app, db := setupTestApp(t)
	challenge := seedChallenge(t, db)

	resp := postJSON(t, app, "/api/v1/challenge-progress", "", SubmitChallengeRequest{
		ChallengeID: challenge.ID.String(),
		Answer:      "print",
	})
	require.Equal(t, 200, resp.StatusCode)

	result := decodeResult(t, resp)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, 3, result.XPEarned)
	assert.Equal(t, 5, result.HeartsRemaining)

	var count int64
	require.NoError(t, db.Model(&models.ChallengeProgress{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitChallengeEndpointAuthenticated(t *testing.T) {
	app, db := setupTestApp(t)
	challenge := seedChallenge(t, db)
	token, _ := registerUser(t, app, "alice")

	resp := postJSON(t, app, "/api/v1/challenge-progress", token, SubmitChallengeRequest{
		ChallengeID: challenge.ID.String(),
		Answer:      "print",
	})
	require.Equal(t, 200, resp.StatusCode)

	result := decodeResult(t, resp)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, 10, result.XPEarned)
	assert.True(t, result.StreakUpdated)
	assert.Equal(t, 1, result.CurrentStreak)

	// Stats reflect the submission
	req := httptest.NewRequest("GET", "/api/v1/users/me/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	statsResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, statsResp.StatusCode)

	var stats services.UserStats
	require.NoError(t, json.NewDecoder(statsResp.Body).Decode(&stats))
	assert.Equal(t, 10, stats.TotalXP)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 5, stats.Hearts)
	assert.False(t, stats.IsPro)
}

func TestSubmitChallengeEndpointNoHearts(t *testing.T) {
	app, db := setupTestApp(t)
	challenge := seedChallenge(t, db)
	token, userID := registerUser(t, app, "bob")

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", userID).
		Update("hearts", 0).Error)

	resp := postJSON(t, app, "/api/v1/challenge-progress", token, SubmitChallengeRequest{
		ChallengeID: challenge.ID.String(),
		Answer:      "print",
	})
	assert.Equal(t, 403, resp.StatusCode)
}

func TestSubmitChallengeEndpointBadRequests(t *testing.T) {
	app, db := setupTestApp(t)
	seedChallenge(t, db)

	t.Run("invalid challenge id", func(t *testing.T) {
		resp := postJSON(t, app, "/api/v1/challenge-progress", "", SubmitChallengeRequest{
			ChallengeID: "not-a-uuid",
			Answer:      "print",
		})
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("unknown challenge", func(t *testing.T) {
		resp := postJSON(t, app, "/api/v1/challenge-progress", "", SubmitChallengeRequest{
			ChallengeID: uuid.NewString(),
			Answer:      "print",
		})
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("garbage token is treated as anonymous", func(t *testing.T) {
		var challenge models.Challenge
		require.NoError(t, db.First(&challenge).Error)

		resp := postJSON(t, app, "/api/v1/challenge-progress", "garbage", SubmitChallengeRequest{
			ChallengeID: challenge.ID.String(),
			Answer:      "print",
		})
		require.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, 3, decodeResult(t, resp).XPEarned)
	})
}
