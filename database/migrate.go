// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"pylingo/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Subscription{},
		&models.Course{},
		&models.Unit{},
		&models.Lesson{},
		&models.Challenge{},
		&models.ChallengeProgress{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes for the leaderboard and progress hot paths
func createIndexes() {
	db := GetDB()

	// Leaderboard ranks by XP; profile pages sort by streak
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_total_xp ON users(total_xp DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_current_streak ON users(current_streak DESC)")

	// Content tree lookups
	db.Exec("CREATE INDEX IF NOT EXISTS idx_units_course ON units(course_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_lessons_unit ON lessons(unit_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_challenges_lesson ON challenges(lesson_id)")

	// Completion lookups per user
	db.Exec("CREATE INDEX IF NOT EXISTS idx_progress_user_completed ON challenge_progress(user_id, completed)")
}
