// handlers/init.go - Shared handler wiring
package handlers

import (
	"pylingo/config"
	"pylingo/database"
	"pylingo/services"
)

var (
	cfg          *config.Config
	gamification *services.GamificationService
)

// Init wires the handler package to the database and configuration. Must be
// called after database.InitDB.
func Init(c *config.Config) {
	db := database.GetDB()
	if db == nil {
		panic("Database not initialized before handlers.Init")
	}
	cfg = c
	gamification = services.NewGamificationService(db, services.GamificationConfig{
		MaxHearts:       c.MaxHearts,
		HeartRegenHours: c.HeartRegenHours,
	})
}
