package main

import (
	"log"
	"math/rand"

	"github.com/scrimgg/scrim/config"
	_ "github.com/scrimgg/scrim/docs"
	"github.com/scrimgg/scrim/internal/player"
	"github.com/scrimgg/scrim/internal/random"
	"github.com/scrimgg/scrim/internal/session"
	"github.com/scrimgg/scrim/pkg/notify"
	"github.com/scrimgg/scrim/routes"
)

// @title scrim REST API
// @version 1.0
// @description Single-authority server for informal custom match sessions: roster, team formation, best-of-N progression, trades, and match history.
// @host localhost:8088
// @BasePath /api
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&player.Player{}, &player.Setting{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	seed, err := random.NewSeed()
	if err != nil {
		log.Fatalf("Failed to seed team formation shuffle: %v", err)
	}

	notifier := notify.NewLogNotifier()
	engine := session.NewEngine(
		cfg.Match.TeamNameA,
		cfg.Match.TeamNameB,
		rand.New(rand.NewSource(seed)),
		notifier,
	)

	r := routes.SetupRoutes(engine, notifier)

	// Use port from loaded configuration
	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
