package player

import (
	"github.com/gin-gonic/gin"
	"github.com/scrimgg/scrim/config"
	"github.com/scrimgg/scrim/pkg/notify"
	"gorm.io/gorm"
)

// PlayerRoutes sets up all roster-related routes
func PlayerRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, notifier notify.Notifier) {
	playerRepo := NewPlayerRepository(db)
	playerController := NewPlayerController(playerRepo, appConfig, notifier)

	// Roster management happens before a match starts; identity is
	// self-declared, so none of these require a token.
	router.GET("/players", playerController.GetAllPlayers)
	router.POST("/players", playerController.RegisterPlayer)
	router.PUT("/players/:player_id", playerController.UpdatePlayer)
	router.DELETE("/players/:player_id", playerController.DeletePlayer)

	router.POST("/players/identify", playerController.Identify)
	router.GET("/players/identity", playerController.GetIdentity)
}
