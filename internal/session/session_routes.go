package session

import (
	"github.com/gin-gonic/gin"
	"github.com/scrimgg/scrim/config"
	mw "github.com/scrimgg/scrim/internal/middleware"
	"github.com/scrimgg/scrim/internal/player"
	"gorm.io/gorm"
)

// SessionRoutes sets up all match session routes.
func SessionRoutes(router *gin.RouterGroup, engine *Engine, db *gorm.DB, appConfig *config.Config, jwtSecret string) {
	playerRepo := player.NewPlayerRepository(db)
	sessionController := NewSessionController(engine, playerRepo, appConfig)

	// Read-only views of the session are public
	router.GET("/session", sessionController.GetState)
	router.GET("/session/history", sessionController.GetHistory)

	// Mutating operations require an identity token
	authRoutes := router.Group("/session")
	authRoutes.Use(mw.IdentityMiddleware(jwtSecret, db))
	{
		authRoutes.PUT("/format", sessionController.SetFormat)
		authRoutes.POST("/teams", sessionController.FormTeams)

		authRoutes.PUT("/banpick", sessionController.UpdateBanPick)
		authRoutes.PUT("/winner", sessionController.SelectWinner)
		authRoutes.POST("/games", sessionController.SubmitResult)
		authRoutes.POST("/games/next", sessionController.StartNextGame)

		authRoutes.POST("/trades", sessionController.SelectTrade)

		authRoutes.POST("/reset", sessionController.Reset)
		authRoutes.POST("/changes/ack", sessionController.AcknowledgeChanges)
	}
}
