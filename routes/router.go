package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/scrimgg/scrim/config"
	"github.com/scrimgg/scrim/internal/player"
	"github.com/scrimgg/scrim/internal/session"
	"github.com/scrimgg/scrim/pkg/notify"
)

func SetupRoutes(engine *session.Engine, notifier notify.Notifier) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	cfg := config.GetConfig()

	// Welcome page
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`
			<html>
				<head><title>scrim</title></head>
				<body style="text-align:center; margin-top: 40px;">
					<h1>scrim — custom match sessions ⚔️</h1>
					<div>
						<a href="/swagger/index.html">swagger</a>
					</div>
				</body>
			</html>
		`))
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	player.PlayerRoutes(api, config.DB, cfg, notifier)
	session.SessionRoutes(api, engine, config.DB, cfg, cfg.JWT.IdentitySecret)

	return r
}
