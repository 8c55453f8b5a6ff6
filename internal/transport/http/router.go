package http

import (
	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/transport/http/middleware"
	"github.com/iamasit07/connect4-engine/pkg/auth"
)

// NewRouter wires the game API. ws may be nil when the caller mounts the
// WebSocket endpoint elsewhere.
func NewRouter(games *GameHandler, signer *auth.Signer, allowedOrigins []string, ws gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORSMiddleware(allowedOrigins))

	router.GET("/healthz", Health)
	router.POST("/api/games", games.CreateGame)

	protected := router.Group("/api/games/:id")
	protected.Use(middleware.GameTokenMiddleware(signer))
	{
		protected.GET("", games.GetGame)
		protected.POST("/moves", games.PlayMove)
	}

	if ws != nil {
		router.GET("/ws", ws)
	}

	return router
}
