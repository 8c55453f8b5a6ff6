package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/pkg/auth"
	"github.com/iamasit07/connect4-engine/pkg/httputil"
)

// GameTokenMiddleware only lets through requests carrying a token issued
// for the game named by the :id path parameter.
func GameTokenMiddleware(signer *auth.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing game token"})
			return
		}

		gameID := c.Param("id")
		if err := signer.Authorize(tokenString, gameID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid game token"})
			return
		}

		c.Set("game_id", gameID)
		c.Next()
	}
}
