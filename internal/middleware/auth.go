package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/scrimgg/scrim/pkg/token"
	"gorm.io/gorm"
)

const (
	IdentityNameKey = "identity_player_name"
)

// IdentityMiddleware requires a bearer identity token and attaches the
// self-declared player name to the request context. The token only asserts a
// name the player picked for themselves; there is no account behind it.
func IdentityMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format. Expected: Bearer <token>"})
			return
		}

		claims, err := token.ValidateIdentityToken(bearerToken[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			return
		}

		var exists bool
		if err := db.Table("players").Select("1").Where("name = ? AND deleted_at IS NULL", claims.PlayerName).Scan(&exists).Error; err != nil || !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Player not found on the roster"})
			return
		}

		c.Set(IdentityNameKey, claims.PlayerName)
		c.Next()
	}
}

// GetPlayerNameFromContext extracts the identity player name from the context
func GetPlayerNameFromContext(c *gin.Context) (string, error) {
	name, exists := c.Get(IdentityNameKey)
	if !exists {
		return "", errors.New("player name not found in context")
	}

	n, ok := name.(string)
	if !ok {
		return "", fmt.Errorf("player name has unexpected type: %T", name)
	}

	return n, nil
}
