package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"anti-portfolio/internal/config"
	"anti-portfolio/internal/user"
)

const sessionTTL = 30 * time.Minute

// AuthMiddleware verifies the bearer token issued by the identity
// provider and resolves it to a local user, provisioning the row on
// first sight. The subject -> user id mapping is cached in Redis with a
// sliding expiry; a cache miss falls back to the database sync.
func AuthMiddleware(cfg *config.Config, rdb *redis.Client, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Missing or invalid Authorization header"}})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := ParseJWT(cfg.Server.JWTSecret, tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Invalid or expired token"}})
			return
		}

		userID, err := GetSession(rdb, claims.Subject)
		if err != nil {
			u, _, syncErr := user.Sync(db, claims.Subject, claims.Email, claims.Name)
			if syncErr != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to resolve user"}})
				return
			}
			userID = u.ID
		}
		// Sliding expiry.
		_ = SetSession(rdb, claims.Subject, userID, sessionTTL)

		c.Set("userId", userID)
		c.Set("subject", claims.Subject)
		c.Next()
	}
}

// UserID pulls the authenticated user's id off the request context.
func UserID(c *gin.Context) uint {
	if v, ok := c.Get("userId"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
