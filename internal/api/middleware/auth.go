package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/dukamarket/checkout-api/internal/config"
)

const userContextKey = "checkout_user_id"

// AuthMiddleware verifies the caller's bearer token against the configured
// bcrypt hash and extracts the acting user's id from the X-User-ID header
// set by the marketplace front gateway.
func AuthMiddleware(cfg config.APIConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if token == "" || token == auth {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			c.Abort()
			return
		}

		if cfg.TokenHash == "" {
			logger.Error("API_TOKEN_HASH is not configured, rejecting request")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(cfg.TokenHash), []byte(token)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
			c.Abort()
			return
		}

		c.Set(userContextKey, userID)
		c.Next()
	}
}

// GetUserFromContext returns the acting user's id set by AuthMiddleware.
func GetUserFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Get(userContextKey)
	if !ok {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}
