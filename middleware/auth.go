package middleware

import (
	"net/http"
	"strings"

	"quickmechanic/models"
	"quickmechanic/services/backend"
	"quickmechanic/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ctxUserID   = "userID"
	ctxUserType = "userType"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// authenticate validates the bearer token and stores the caller in c. The raw
// token is attached to the request context so backend calls carry it.
func authenticate(c *gin.Context, token string) error {
	claims, err := utils.ExtractClaims(token)
	if err != nil {
		return err
	}
	userType, err := models.ParseUserType(claims.UserType)
	if err != nil {
		return err
	}
	c.Set(ctxUserID, claims.Subject)
	c.Set(ctxUserType, userType)
	c.Request = c.Request.WithContext(backend.ContextWithToken(c.Request.Context(), token))
	return nil
}

// OptionalAuth identifies the caller when a valid token is present and lets
// anonymous requests through. An invalid token is refused.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		if err := authenticate(c, token); err != nil {
			zap.L().Debug("rejected token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Next()
	}
}

// RequireAuth refuses requests without a valid token.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		if err := authenticate(c, token); err != nil {
			zap.L().Debug("rejected token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the caller set by OptionalAuth or RequireAuth.
func CurrentUser(c *gin.Context) (string, models.UserType, bool) {
	userID := c.GetString(ctxUserID)
	if userID == "" {
		return "", "", false
	}
	userType, _ := c.Get(ctxUserType)
	ut, _ := userType.(models.UserType)
	return userID, ut, true
}
